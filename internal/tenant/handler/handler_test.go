package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"comply/internal/platform/middleware"
	"comply/internal/tenant/service"
	"comply/internal/tenant/store"
)

const adminToken = "secret-token"

func TestAdminTokenRequired(t *testing.T) {
	router := newTenantRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/tenants/"+uuid.New().String(), nil)
	// No admin token header set
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when admin token missing, got %d", rec.Code)
	}
}

func TestTenantLifecycleViaHandlers(t *testing.T) {
	router := newTenantRouter(t)

	body, _ := json.Marshal(map[string]string{"name": "Acme"})
	req := httptest.NewRequest(http.MethodPost, "/admin/tenants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating tenant, got %d", rec.Code)
	}

	var created struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode tenant response: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected tenant id in response")
	}
	if created.Name != "Acme" {
		t.Fatalf("expected tenant name Acme, got %q", created.Name)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/admin/tenants/"+created.ID.String(), nil)
	getReq.Header.Set("X-Admin-Token", adminToken)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching tenant, got %d", getRec.Code)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/admin/tenants/"+created.ID.String(), nil)
	delReq.Header.Set("X-Admin-Token", adminToken)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, delReq)
	if delRec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting tenant, got %d", delRec.Code)
	}

	goneReq := httptest.NewRequest(http.MethodGet, "/admin/tenants/"+created.ID.String(), nil)
	goneReq.Header.Set("X-Admin-Token", adminToken)
	goneRec := httptest.NewRecorder()
	router.ServeHTTP(goneRec, goneReq)
	if goneRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 fetching deleted tenant, got %d", goneRec.Code)
	}
}

func TestCreateTenantRejectsEmptyName(t *testing.T) {
	router := newTenantRouter(t)

	body, _ := json.Marshal(map[string]string{"name": "   "})
	req := httptest.NewRequest(http.MethodPost, "/admin/tenants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty tenant name, got %d", rec.Code)
	}
}

func newTenantRouter(t *testing.T) http.Handler {
	t.Helper()
	tenants := store.NewInMemory()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(tenants, service.WithLogger(logger))

	h := New(svc, logger)
	r := chi.NewRouter()
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(adminToken, logger))
		h.Register(r)
	})
	return r
}
