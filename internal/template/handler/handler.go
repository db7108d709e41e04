// Package handler wires the policy template management endpoints to the
// template service. Templates are global, so these routes sit behind the
// admin token rather than the tenant JWT.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"comply/internal/platform/middleware"
	policymodels "comply/internal/policy/models"
	"comply/internal/template/models"
	"comply/internal/template/service"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/platform/httputil"
)

// Service defines the interface for template operations.
type Service interface {
	Create(ctx context.Context, in service.CreateInput) (*models.Template, error)
	Get(ctx context.Context, templateID id.TemplateID) (*models.Template, error)
	List(ctx context.Context) ([]*models.Template, error)
	Latest(ctx context.Context, name string) (*models.Template, error)
	Delete(ctx context.Context, templateID id.TemplateID) error
}

// Handler handles template endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new template Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the template routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/policy-templates", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/latest", h.handleLatest)
		r.Get("/{templateID}", h.handleGet)
		r.Delete("/{templateID}", h.handleDelete)
	})
}

// CreateTemplateRequest is the wire shape for POST /policy-templates.
type CreateTemplateRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version"`
}

func (r CreateTemplateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if _, err := policymodels.ParsePolicyType(r.Type); err != nil {
		return err
	}
	if strings.TrimSpace(r.Version) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "version is required")
	}
	return nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTemplateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	template, err := h.service.Create(ctx, service.CreateInput{
		Name:    req.Name,
		Type:    policymodels.PolicyType(req.Type),
		Version: req.Version,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "template creation failed",
			"request_id", requestID, "name", req.Name, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, template)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, templates)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "name query parameter is required"))
		return
	}

	template, err := h.service.Latest(r.Context(), name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, template)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	templateID, err := id.ParseTemplateID(chi.URLParam(r, "templateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	template, err := h.service.Get(r.Context(), templateID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, template)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	templateID, err := id.ParseTemplateID(chi.URLParam(r, "templateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), templateID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
