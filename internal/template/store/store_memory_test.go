package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policymodels "comply/internal/policy/models"
	"comply/internal/template/models"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
)

func seedTemplate(t *testing.T, s *InMemory, name, version string) *models.Template {
	t.Helper()
	template, err := models.NewTemplate(id.NewTemplateID(), name, policymodels.PolicyTypeInfoSec, version, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), template))
	return template
}

func TestCreateRejectsDuplicateIdentity(t *testing.T) {
	s := NewInMemory()
	seedTemplate(t, s, "SOC2", "1.0")

	dup, err := models.NewTemplate(id.NewTemplateID(), "SOC2", policymodels.PolicyTypeInfoSec, "1.0", time.Now().UTC())
	require.NoError(t, err)
	assert.ErrorIs(t, s.Create(context.Background(), dup), sentinel.ErrConflict)
}

func TestLatestByName(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	seedTemplate(t, s, "SOC2", "9.9")
	highest := seedTemplate(t, s, "SOC2", "9.10")
	seedTemplate(t, s, "SOC2", "2.0")
	seedTemplate(t, s, "ISO27001", "12.0")

	// Numeric ordering: 9.10 beats 9.9 even though string order disagrees.
	latest, err := s.LatestByName(ctx, "SOC2")
	require.NoError(t, err)
	assert.Equal(t, highest.ID, latest.ID)

	_, err = s.LatestByName(ctx, "PCI-DSS")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestLatestByNameSkipsDeactivated(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	older := seedTemplate(t, s, "SOC2", "1.0")
	newer := seedTemplate(t, s, "SOC2", "2.0")

	newer.Active = false
	require.NoError(t, s.Update(ctx, newer))

	latest, err := s.LatestByName(ctx, "SOC2")
	require.NoError(t, err)
	assert.Equal(t, older.ID, latest.ID)
}
