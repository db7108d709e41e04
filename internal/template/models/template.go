package models

import (
	"time"

	policymodels "comply/internal/policy/models"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
)

// Template is a reusable, tenant-independent policy blueprint.
//
// Identity: (Name, Type, Version). "Latest" for a name is the highest
// numeric version among active rows sharing that name. Deletion is soft,
// via the Active flag, so policies keeping a TemplateID back-reference can
// still resolve their origin.
type Template struct {
	ID        id.TemplateID           `json:"id"`
	Name      string                  `json:"name"`
	Type      policymodels.PolicyType `json:"type"`
	Version   string                  `json:"version"`
	Active    bool                    `json:"is_active"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// NewTemplate constructs an active template.
func NewTemplate(templateID id.TemplateID, name string, policyType policymodels.PolicyType, version string, now time.Time) (*Template, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "template name cannot be empty")
	}
	if version == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "template version cannot be empty")
	}
	return &Template{
		ID:        templateID,
		Name:      name,
		Type:      policyType,
		Version:   version,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
