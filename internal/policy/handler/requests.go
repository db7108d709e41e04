package handler

import (
	"strings"

	"comply/internal/policy/models"
	"comply/internal/policy/service"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
)

// CreatePolicyRequest is the wire shape for POST /policies.
type CreatePolicyRequest struct {
	TemplateID    string         `json:"template_id,omitempty"`
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	Version       string         `json:"version"`
	Content       string         `json:"content"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Status        string         `json:"status,omitempty"`
}

func (r CreatePolicyRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if _, err := models.ParsePolicyType(r.Type); err != nil {
		return err
	}
	if strings.TrimSpace(r.Version) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "version is required")
	}
	if r.Status != "" {
		if _, err := models.ParsePolicyStatus(r.Status); err != nil {
			return err
		}
	}
	if r.TemplateID != "" {
		if _, err := id.ParseTemplateID(r.TemplateID); err != nil {
			return err
		}
	}
	return nil
}

// ToInput converts the validated request into the service input.
func (r CreatePolicyRequest) ToInput() service.CreateInput {
	in := service.CreateInput{
		Name:          r.Name,
		Type:          models.PolicyType(r.Type),
		Version:       r.Version,
		Content:       r.Content,
		Configuration: models.Configuration(r.Configuration),
		Status:        models.PolicyStatus(r.Status),
	}
	if r.TemplateID != "" {
		templateID, _ := id.ParseTemplateID(r.TemplateID)
		in.TemplateID = &templateID
	}
	return in
}

// UpdatePolicyRequest is the wire shape for PUT /policies/{id}. Absent
// fields are left untouched; a configuration that differs from the stored
// one spawns a new version.
type UpdatePolicyRequest struct {
	Name          *string         `json:"name,omitempty"`
	Type          *string         `json:"type,omitempty"`
	Version       *string         `json:"version,omitempty"`
	Content       *string         `json:"content,omitempty"`
	TemplateID    *string         `json:"template_id,omitempty"`
	Configuration *map[string]any `json:"configuration,omitempty"`
}

func (r UpdatePolicyRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name cannot be empty")
	}
	if r.Type != nil {
		if _, err := models.ParsePolicyType(*r.Type); err != nil {
			return err
		}
	}
	if r.Version != nil && strings.TrimSpace(*r.Version) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "version cannot be empty")
	}
	if r.TemplateID != nil {
		if _, err := id.ParseTemplateID(*r.TemplateID); err != nil {
			return err
		}
	}
	return nil
}

func (r UpdatePolicyRequest) ToInput() service.UpdateInput {
	in := service.UpdateInput{
		Name:    r.Name,
		Version: r.Version,
		Content: r.Content,
	}
	if r.Type != nil {
		policyType := models.PolicyType(*r.Type)
		in.Type = &policyType
	}
	if r.TemplateID != nil {
		templateID, _ := id.ParseTemplateID(*r.TemplateID)
		in.TemplateID = &templateID
	}
	if r.Configuration != nil {
		configuration := models.Configuration(*r.Configuration)
		in.Configuration = &configuration
	}
	return in
}

// ApprovePolicyRequest optionally names the approver; the authenticated
// employee is used when absent.
type ApprovePolicyRequest struct {
	ApprovedBy string `json:"approved_by,omitempty"`
}

func (r ApprovePolicyRequest) Validate() error {
	if r.ApprovedBy != "" {
		if _, err := id.ParseEmployeeID(r.ApprovedBy); err != nil {
			return err
		}
	}
	return nil
}
