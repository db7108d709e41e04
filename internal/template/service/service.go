// Package service manages policy templates: versioned blueprints that
// policies reference and are upgraded against.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	policymodels "comply/internal/policy/models"
	"comply/internal/template/models"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/platform/sentinel"
	"comply/pkg/requestcontext"
)

// Store is the persistence contract for templates.
type Store interface {
	Create(ctx context.Context, template *models.Template) error
	FindByID(ctx context.Context, templateID id.TemplateID) (*models.Template, error)
	Update(ctx context.Context, template *models.Template) error
	FindAll(ctx context.Context) ([]*models.Template, error)
	FindActiveByNameAndType(ctx context.Context, name string, policyType policymodels.PolicyType) (*models.Template, error)
	LatestByName(ctx context.Context, name string) (*models.Template, error)
}

// Service manages the template catalog. Templates are global, not
// tenant-scoped; tenants derive policies from them.
type Service struct {
	templates Store
	logger    *slog.Logger
	newID     func() id.TemplateID
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithIDGenerator overrides template ID generation, for deterministic tests.
func WithIDGenerator(gen func() id.TemplateID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func New(templates Store, opts ...Option) *Service {
	s := &Service{
		templates: templates,
		logger:    slog.Default(),
		newID:     id.NewTemplateID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries a new template version.
type CreateInput struct {
	Name    string
	Type    policymodels.PolicyType
	Version string
}

// Create registers a template version. Conflicts when an active template
// already holds the same (name, type, version).
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Template, error) {
	in.Name = strings.TrimSpace(in.Name)

	template, err := models.NewTemplate(s.newID(), in.Name, in.Type, in.Version, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.templates.Create(ctx, template); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a template with this name, type and version already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create template")
	}
	return template, nil
}

// Get returns one template by ID.
func (s *Service) Get(ctx context.Context, templateID id.TemplateID) (*models.Template, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return nil, wrapTemplateErr(err)
	}
	return template, nil
}

// List returns every active template.
func (s *Service) List(ctx context.Context) ([]*models.Template, error) {
	templates, err := s.templates.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list templates")
	}
	return templates, nil
}

// Latest returns the highest-version active template with the given name.
func (s *Service) Latest(ctx context.Context, name string) (*models.Template, error) {
	template, err := s.templates.LatestByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, wrapTemplateErr(err)
	}
	return template, nil
}

// Delete soft-deletes a template version. Policies referencing it keep their
// link; upgrade checks resolve against the remaining active versions.
func (s *Service) Delete(ctx context.Context, templateID id.TemplateID) error {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return wrapTemplateErr(err)
	}
	template.Active = false
	template.UpdatedAt = requestcontext.Now(ctx)
	if err := s.templates.Update(ctx, template); err != nil {
		return wrapTemplateErr(err)
	}
	return nil
}

func wrapTemplateErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "template not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "template conflicts with an existing template")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "template store failure")
	}
}
