package store

import (
	"context"
	"sync"

	policymodels "comply/internal/policy/models"
	"comply/internal/template/models"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
)

// InMemory is the map-backed template store.
type InMemory struct {
	mu        sync.RWMutex
	templates map[id.TemplateID]*models.Template
}

func NewInMemory() *InMemory {
	return &InMemory{templates: make(map[id.TemplateID]*models.Template)}
}

func cloneTemplate(t *models.Template) *models.Template {
	cp := *t
	return &cp
}

// Create rejects a duplicate active (name, type, version) identity.
func (s *InMemory) Create(ctx context.Context, template *models.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.templates {
		if t.Active && t.Name == template.Name && t.Type == template.Type && t.Version == template.Version {
			return sentinel.ErrConflict
		}
	}
	s.templates[template.ID] = cloneTemplate(template)
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, templateID id.TemplateID) (*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.templates[templateID]
	if !exists || !t.Active {
		return nil, sentinel.ErrNotFound
	}
	return cloneTemplate(t), nil
}

func (s *InMemory) Update(ctx context.Context, template *models.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[template.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.templates[template.ID] = cloneTemplate(template)
	return nil
}

func (s *InMemory) FindAll(ctx context.Context) ([]*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Template
	for _, t := range s.templates {
		if t.Active {
			out = append(out, cloneTemplate(t))
		}
	}
	return out, nil
}

func (s *InMemory) FindActiveByNameAndType(ctx context.Context, name string, policyType policymodels.PolicyType) (*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.Active && t.Name == name && t.Type == policyType {
			return cloneTemplate(t), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// LatestByName returns the highest-version active template sharing the name.
func (s *InMemory) LatestByName(ctx context.Context, name string) (*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.Template
	for _, t := range s.templates {
		if !t.Active || t.Name != name {
			continue
		}
		if latest == nil || policymodels.CompareVersions(t.Version, latest.Version) > 0 {
			latest = t
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return cloneTemplate(latest), nil
}
