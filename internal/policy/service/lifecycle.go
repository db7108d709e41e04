package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"comply/internal/policy/models"
	"comply/internal/policy/store"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/platform/sentinel"
	"comply/pkg/requestcontext"
)

// CreateInput carries a new policy version.
type CreateInput struct {
	TemplateID    *id.TemplateID
	Name          string
	Type          models.PolicyType
	Version       string
	Content       string
	Configuration models.Configuration
	// Status defaults to PENDING_APPROVAL when empty.
	Status models.PolicyStatus
}

// Create registers the first version of a policy identity. It conflicts when
// any active row already holds the (tenant, name, type) identity; new
// versions of an existing identity are spawned by Update, never by Create.
func (s *Service) Create(ctx context.Context, tenantID id.TenantID, in CreateInput) (*models.Policy, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)

	if _, err := s.policies.FindActiveByNameAndType(ctx, tenantID, in.Name, in.Type); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "a policy with this name and type already exists for this tenant")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check policy uniqueness")
	}

	now := requestcontext.Now(ctx)
	policy, err := models.NewPolicy(s.newID(), tenantID, in.Name, in.Type, in.Version, in.Content, in.Configuration, in.Status, now)
	if err != nil {
		return nil, err
	}
	policy.TemplateID = in.TemplateID

	if err := s.policies.Create(ctx, policy); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a policy with this name and type already exists for this tenant")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create policy")
	}

	s.invalidateObligations(ctx, tenantID)
	if s.metrics != nil {
		s.metrics.IncrementPoliciesCreated()
	}
	return policy, nil
}

// UpdateInput is a partial patch. Nil fields are left untouched.
// Configuration is compared by deep equality; a differing payload spawns a
// new version instead of mutating the row.
type UpdateInput struct {
	Name          *string
	Type          *models.PolicyType
	Version       *string
	Content       *string
	TemplateID    *id.TemplateID
	Configuration *models.Configuration
}

// Update patches a policy in place, except when the configuration payload
// changed: then the original row stays untouched and a successor version is
// created in PENDING_APPROVAL with the minor version bumped past the group's
// highest.
func (s *Service) Update(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID, in UpdateInput) (*models.UpdateResult, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}

	current, err := s.policies.FindByID(ctx, tenantID, policyID)
	if err != nil {
		return nil, wrapPolicyErr(err)
	}

	if in.Name != nil || in.Type != nil {
		newName := current.Name
		if in.Name != nil {
			newName = strings.TrimSpace(*in.Name)
		}
		newType := current.Type
		if in.Type != nil {
			newType = *in.Type
		}
		existing, err := s.policies.FindActiveByNameAndType(ctx, tenantID, newName, newType)
		switch {
		case err == nil && existing.ID != current.ID:
			return nil, dErrors.New(dErrors.CodeConflict, "a policy with this name and type already exists for this tenant")
		case err != nil && !errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check policy uniqueness")
		}
	}

	now := requestcontext.Now(ctx)

	if in.Configuration != nil && !current.Configuration.Equal(*in.Configuration) {
		// Configuration edits never touch the stored row. The successor
		// carries the original name/type/content and restarts approval.
		base := current.Version
		group, err := s.policies.ListGroup(ctx, tenantID, current.Name, current.Type)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read policy version group")
		}
		for _, p := range group {
			if models.CompareVersions(p.Version, base) > 0 {
				base = p.Version
			}
		}
		next := models.NextVersion(base)

		successor := current.NextVersionRow(s.newID(), next, *in.Configuration, now)
		if err := s.policies.Create(ctx, successor); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create policy version")
		}

		s.invalidateObligations(ctx, tenantID)
		if s.metrics != nil {
			s.metrics.IncrementVersionsSpawned()
		}
		s.logger.InfoContext(ctx, "policy configuration change spawned new version",
			"tenant_id", tenantID, "policy_id", current.ID,
			"previous_version", base, "new_version", next)

		supersededID := current.ID
		return &models.UpdateResult{
			Policy:               successor,
			ConfigurationChanged: true,
			PreviousVersion:      base,
			NewVersion:           next,
			SupersededID:         &supersededID,
		}, nil
	}

	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		current.Type = *in.Type
	}
	if in.Version != nil {
		current.Version = *in.Version
	}
	if in.Content != nil {
		current.Content = *in.Content
	}
	if in.TemplateID != nil {
		current.TemplateID = in.TemplateID
	}
	current.UpdatedAt = now

	if err := s.policies.Update(ctx, current); err != nil {
		return nil, wrapPolicyErr(err)
	}

	s.invalidateObligations(ctx, tenantID)
	return &models.UpdateResult{Policy: current}, nil
}

// Approve transitions a version to APPROVED and enforces supersession: when
// the approved version was pending and a different approved+active version of
// the same identity exists, that version is deactivated in the same logical
// operation, keeping exactly one active approved version per identity.
func (s *Service) Approve(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID, approvedBy id.EmployeeID) (*models.ApprovalResult, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}

	policy, err := s.policies.FindByID(ctx, tenantID, policyID)
	if err != nil {
		return nil, wrapPolicyErr(err)
	}

	now := requestcontext.Now(ctx)
	wasPending := policy.Status == models.PolicyStatusPendingApproval

	deactivated := false
	if wasPending {
		previous, err := s.policies.FindApprovedActive(ctx, tenantID, policy.Name, policy.Type)
		switch {
		case err == nil && previous.ID != policy.ID:
			previous.ApplyDeactivation(now)
			if err := s.policies.Update(ctx, previous); err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate superseded policy version")
			}
			deactivated = true
			s.logger.InfoContext(ctx, "superseded previously approved policy version",
				"tenant_id", tenantID, "policy_id", policy.ID,
				"superseded_id", previous.ID, "superseded_version", previous.Version)
		case err != nil && !errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up prior approved version")
		}
	}

	policy.ApplyApproval(approvedBy, now, s.validity)
	if err := s.policies.Update(ctx, policy); err != nil {
		return nil, wrapPolicyErr(err)
	}

	s.invalidateObligations(ctx, tenantID)
	if s.metrics != nil {
		s.metrics.IncrementPoliciesApproved()
	}
	return &models.ApprovalResult{Policy: policy, PreviousVersionDeactivated: deactivated}, nil
}

// Delete soft-deletes a policy version.
func (s *Service) Delete(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) error {
	if err := requireTenantID(tenantID); err != nil {
		return err
	}

	policy, err := s.policies.FindByID(ctx, tenantID, policyID)
	if err != nil {
		return wrapPolicyErr(err)
	}

	policy.ApplyDeactivation(requestcontext.Now(ctx))
	if err := s.policies.Update(ctx, policy); err != nil {
		return wrapPolicyErr(err)
	}
	s.invalidateObligations(ctx, tenantID)
	return nil
}

// Get returns one policy with its template upgrade annotation.
func (s *Service) Get(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) (*models.AnnotatedPolicy, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	policy, err := s.policies.FindByID(ctx, tenantID, policyID)
	if err != nil {
		return nil, wrapPolicyErr(err)
	}
	return &models.AnnotatedPolicy{Policy: policy, Upgrade: s.CheckUpgrade(ctx, policy)}, nil
}

// List returns the tenant's active policies, each annotated with
// upgrade availability.
func (s *Service) List(ctx context.Context, tenantID id.TenantID, filters store.Filters) ([]*models.AnnotatedPolicy, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	policies, err := s.policies.ListByTenant(ctx, tenantID, filters)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}
	out := make([]*models.AnnotatedPolicy, 0, len(policies))
	for _, p := range policies {
		out = append(out, &models.AnnotatedPolicy{Policy: p, Upgrade: s.CheckUpgrade(ctx, p)})
	}
	return out, nil
}

// CheckUpgrade annotates a policy with template staleness. Read-only and
// best-effort: versions are compared by direct inequality, and a broken
// template chain yields no annotation rather than an error.
func (s *Service) CheckUpgrade(ctx context.Context, policy *models.Policy) models.UpgradeCheck {
	if policy.TemplateID == nil {
		return models.UpgradeCheck{}
	}
	current, err := s.templates.FindByID(ctx, *policy.TemplateID)
	if err != nil {
		return models.UpgradeCheck{}
	}
	latest, err := s.templates.LatestByName(ctx, current.Name)
	if err != nil {
		return models.UpgradeCheck{}
	}
	if latest.Version == current.Version {
		return models.UpgradeCheck{}
	}
	return models.UpgradeCheck{
		NeedsUpgrade:           true,
		CurrentTemplateVersion: current.Version,
		LatestTemplateVersion:  latest.Version,
	}
}

// UpgradeToLatestTemplate repoints the policy's template back-reference at
// the latest version of the template's name.
func (s *Service) UpgradeToLatestTemplate(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) (*models.TemplateUpgradeResult, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}

	policy, err := s.policies.FindByID(ctx, tenantID, policyID)
	if err != nil {
		return nil, wrapPolicyErr(err)
	}
	if policy.TemplateID == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "policy is not linked to a template")
	}

	current, err := s.templates.FindByID(ctx, *policy.TemplateID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "linked template not found")
	}
	latest, err := s.templates.LatestByName(ctx, current.Name)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no active template versions found")
	}
	if latest.ID == current.ID || models.CompareVersions(latest.Version, current.Version) == 0 {
		return nil, dErrors.New(dErrors.CodeConflict, "policy already references the latest template version")
	}

	latestID := latest.ID
	policy.TemplateID = &latestID
	policy.UpdatedAt = requestcontext.Now(ctx)
	if err := s.policies.Update(ctx, policy); err != nil {
		return nil, wrapPolicyErr(err)
	}

	return &models.TemplateUpgradeResult{
		Policy:          policy,
		PreviousVersion: current.Version,
		NewVersion:      latest.Version,
	}, nil
}

// ActiveForAcknowledgments returns, per (name, type) group with an APPROVED
// active row, only the single highest-version row: the canonical obligation
// set the acknowledgment engine consumes.
func (s *Service) ActiveForAcknowledgments(ctx context.Context, tenantID id.TenantID) ([]*models.Policy, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, tenantID)
		if err != nil {
			s.logger.WarnContext(ctx, "obligation cache read failed", "tenant_id", tenantID, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	status := models.PolicyStatusApproved
	approved, err := s.policies.ListByTenant(ctx, tenantID, store.Filters{Status: &status})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list approved policies")
	}

	type groupKey struct {
		name       string
		policyType models.PolicyType
	}
	latest := make(map[groupKey]*models.Policy)
	for _, p := range approved {
		key := groupKey{name: p.Name, policyType: p.Type}
		if best, ok := latest[key]; !ok || models.CompareVersions(p.Version, best.Version) > 0 {
			latest[key] = p
		}
	}

	out := make([]*models.Policy, 0, len(latest))
	for _, p := range latest {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Type < out[j].Type
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, out); err != nil {
			s.logger.WarnContext(ctx, "obligation cache write failed", "tenant_id", tenantID, "error", err)
		}
	}
	return out, nil
}

func (s *Service) invalidateObligations(ctx context.Context, tenantID id.TenantID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		s.logger.WarnContext(ctx, "obligation cache invalidation failed", "tenant_id", tenantID, "error", err)
	}
}

func requireTenantID(tenantID id.TenantID) error {
	if tenantID.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	return nil
}

func wrapPolicyErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "policy not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "policy conflicts with an existing policy")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "policy store failure")
	}
}
