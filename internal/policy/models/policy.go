package models

import (
	"reflect"
	"time"

	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
)

// PolicyType is the closed enumeration of compliance policy categories.
// The role mapping table decides which types each employee role must acknowledge.
type PolicyType string

const (
	PolicyTypeDataPrivacy   PolicyType = "DATA_PRIVACY"
	PolicyTypeAcceptableUse PolicyType = "ACCEPTABLE_USE"
	PolicyTypeInfoSec       PolicyType = "INFOSEC"
	PolicyTypeCryptographic PolicyType = "CRYPTOGRAPHIC"
)

// ParsePolicyType validates a policy type string against the closed set.
func ParsePolicyType(s string) (PolicyType, error) {
	switch t := PolicyType(s); t {
	case PolicyTypeDataPrivacy, PolicyTypeAcceptableUse, PolicyTypeInfoSec, PolicyTypeCryptographic:
		return t, nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown policy type %q", s)
}

// PolicyStatus is the approval state of one policy version.
type PolicyStatus string

const (
	PolicyStatusPendingApproval PolicyStatus = "PENDING_APPROVAL"
	PolicyStatusApproved        PolicyStatus = "APPROVED"
)

// ParsePolicyStatus validates a policy status string.
func ParsePolicyStatus(s string) (PolicyStatus, error) {
	switch st := PolicyStatus(s); st {
	case PolicyStatusPendingApproval, PolicyStatusApproved:
		return st, nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown policy status %q", s)
}

// Configuration is the opaque customer-specific payload attached to a policy
// version. The engine never interprets its contents; it only detects change.
type Configuration map[string]any

// Equal compares two configurations by deep structural equality.
func (c Configuration) Equal(other Configuration) bool {
	if len(c) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]any(c), map[string]any(other))
}

// Policy is one version row of a tenant's compliance policy.
//
// Identity: (TenantID, Name, Type) groups versions of the same policy;
// Version is monotonically increasing within a group.
//
// Invariants:
//   - within a tenant, at most one row per (Name, Type) is Active
//     AND Approved at a time (supersession enforces this on Approve)
//   - Version is numerically ordered major.minor within a group
//   - approval metadata (ApprovedBy/ApprovedAt/EffectiveFrom/EffectiveTo)
//     is set only by Approve and never cleared by plain updates
//   - rows are never destroyed; Delete flips Active off so history stays
//     queryable
type Policy struct {
	ID            id.PolicyID    `json:"id"`
	TenantID      id.TenantID    `json:"tenant_id"`
	TemplateID    *id.TemplateID `json:"template_id,omitempty"`
	Name          string         `json:"name"`
	Type          PolicyType     `json:"type"`
	Version       string         `json:"version"`
	Content       string         `json:"content"`
	Configuration Configuration  `json:"configuration,omitempty"`
	Status        PolicyStatus   `json:"status"`
	Active        bool           `json:"is_active"`
	ApprovedBy    *id.EmployeeID `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time     `json:"approved_at,omitempty"`
	EffectiveFrom *time.Time     `json:"effective_from,omitempty"`
	EffectiveTo   *time.Time     `json:"effective_to,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewPolicy constructs a policy version in the given or default status.
func NewPolicy(policyID id.PolicyID, tenantID id.TenantID, name string, policyType PolicyType, version, content string, configuration Configuration, status PolicyStatus, now time.Time) (*Policy, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "policy name cannot be empty")
	}
	if len(name) > 256 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "policy name must be 256 characters or less")
	}
	if version == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "policy version cannot be empty")
	}
	if status == "" {
		status = PolicyStatusPendingApproval
	}
	return &Policy{
		ID:            policyID,
		TenantID:      tenantID,
		Name:          name,
		Type:          policyType,
		Version:       version,
		Content:       content,
		Configuration: configuration,
		Status:        status,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsApproved reports whether this version has passed approval.
func (p *Policy) IsApproved() bool {
	return p.Status == PolicyStatusApproved
}

// ApplyApproval transitions the version to APPROVED and stamps the approval
// metadata. validity is the effective window (effectiveTo = now + validity).
func (p *Policy) ApplyApproval(approvedBy id.EmployeeID, now time.Time, validity time.Duration) {
	effectiveTo := now.Add(validity)
	p.Status = PolicyStatusApproved
	p.Active = true
	p.ApprovedBy = &approvedBy
	p.ApprovedAt = &now
	p.EffectiveFrom = &now
	p.EffectiveTo = &effectiveTo
	p.UpdatedAt = now
}

// ApplyDeactivation soft-deletes or supersedes the version.
func (p *Policy) ApplyDeactivation(now time.Time) {
	p.Active = false
	p.UpdatedAt = now
}

// NextVersionRow derives the successor row spawned by a configuration change:
// same identity and content, new configuration, incremented version, approval
// state reset to PENDING_APPROVAL with no approval metadata.
func (p *Policy) NextVersionRow(newID id.PolicyID, version string, configuration Configuration, now time.Time) *Policy {
	return &Policy{
		ID:            newID,
		TenantID:      p.TenantID,
		TemplateID:    p.TemplateID,
		Name:          p.Name,
		Type:          p.Type,
		Version:       version,
		Content:       p.Content,
		Configuration: configuration,
		Status:        PolicyStatusPendingApproval,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpgradeCheck is the read-only template staleness annotation attached to
// policies instantiated from a template.
type UpgradeCheck struct {
	NeedsUpgrade           bool   `json:"needs_upgrade"`
	CurrentTemplateVersion string `json:"current_template_version,omitempty"`
	LatestTemplateVersion  string `json:"latest_template_version,omitempty"`
}

// AnnotatedPolicy pairs a policy with its upgrade annotation for list/get reads.
type AnnotatedPolicy struct {
	*Policy
	Upgrade UpgradeCheck `json:"upgrade"`
}

// ApprovalResult reports an approval and whether it superseded a prior
// approved version of the same identity.
type ApprovalResult struct {
	Policy                     *Policy `json:"policy"`
	PreviousVersionDeactivated bool    `json:"previous_version_deactivated"`
}

// UpdateResult reports an update. When the configuration payload changed the
// update spawns a new version instead of mutating in place: Policy is the new
// row, ConfigurationChanged is true and SupersededID points at the untouched
// original.
type UpdateResult struct {
	Policy               *Policy      `json:"policy"`
	ConfigurationChanged bool         `json:"configuration_changed"`
	PreviousVersion      string       `json:"previous_version,omitempty"`
	NewVersion           string       `json:"new_version,omitempty"`
	SupersededID         *id.PolicyID `json:"superseded_policy_id,omitempty"`
}

// TemplateUpgradeResult reports a template repoint with before/after versions.
type TemplateUpgradeResult struct {
	Policy          *Policy `json:"policy"`
	PreviousVersion string  `json:"previous_template_version"`
	NewVersion      string  `json:"new_template_version"`
}
