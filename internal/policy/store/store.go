package store

import "comply/internal/policy/models"

// Filters narrows tenant-scoped policy listings.
type Filters struct {
	Status *models.PolicyStatus
	Type   *models.PolicyType
}
