// Package cache provides a Redis-backed cache for the per-tenant
// active-approved obligation set. The lifecycle service invalidates the
// tenant's entry on every policy write, so acknowledgment generation reads
// stay cheap without serving stale approvals.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"comply/internal/policy/models"
	id "comply/pkg/domain"
)

// ObligationCache caches the ActiveForAcknowledgments result per tenant.
type ObligationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates the cache. ttl bounds staleness if an invalidation is lost.
func New(client *redis.Client, ttl time.Duration) *ObligationCache {
	return &ObligationCache{client: client, ttl: ttl}
}

func key(tenantID id.TenantID) string {
	return "comply:obligations:" + tenantID.String()
}

// Get returns the cached set and whether it was present. Cache errors are
// reported but callers treat them as a miss.
func (c *ObligationCache) Get(ctx context.Context, tenantID id.TenantID) ([]*models.Policy, bool, error) {
	raw, err := c.client.Get(ctx, key(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("obligation cache get: %w", err)
	}
	var policies []*models.Policy
	if err := json.Unmarshal(raw, &policies); err != nil {
		return nil, false, fmt.Errorf("obligation cache decode: %w", err)
	}
	return policies, true, nil
}

// Set stores the obligation set for a tenant.
func (c *ObligationCache) Set(ctx context.Context, tenantID id.TenantID, policies []*models.Policy) error {
	raw, err := json.Marshal(policies)
	if err != nil {
		return fmt.Errorf("obligation cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key(tenantID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("obligation cache set: %w", err)
	}
	return nil
}

// Invalidate drops the tenant's entry.
func (c *ObligationCache) Invalidate(ctx context.Context, tenantID id.TenantID) error {
	if err := c.client.Del(ctx, key(tenantID)).Err(); err != nil {
		return fmt.Errorf("obligation cache invalidate: %w", err)
	}
	return nil
}
