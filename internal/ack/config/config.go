// Package config holds the acknowledgment engine's immutable configuration:
// due-date offsets, the periodic obligation horizon, and the role mapping
// table deciding which policy types each employee role must acknowledge.
//
// Everything here is fixed at construction time; the engine never reads
// ambient package state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	employeemodels "comply/internal/employee/models"
	policymodels "comply/internal/policy/models"
)

// Config are the engine's timing knobs.
type Config struct {
	// NewHireDueDays is the acknowledgment window granted to new hires.
	NewHireDueDays int
	// PeriodicYears is how many yearly re-acknowledgment rows are scheduled
	// up front when new-hire obligations are generated.
	PeriodicYears int
}

// DefaultConfig returns the production defaults: 30 days for new hires and a
// three-year periodic horizon.
func DefaultConfig() Config {
	return Config{
		NewHireDueDays: 30,
		PeriodicYears:  3,
	}
}

// RoleMapping maps an employee role to the policy types that role must
// acknowledge. Roles absent from the mapping have no obligations.
type RoleMapping map[employeemodels.Role][]policymodels.PolicyType

// RequiredTypes returns the policy types for a role, nil when unmapped.
func (m RoleMapping) RequiredTypes(role employeemodels.Role) []policymodels.PolicyType {
	return m[role]
}

// DefaultRoleMapping returns the built-in role mapping table.
func DefaultRoleMapping() RoleMapping {
	return RoleMapping{
		employeemodels.RoleHR: {
			policymodels.PolicyTypeDataPrivacy,
			policymodels.PolicyTypeAcceptableUse,
			policymodels.PolicyTypeInfoSec,
		},
		employeemodels.RoleEngineering: {
			policymodels.PolicyTypeInfoSec,
			policymodels.PolicyTypeAcceptableUse,
			policymodels.PolicyTypeCryptographic,
			policymodels.PolicyTypeDataPrivacy,
		},
		employeemodels.RoleSales: {
			policymodels.PolicyTypeAcceptableUse,
		},
		employeemodels.RoleExecutive: {
			policymodels.PolicyTypeCryptographic,
		},
	}
}

// LoadRoleMapping reads a role mapping table from a YAML file of the form:
//
//	HR:
//	  - DATA_PRIVACY
//	  - ACCEPTABLE_USE
//
// Roles and types are validated against the closed enums.
func LoadRoleMapping(path string) (RoleMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role mapping: %w", err)
	}
	var parsed map[string][]string
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse role mapping: %w", err)
	}

	mapping := make(RoleMapping, len(parsed))
	for roleName, typeNames := range parsed {
		role, err := employeemodels.ParseRole(roleName)
		if err != nil {
			return nil, fmt.Errorf("role mapping: %w", err)
		}
		types := make([]policymodels.PolicyType, 0, len(typeNames))
		for _, typeName := range typeNames {
			policyType, err := policymodels.ParsePolicyType(typeName)
			if err != nil {
				return nil, fmt.Errorf("role mapping for %s: %w", roleName, err)
			}
			types = append(types, policyType)
		}
		mapping[role] = types
	}
	return mapping, nil
}
