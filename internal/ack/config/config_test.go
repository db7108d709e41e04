package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	employeemodels "comply/internal/employee/models"
	policymodels "comply/internal/policy/models"
)

func TestDefaultRoleMapping(t *testing.T) {
	mapping := DefaultRoleMapping()

	assert.ElementsMatch(t, []policymodels.PolicyType{
		policymodels.PolicyTypeDataPrivacy,
		policymodels.PolicyTypeAcceptableUse,
		policymodels.PolicyTypeInfoSec,
	}, mapping.RequiredTypes(employeemodels.RoleHR))

	assert.Len(t, mapping.RequiredTypes(employeemodels.RoleEngineering), 4)
	assert.Equal(t, []policymodels.PolicyType{policymodels.PolicyTypeAcceptableUse},
		mapping.RequiredTypes(employeemodels.RoleSales))
	assert.Equal(t, []policymodels.PolicyType{policymodels.PolicyTypeCryptographic},
		mapping.RequiredTypes(employeemodels.RoleExecutive))
}

func TestRequiredTypesUnmappedRole(t *testing.T) {
	mapping := RoleMapping{}
	assert.Nil(t, mapping.RequiredTypes(employeemodels.RoleSales))
}

func TestLoadRoleMapping(t *testing.T) {
	writeMapping := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "roles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("parses a valid table", func(t *testing.T) {
		path := writeMapping(t, `
SALES:
  - ACCEPTABLE_USE
  - DATA_PRIVACY
EXECUTIVE:
  - CRYPTOGRAPHIC
`)
		mapping, err := LoadRoleMapping(path)
		require.NoError(t, err)

		assert.Equal(t, []policymodels.PolicyType{
			policymodels.PolicyTypeAcceptableUse,
			policymodels.PolicyTypeDataPrivacy,
		}, mapping.RequiredTypes(employeemodels.RoleSales))
		assert.Nil(t, mapping.RequiredTypes(employeemodels.RoleHR))
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		path := writeMapping(t, "CONTRACTOR:\n  - INFOSEC\n")
		_, err := LoadRoleMapping(path)
		require.Error(t, err)
	})

	t.Run("rejects unknown policy types", func(t *testing.T) {
		path := writeMapping(t, "SALES:\n  - GDPR\n")
		_, err := LoadRoleMapping(path)
		require.Error(t, err)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		path := writeMapping(t, "SALES: [unterminated\n")
		_, err := LoadRoleMapping(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRoleMapping(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30, cfg.NewHireDueDays)
	assert.Equal(t, 3, cfg.PeriodicYears)
}
