package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/guard-service/internal/domain"
)

func TestAccessLevelOrdering(t *testing.T) {
	assert.True(t, domain.AccessLevelAdmin.AtLeast(domain.AccessLevelStandard))
	assert.True(t, domain.AccessLevelAdmin.AtLeast(domain.AccessLevelElevated))
	assert.True(t, domain.AccessLevelAdmin.AtLeast(domain.AccessLevelAdmin))
	assert.True(t, domain.AccessLevelElevated.AtLeast(domain.AccessLevelStandard))
	assert.False(t, domain.AccessLevelElevated.AtLeast(domain.AccessLevelAdmin))
	assert.False(t, domain.AccessLevelStandard.AtLeast(domain.AccessLevelElevated))

	// An unset level ranks below everything.
	var none domain.AccessLevel
	assert.False(t, none.AtLeast(domain.AccessLevelStandard))
	assert.True(t, domain.AccessLevelStandard.AtLeast(none))
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSupervisor, domain.RoleAgent, domain.RoleClient} {
		assert.True(t, role.IsValid())
	}
	assert.False(t, domain.Role("WIZARD").IsValid())
	assert.False(t, domain.Role("").IsValid())
}

func TestHasPermission(t *testing.T) {
	user := &domain.User{Permissions: []string{"read", "write"}}
	assert.True(t, user.HasPermission("read"))
	assert.False(t, user.HasPermission("delete"))

	empty := &domain.User{}
	assert.False(t, empty.HasPermission("read"))
}
