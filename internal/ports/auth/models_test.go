package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("  Veterinario ")
	assert.True(t, ok)
	assert.Equal(t, RoleVeterinario, r)

	_, ok = ParseRole("jefe")
	assert.False(t, ok)
}

func TestRoleSet_Allows(t *testing.T) {
	s := NewRoleSet(RoleAdmin, RoleRecepcionista)
	assert.True(t, s.Allows(RoleAdmin))
	assert.True(t, s.Allows(RoleRecepcionista))
	assert.False(t, s.Allows(RoleVeterinario))
	assert.False(t, NewRoleSet().Allows(RoleAdmin))
}
