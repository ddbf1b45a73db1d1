package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHost(t *testing.T) {
	assert.False(t, IsHost(RoleDriver))
	assert.True(t, IsHost(RoleHost))
	assert.True(t, IsHost(RoleAdmin))
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(RoleDriver))
	assert.False(t, IsAdmin(RoleHost))
	assert.True(t, IsAdmin(RoleAdmin))
}
