package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"admin", RoleAdmin, true},
		{"employer", RoleEmployer, true},
		{"job_seeker", RoleJobSeeker, true},
		{"  Admin  ", RoleAdmin, true},
		{"EMPLOYER", RoleEmployer, true},
		{"", "", false},
		{"guest", "", false},
		{"superuser", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEmployer.Valid())
	assert.True(t, RoleJobSeeker.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("owner").Valid())
}

func TestSessionIsAdmin(t *testing.T) {
	assert.True(t, Session{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Session{Role: RoleEmployer}.IsAdmin())
	assert.False(t, Session{}.IsAdmin())
}
