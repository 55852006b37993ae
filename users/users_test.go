package users_test

import (
	"testing"

	"github.com/jrsteele09/training-portal/users"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range []string{"employee", "manager", "admin"} {
		t.Run(r, func(t *testing.T) {
			role, err := users.ParseRole(r)
			require.NoError(t, err)
			require.Equal(t, users.RoleType(r), role)
		})
	}

	for _, r := range []string{"", "Admin", "super_admin", "employee "} {
		t.Run("reject "+r, func(t *testing.T) {
			_, err := users.ParseRole(r)
			require.ErrorIs(t, err, users.ErrInvalidRole)
		})
	}
}

func TestNewIdentity(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		u, err := users.NewIdentity("1", "admin1", "Ada Admin", "a@x.com", users.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, users.RoleAdmin, u.Role)
		require.True(t, u.HasRole(users.RoleManager, users.RoleAdmin))
		require.False(t, u.HasRole(users.RoleEmployee))
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := users.NewIdentity("1", "admin1", "Ada Admin", "a@x.com", users.RoleType("owner"))
		require.ErrorIs(t, err, users.ErrInvalidRole)
	})

	t.Run("bad email", func(t *testing.T) {
		_, err := users.NewIdentity("1", "admin1", "Ada Admin", "not-an-email", users.RoleAdmin)
		require.Error(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := users.NewIdentity("", "admin1", "Ada Admin", "a@x.com", users.RoleAdmin)
		require.Error(t, err)
	})
}

func TestCredentialMatches(t *testing.T) {
	u, err := users.NewIdentity("1", "admin1", "Ada Admin", "a@x.com", users.RoleAdmin)
	require.NoError(t, err)
	hash, err := users.HashPassword("P@ss1")
	require.NoError(t, err)
	c := &users.Credential{Identity: u, PasswordHash: hash, Passcode: "111111"}

	require.True(t, c.Matches("P@ss1", "111111"))
	require.False(t, c.Matches("P@ss1", "111112"))
	require.False(t, c.Matches("p@ss1", "111111"))
	require.False(t, c.Matches("", ""))
	require.False(t, c.Matches("P@ss1", "111111 "))
}
