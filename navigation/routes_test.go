package navigation_test

import (
	"testing"

	"github.com/jrsteele09/training-portal/auth"
	"github.com/jrsteele09/training-portal/navigation"
	"github.com/jrsteele09/training-portal/sessions"
	"github.com/jrsteele09/training-portal/users"
	"github.com/stretchr/testify/require"
)

func sessionFor(t *testing.T, role users.RoleType) sessions.Session {
	t.Helper()
	u, err := users.NewIdentity("1", "u", "U", "u@example.com", role)
	require.NoError(t, err)
	return sessions.Authenticated(u)
}

func names(entries []navigation.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestVisible(t *testing.T) {
	tests := []struct {
		role users.RoleType
		want []string
	}{
		{users.RoleEmployee, []string{"dashboard", "training", "policies"}},
		{users.RoleManager, []string{"dashboard", "training", "policies", "compliance", "reports"}},
		{users.RoleAdmin, []string{"dashboard", "training", "policies", "compliance", "reports", "admin"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			require.Equal(t, tt.want, names(navigation.Visible(sessionFor(t, tt.role))))
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		require.Empty(t, navigation.Visible(sessions.Anonymous()))
	})
}

// Menu visibility and the route guard must agree for every route.
func TestVisibleMatchesGuard(t *testing.T) {
	for _, role := range users.Roles {
		s := sessionFor(t, role)
		visible := map[string]bool{}
		for _, e := range navigation.Visible(s) {
			visible[e.Path] = true
		}
		for _, r := range navigation.Routes {
			require.Equal(t, auth.Authorize(s, r.Required) == auth.Render, visible[r.Path], "%s %s", role, r.Path)
		}
	}
}

func TestLookup(t *testing.T) {
	r, ok := navigation.Lookup("/compliance")
	require.True(t, ok)
	require.Equal(t, "Compliance", r.Title)

	_, ok = navigation.Lookup("/nope")
	require.False(t, ok)
}
