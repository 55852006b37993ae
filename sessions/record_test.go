package sessions_test

import (
	"testing"

	"github.com/jrsteele09/training-portal/sessions"
	"github.com/jrsteele09/training-portal/users"
	"github.com/stretchr/testify/require"
)

func testIdentity(t *testing.T) *users.User {
	t.Helper()
	u, err := users.NewIdentity("4", "admin1", "Ada Admin", "a@x.com", users.RoleAdmin)
	require.NoError(t, err)
	return u
}

func TestSession(t *testing.T) {
	anon := sessions.Anonymous()
	require.False(t, anon.IsAuthenticated())
	require.Nil(t, anon.User())
	_, ok := anon.Role()
	require.False(t, ok)

	u := testIdentity(t)
	s := sessions.Authenticated(u)
	require.True(t, s.IsAuthenticated())
	require.Same(t, u, s.User())
	role, ok := s.Role()
	require.True(t, ok)
	require.Equal(t, users.RoleAdmin, role)

	require.False(t, sessions.Authenticated(nil).IsAuthenticated())
	require.True(t, anon.Equal(sessions.Session{}))
	require.False(t, anon.Equal(s))
}

func TestEncodeDecode(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		u := testIdentity(t)
		data, err := sessions.Encode(sessions.Authenticated(u))
		require.NoError(t, err)
		require.JSONEq(t, `{"id":"4","username":"admin1","email":"a@x.com","role":"admin","name":"Ada Admin","authenticated":true}`, string(data))

		r, err := sessions.Decode(data)
		require.NoError(t, err)
		got, err := r.Identity()
		require.NoError(t, err)
		require.True(t, u.Equal(got))
	})

	t.Run("anonymous", func(t *testing.T) {
		data, err := sessions.Encode(sessions.Anonymous())
		require.NoError(t, err)
		require.JSONEq(t, `{"authenticated":false}`, string(data))

		r, err := sessions.Decode(data)
		require.NoError(t, err)
		require.False(t, r.Authenticated)
		got, err := r.Identity()
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestDecode_Corrupt(t *testing.T) {
	tests := map[string]string{
		"not json":          `{"authenticated":`,
		"wrong type":        `{"authenticated":"yes"}`,
		"flag without user": `{"authenticated":true}`,
		"user without flag": `{"id":"4","username":"admin1","email":"a@x.com","role":"admin","name":"Ada Admin","authenticated":false}`,
		"unknown role":      `{"id":"4","username":"admin1","email":"a@x.com","role":"root","name":"Ada Admin","authenticated":true}`,
		"missing email":     `{"id":"4","username":"admin1","role":"admin","name":"Ada Admin","authenticated":true}`,
		"array":             `[]`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := sessions.Decode([]byte(data))
			require.ErrorIs(t, err, sessions.ErrCorruptRecord)
		})
	}
}
