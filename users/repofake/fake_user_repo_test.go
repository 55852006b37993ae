package fakeuserrepo_test

import (
	"testing"

	"github.com/jrsteele09/training-portal/users"
	fakeuserrepo "github.com/jrsteele09/training-portal/users/repofake"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, id, username, email string, role users.RoleType) *users.User {
	t.Helper()
	u, err := users.NewIdentity(id, username, "User "+id, email, role)
	require.NoError(t, err)
	return u
}

func TestFakeUserRepo_Lookup(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	u := newUser(t, "1", "manager", "m@x.com", users.RoleManager)
	require.NoError(t, repo.AddUser(u, "Secret1@3", "158637"))

	t.Run("by username", func(t *testing.T) {
		c, err := repo.Lookup("manager")
		require.NoError(t, err)
		require.Same(t, u, c.Identity)
	})

	t.Run("by email", func(t *testing.T) {
		c, err := repo.Lookup("m@x.com")
		require.NoError(t, err)
		require.Same(t, u, c.Identity)
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := repo.Lookup("M@x.com")
		require.ErrorIs(t, err, users.ErrNotFound)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID("1")
		require.NoError(t, err)
		require.Same(t, u, got)

		_, err = repo.GetByID("2")
		require.ErrorIs(t, err, users.ErrNotFound)
	})
}

func TestFakeUserRepo_RejectsDuplicates(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, repo.AddUser(newUser(t, "1", "one", "one@x.com", users.RoleEmployee), "pw", "1"))

	err := repo.AddUser(newUser(t, "1", "other", "other@x.com", users.RoleEmployee), "pw", "2")
	require.ErrorIs(t, err, users.ErrDuplicateUser)

	err = repo.AddUser(newUser(t, "2", "one", "two@x.com", users.RoleEmployee), "pw", "2")
	require.ErrorIs(t, err, users.ErrDuplicateUser)

	err = repo.AddUser(newUser(t, "3", "three", "one@x.com", users.RoleEmployee), "pw", "3")
	require.ErrorIs(t, err, users.ErrDuplicateUser)

	require.Len(t, repo.List(), 1)
}

func TestFakeUserRepo_RequiresSecrets(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	err := repo.AddUser(newUser(t, "1", "one", "one@x.com", users.RoleEmployee), "pw", "")
	require.Error(t, err)

	err = repo.Add(&users.Credential{Identity: &users.User{ID: "2", Username: "two", Name: "Two", Email: "two@x.com", Role: "root"}, PasswordHash: "h", Passcode: "1"})
	require.ErrorIs(t, err, users.ErrInvalidRole)
}

func TestFakeUserRepo_ListOrdered(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, repo.AddUser(newUser(t, "3", "c", "c@x.com", users.RoleAdmin), "pw", "3"))
	require.NoError(t, repo.AddUser(newUser(t, "1", "a", "a@x.com", users.RoleEmployee), "pw", "1"))
	require.NoError(t, repo.AddUser(newUser(t, "2", "b", "b@x.com", users.RoleManager), "pw", "2"))

	list := repo.List()
	require.Len(t, list, 3)
	require.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})
}
