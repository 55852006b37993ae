package loginflow_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/training-portal/server/loginflow"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	repo := loginflow.NewInMemoryRepo()
	now := time.Now()

	flow := &loginflow.Flow{DeviceID: "d1", CreatedAt: now}
	require.NoError(t, repo.Upsert("f1", flow))

	flow.DeviceID = "changed"
	got, err := repo.Get("f1")
	require.NoError(t, err)
	require.Equal(t, "d1", got.DeviceID)

	got.DeviceID = "changed"
	again, err := repo.Get("f1")
	require.NoError(t, err)
	require.Equal(t, "d1", again.DeviceID)

	require.NoError(t, repo.Delete("f1"))
	require.ErrorIs(t, repo.Delete("f1"), loginflow.ErrNotFound)
	_, err = repo.Get("f1")
	require.ErrorIs(t, err, loginflow.ErrNotFound)

	require.Error(t, repo.Upsert("", flow))
	require.Error(t, repo.Upsert("f2", nil))
}

func TestInMemoryRepo_DeleteExpired(t *testing.T) {
	repo := loginflow.NewInMemoryRepo()
	now := time.Now()

	require.NoError(t, repo.Upsert("old", &loginflow.Flow{CreatedAt: now.Add(-10 * time.Minute)}))
	require.NoError(t, repo.Upsert("new", &loginflow.Flow{CreatedAt: now}))

	require.Equal(t, 1, repo.DeleteExpired(now.Add(-5*time.Minute)))
	require.Equal(t, 1, repo.Len())
	_, err := repo.Get("new")
	require.NoError(t, err)
}
