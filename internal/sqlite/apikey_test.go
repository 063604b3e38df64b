package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/activation/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_CreateResolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	token, err := repo.Create(ctx, "tenant1", "ci")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	tenantID, err := repo.ResolveTenant(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "tenant1", tenantID)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT key_hash FROM api_keys`).Scan(&stored))
	require.Equal(t, HashToken(token), stored)
	require.NotEqual(t, token, stored)

	_, err = repo.ResolveTenant(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Create(ctx, " ", "")
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
