package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindcare/backend/internal/config"
	"github.com/zhouzirui/mindcare/backend/internal/db"
	"github.com/zhouzirui/mindcare/backend/internal/model/profile"
)

func TestPostgresDisplayName(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	ctx := context.Background()
	store, err := db.NewPostgres(ctx, config.ProfileConfig{DatabaseURL: dsn, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.EnsureSchema(ctx))

	userID := uuid.NewString()
	t.Cleanup(func() {
		_, _ = store.Pool.Exec(context.Background(), "DELETE FROM user_profiles WHERE id = $1", userID)
	})

	_, err = store.DisplayName(ctx, userID)
	require.ErrorIs(t, err, profile.ErrProfileNotFound)

	require.NoError(t, store.UpsertProfile(ctx, profile.Profile{UserID: userID, DisplayName: "Ada"}))

	name, err := store.DisplayName(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "Ada", name)
}

func TestNewPostgresRequiresURL(t *testing.T) {
	_, err := db.NewPostgres(context.Background(), config.ProfileConfig{})
	require.Error(t, err)
}
