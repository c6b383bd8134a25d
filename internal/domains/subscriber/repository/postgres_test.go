package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-ideas-hub/internal/domains/subscriber/model"
	"infinite-ideas-hub/internal/infrastructure/database"
)

// openTestPool connects to TEST_DATABASE_URL and applies migrations.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, (&database.PostgresDB{Pool: pool}).Migrate(ctx))
	return pool
}

func TestPostgresRepository_ConfirmFlow(t *testing.T) {
	pool := openTestPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	email := "it-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM subscribers WHERE email = $1`, email)
		_, _ = pool.Exec(ctx, `DELETE FROM pending_subscribers WHERE email = $1`, email)
	})

	first := &model.PendingSubscriber{Email: email, Token: uuid.NewString(), ExpiresAt: now.Add(time.Hour)}
	second := &model.PendingSubscriber{Email: email, Token: uuid.NewString(), ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.CreatePending(ctx, first))
	require.NoError(t, repo.CreatePending(ctx, second))

	subscribed, err := repo.IsSubscribed(ctx, email)
	require.NoError(t, err)
	assert.False(t, subscribed)

	sub, err := repo.Confirm(ctx, second.Token, now)
	require.NoError(t, err)
	assert.Equal(t, email, sub.Email)

	// confirming removes every pending row for the address
	_, err = repo.Confirm(ctx, first.Token, now)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)

	subscribed, err = repo.IsSubscribed(ctx, email)
	require.NoError(t, err)
	assert.True(t, subscribed)
}

func TestPostgresRepository_ExpiredTokens(t *testing.T) {
	pool := openTestPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	email := "it-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM pending_subscribers WHERE email = $1`, email)
	})

	p := &model.PendingSubscriber{Email: email, Token: uuid.NewString(), ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, repo.CreatePending(ctx, p))

	_, err := repo.Confirm(ctx, p.Token, now)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)

	deleted, err := repo.DeleteExpiredPending(ctx, now, 1000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))
}
