package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"infinite-ideas-hub/internal/domains/subscriber/model"
	"infinite-ideas-hub/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) IsSubscribed(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM subscribers WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subscriber: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreatePending(ctx context.Context, p *model.PendingSubscriber) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO pending_subscribers (email, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		p.Email, p.Token, p.ExpiresAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert pending subscriber: %w", err)
	}
	return nil
}

func (r *postgresRepository) Confirm(ctx context.Context, token string, now time.Time) (*model.Subscriber, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Subscriber, error) {
		var email string
		err := tx.QueryRow(ctx, `
			SELECT email FROM pending_subscribers
			WHERE token = $1 AND expires_at > $2
			FOR UPDATE`, token, now).Scan(&email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrTokenInvalid
			}
			return nil, fmt.Errorf("find pending subscriber: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO subscribers (email) VALUES ($1)
			ON CONFLICT (email) DO NOTHING`, email); err != nil {
			return nil, fmt.Errorf("insert subscriber: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM pending_subscribers WHERE email = $1`, email); err != nil {
			return nil, fmt.Errorf("delete pending subscriber: %w", err)
		}

		s := &model.Subscriber{Email: email}
		if err := tx.QueryRow(ctx, `SELECT id, subscribed_at FROM subscribers WHERE email = $1`, email).
			Scan(&s.ID, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("load subscriber: %w", err)
		}
		return s, nil
	})
}

func (r *postgresRepository) DeleteExpiredPending(ctx context.Context, now time.Time, limit int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM pending_subscribers
		WHERE id IN (
			SELECT id FROM pending_subscribers
			WHERE expires_at <= $1
			LIMIT $2
		)`, now, limit)
	if err != nil {
		return 0, fmt.Errorf("delete expired pending subscribers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return n, nil
}
