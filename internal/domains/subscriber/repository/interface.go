package repository

import (
	"context"
	"time"

	"infinite-ideas-hub/internal/domains/subscriber/model"
)

type Repository interface {
	IsSubscribed(ctx context.Context, email string) (bool, error)
	CreatePending(ctx context.Context, p *model.PendingSubscriber) error

	// Confirm consumes an unexpired token and records the subscriber.
	// Confirming an already subscribed email succeeds.
	Confirm(ctx context.Context, token string, now time.Time) (*model.Subscriber, error)

	// DeleteExpiredPending removes at most limit expired sign-ups.
	DeleteExpiredPending(ctx context.Context, now time.Time, limit int) (int64, error)

	Count(ctx context.Context) (int, error)
}
