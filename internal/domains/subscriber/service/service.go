package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/domains/subscriber/model"
	"infinite-ideas-hub/internal/domains/subscriber/repository"
	"infinite-ideas-hub/internal/shared"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/utils"
)

const (
	tokenBytes          = 32
	confirmMaxRetry     = 5
	defaultCleanupBatch = 500

	enqueueWarning = "subscribed, but the confirmation email could not be queued"
)

type ServiceInterface interface {
	Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.SubscribeResponse, []string, error)
	// Confirm returns the URL the browser should be sent to.
	Confirm(ctx context.Context, token string) (string, error)
	Check(ctx context.Context, email string) (bool, error)
	CleanupExpired(ctx context.Context, batchSize int) (int64, error)
	Count(ctx context.Context) (int, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Options struct {
	PublicURL  string
	ConfirmTTL time.Duration
}

type subscriberService struct {
	repo     repository.Repository
	enqueuer TaskEnqueuer
	opts     Options
	now      func() time.Time
}

func NewSubscriberService(repo repository.Repository, enqueuer TaskEnqueuer, opts Options) ServiceInterface {
	opts.PublicURL = strings.TrimRight(opts.PublicURL, "/")
	if opts.ConfirmTTL <= 0 {
		opts.ConfirmTTL = 48 * time.Hour
	}
	return &subscriberService{
		repo:     repo,
		enqueuer: enqueuer,
		opts:     opts,
		now:      time.Now,
	}
}

func (s *subscriberService) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.SubscribeResponse, []string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, nil, result.InvalidErr(err)
	}

	already, err := s.repo.IsSubscribed(ctx, req.Email)
	if err != nil {
		return nil, nil, result.Internal(err)
	}
	if already {
		return &model.SubscribeResponse{Already: true}, nil, nil
	}

	token, err := utils.GenerateSecureToken(tokenBytes)
	if err != nil {
		return nil, nil, result.Internal(fmt.Errorf("generate token: %w", err))
	}

	pending := &model.PendingSubscriber{
		Email:     req.Email,
		Token:     token,
		ExpiresAt: s.now().Add(s.opts.ConfirmTTL),
	}
	if err := s.repo.CreatePending(ctx, pending); err != nil {
		return nil, nil, result.Internal(err)
	}

	var warnings []string
	if err := s.enqueueConfirmation(ctx, pending); err != nil {
		log.Warn().Err(err).Str("email", pending.Email).Msg("failed to enqueue newsletter confirmation")
		warnings = append(warnings, enqueueWarning)
	}

	log.Info().Str("email", pending.Email).Msg("newsletter subscription pending")
	return &model.SubscribeResponse{Already: false}, warnings, nil
}

func (s *subscriberService) enqueueConfirmation(ctx context.Context, p *model.PendingSubscriber) error {
	payload, err := json.Marshal(shared.NewsletterConfirmationPayload{
		Email:       p.Email,
		ConfirmLink: s.ConfirmLink(p.Token),
		ExpiresIn:   humanizeTTL(s.opts.ConfirmTTL),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendNewsletterConfirmation, payload)
	_, err = s.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(confirmMaxRetry),
	)
	return err
}

func (s *subscriberService) ConfirmLink(token string) string {
	return s.opts.PublicURL + "/api/v1/newsletter/confirm?token=" + url.QueryEscape(token)
}

func (s *subscriberService) Confirm(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", model.ErrTokenRequired
	}

	sub, err := s.repo.Confirm(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, model.ErrTokenInvalid) {
			return "", model.ErrTokenInvalid
		}
		return "", result.Internal(err)
	}

	log.Info().Str("email", sub.Email).Msg("newsletter subscription confirmed")
	return s.opts.PublicURL + "/?subscribed=1", nil
}

func (s *subscriberService) Check(ctx context.Context, email string) (bool, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return false, model.ErrEmailRequired
	}

	exists, err := s.repo.IsSubscribed(ctx, email)
	if err != nil {
		return false, result.Internal(err)
	}
	return exists, nil
}

// CleanupExpired purges expired pending sign-ups in batches until a short
// batch signals there is nothing left.
func (s *subscriberService) CleanupExpired(ctx context.Context, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = defaultCleanupBatch
	}

	now := s.now()
	var total int64
	for {
		n, err := s.repo.DeleteExpiredPending(ctx, now, batchSize)
		if err != nil {
			return total, result.Internal(err)
		}
		total += n
		if n < int64(batchSize) {
			return total, nil
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
}

func (s *subscriberService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, result.Internal(err)
	}
	return n, nil
}

func humanizeTTL(d time.Duration) string {
	if hours := int(d.Hours()); hours >= 1 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d.Minutes()))
}
