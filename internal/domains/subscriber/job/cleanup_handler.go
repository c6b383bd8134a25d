package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/domains/subscriber/service"
	"infinite-ideas-hub/internal/shared"
)

type PendingCleanupHandler struct {
	subscriberService service.ServiceInterface
}

func NewPendingCleanupHandler(subscriberService service.ServiceInterface) *PendingCleanupHandler {
	return &PendingCleanupHandler{subscriberService: subscriberService}
}

func (h *PendingCleanupHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupPendingSubscribersPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal CleanupPendingSubscribers payload")
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	deleted, err := h.subscriberService.CleanupExpired(ctx, payload.BatchSize)
	if err != nil {
		log.Error().Err(err).Int64("deleted", deleted).Msg("Pending subscriber cleanup failed")
		return fmt.Errorf("cleanup pending subscribers: %w", err)
	}

	log.Info().Int64("deleted", deleted).Msg("Expired pending subscribers removed")
	return nil
}
