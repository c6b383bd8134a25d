package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/infrastructure/email"
	"infinite-ideas-hub/internal/shared"
)

type NewsletterConfirmationHandler struct {
	emailService email.EmailService
}

func NewNewsletterConfirmationHandler(emailService email.EmailService) *NewsletterConfirmationHandler {
	return &NewsletterConfirmationHandler{emailService: emailService}
}

func (h *NewsletterConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.NewsletterConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal NewsletterConfirmation payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().Str("email", payload.Email).Msg("Sending newsletter confirmation")

	err := h.emailService.SendNewsletterConfirmation(ctx, email.ConfirmationEmailData{
		Email:       payload.Email,
		ConfirmLink: payload.ConfirmLink,
		ExpiresIn:   payload.ExpiresIn,
	})
	if err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to send newsletter confirmation")
		return fmt.Errorf("send newsletter confirmation: %w", err)
	}

	return nil
}
