package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"infinite-ideas-hub/internal/infrastructure/email"
	"infinite-ideas-hub/internal/shared"
)

type mockEmailService struct{ mock.Mock }

func (m *mockEmailService) SendNewsletterConfirmation(ctx context.Context, data email.ConfirmationEmailData) error {
	return m.Called(ctx, data).Error(0)
}

func newTask(t *testing.T, p shared.NewsletterConfirmationPayload) *asynq.Task {
	body, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeSendNewsletterConfirmation, body)
}

func TestNewsletterConfirmationHandler_Sends(t *testing.T) {
	svc := new(mockEmailService)
	svc.On("SendNewsletterConfirmation", mock.Anything, email.ConfirmationEmailData{
		Email:       "reader@example.com",
		ConfirmLink: "http://x/confirm?token=abc",
		ExpiresIn:   "48h",
	}).Return(nil)

	h := NewNewsletterConfirmationHandler(svc)
	err := h.ProcessTask(context.Background(), newTask(t, shared.NewsletterConfirmationPayload{
		Email:       "reader@example.com",
		ConfirmLink: "http://x/confirm?token=abc",
		ExpiresIn:   "48h",
	}))

	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestNewsletterConfirmationHandler_SMTPFailureRetries(t *testing.T) {
	svc := new(mockEmailService)
	svc.On("SendNewsletterConfirmation", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	err := NewNewsletterConfirmationHandler(svc).ProcessTask(context.Background(),
		newTask(t, shared.NewsletterConfirmationPayload{Email: "a@b.co"}))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestNewsletterConfirmationHandler_BadPayloadSkipsRetry(t *testing.T) {
	svc := new(mockEmailService)
	task := asynq.NewTask(shared.TypeSendNewsletterConfirmation, []byte("{not json"))

	err := NewNewsletterConfirmationHandler(svc).ProcessTask(context.Background(), task)

	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	svc.AssertNotCalled(t, "SendNewsletterConfirmation", mock.Anything, mock.Anything)
}
