package main

import (
	"github.com/hibiken/asynq"

	subscriberJob "infinite-ideas-hub/internal/domains/subscriber/job"
	"infinite-ideas-hub/internal/infrastructure/email"
	emailjob "infinite-ideas-hub/internal/infrastructure/email/job"
	"infinite-ideas-hub/internal/shared"
	"infinite-ideas-hub/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	newsletterConfirmation *emailjob.NewsletterConfirmationHandler
	pendingCleanup         *subscriberJob.PendingCleanupHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(c.Config.SMTP, c.Config.App.Name)

	return &HandlerRegistry{
		newsletterConfirmation: emailjob.NewNewsletterConfirmationHandler(emailSvc),
		pendingCleanup:         subscriberJob.NewPendingCleanupHandler(c.SubscriberService),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendNewsletterConfirmation, h.newsletterConfirmation.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupPendingSubscribers, h.pendingCleanup.ProcessTask)
}
