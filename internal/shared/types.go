package shared

// Queue names, highest priority first
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// Task types handled by cmd/worker
const (
	TypeSendNewsletterConfirmation = "email:newsletter_confirmation"
	TypeCleanupPendingSubscribers  = "newsletter:cleanup_pending"
)

// NewsletterConfirmationPayload is enqueued on every fresh subscribe request
type NewsletterConfirmationPayload struct {
	Email       string `json:"email"`
	ConfirmLink string `json:"confirmLink"`
	ExpiresIn   string `json:"expiresIn"`
}

// CleanupPendingSubscribersPayload is the body of the scheduled purge
type CleanupPendingSubscribersPayload struct {
	BatchSize int `json:"batchSize"`
}
