package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"

	jwemail "github.com/jordan-wright/email"

	"infinite-ideas-hub/internal/config"
	"infinite-ideas-hub/pkg/logger"
)

// ConfirmationEmailData fills the newsletter double opt-in message
type ConfirmationEmailData struct {
	Email       string
	ConfirmLink string
	ExpiresIn   string
	SiteName    string
}

type EmailService interface {
	SendNewsletterConfirmation(ctx context.Context, data ConfirmationEmailData) error
}

type smtpEmailService struct {
	addr     string
	from     string
	siteName string
	auth     smtp.Auth
	send     func(e *jwemail.Email, addr string, auth smtp.Auth) error
}

var confirmationTemplate = template.Must(template.New("confirm").Parse(`<p>Hi,</p>
<p>Someone (hopefully you) asked to subscribe <strong>{{.Email}}</strong> to the {{.SiteName}} newsletter.</p>
<p><a href="{{.ConfirmLink}}">Confirm your subscription</a></p>
<p>The link is valid for {{.ExpiresIn}}. If you did not ask for this, ignore this email.</p>`))

func NewSMTPEmailService(cfg config.SMTPConfig, siteName string) EmailService {
	s := &smtpEmailService{
		addr:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		from:     cfg.From,
		siteName: siteName,
		send: func(e *jwemail.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
	if cfg.Username != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return s
}

func (s *smtpEmailService) SendNewsletterConfirmation(ctx context.Context, data ConfirmationEmailData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data.SiteName == "" {
		data.SiteName = s.siteName
	}

	var html bytes.Buffer
	if err := confirmationTemplate.Execute(&html, data); err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}

	e := jwemail.NewEmail()
	e.From = s.from
	e.To = []string{data.Email}
	e.Subject = fmt.Sprintf("Confirm your %s subscription", data.SiteName)
	e.Text = []byte(fmt.Sprintf("Confirm your subscription: %s\nThe link is valid for %s.", data.ConfirmLink, data.ExpiresIn))
	e.HTML = html.Bytes()

	if err := s.send(e, s.addr, s.auth); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.addr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
