package notification

import (
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	notificationport "github.com/alphaseam/donorbox-backend/internal/domain/port/notification"
	gomail "gopkg.in/gomail.v2"
)

// Config holds SMTP settings for outgoing mail
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// OrgAddress receives the organisation-facing copy of lifecycle notifications
	OrgAddress string `mapstructure:"org_address"`
}

// SMTPSender delivers notification emails over SMTP
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	logger coreport.Logger
}

// NewSMTPSender creates an SMTP-backed sender
func NewSMTPSender(cfg Config, logger coreport.Logger) notificationport.Sender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// Send delivers one message. Each call dials a fresh SMTP session; delivery
// volume is low enough that connection reuse is not worth the bookkeeping.
func (s *SMTPSender) Send(address, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", address)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send email", map[string]any{
			"to":      address,
			"subject": subject,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Debug("Email sent", map[string]any{
		"to":      address,
		"subject": subject,
	})
	return nil
}
