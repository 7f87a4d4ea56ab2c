package mailing

import (
	"fmt"
	"html"
	"strconv"

	"gopkg.in/gomail.v2"
)

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		cfg  MailConfig
		port int
	}

	noopMailer struct{}
)

// NewMailer returns an SMTP mailer, or a mailer that drops every message when
// no SMTP host is configured.
func NewMailer(cfg MailConfig) (Mailer, error) {
	if cfg.SMTPHost == "" {
		return noopMailer{}, nil
	}
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTPPort, err)
	}
	return &smtpMailer{cfg: cfg, port: port}, nil
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.cfg.SMTPEmail, m.cfg.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(
		m.cfg.SMTPHost,
		m.port,
		m.cfg.SMTPEmail,
		m.cfg.SMTPPassword,
	)
	return dialer.DialAndSend(mailer)
}

func (noopMailer) SendMail(string, string, string) error { return nil }

func WelcomeMail(appURL string, name string) (subject string, body string) {
	subject = "Welcome to Recipe API"
	body = fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account is ready. Start sharing recipes at <a href=\"%s\">%s</a>.</p>",
		html.EscapeString(name), appURL, appURL,
	)
	return subject, body
}
