package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"blogapp_backend/internal/config"
)

// SMTPProvider delivers mail through an SMTP relay.
type SMTPProvider struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	dialer := gomail.NewDialer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
	)

	from := cfg.Email.FromEmail
	if cfg.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.FromEmail)
	}

	return &SMTPProvider{
		dialer:  dialer,
		from:    from,
		baseURL: cfg.Email.BaseURL,
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.TextBody)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", email.To, err)
	}
	return nil
}

func (p *SMTPProvider) SendVerificationEmail(to, name, token string) error {
	return p.Send(verificationEmail(p.baseURL, to, name, token))
}

func (p *SMTPProvider) SendPasswordResetEmail(to, name, token string) error {
	return p.Send(passwordResetEmail(p.baseURL, to, name, token))
}

func (p *SMTPProvider) SendWelcomeEmail(to, name string) error {
	return p.Send(welcomeEmail(p.baseURL, to, name))
}
