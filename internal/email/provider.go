package email

// Email is a single outbound message.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Provider sends outbound mail. The SMTP implementation is used in
// production, the mock in tests and local development without a relay.
type Provider interface {
	Send(email *Email) error
	SendVerificationEmail(to, name, token string) error
	SendPasswordResetEmail(to, name, token string) error
	SendWelcomeEmail(to, name string) error
}
