package email

import "sync"

// MockProvider records outbound mail instead of sending it.
type MockProvider struct {
	mu   sync.Mutex
	Sent []Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, *email)
	return nil
}

func (p *MockProvider) SendVerificationEmail(to, name, token string) error {
	return p.Send(verificationEmail("http://localhost", to, name, token))
}

func (p *MockProvider) SendPasswordResetEmail(to, name, token string) error {
	return p.Send(passwordResetEmail("http://localhost", to, name, token))
}

func (p *MockProvider) SendWelcomeEmail(to, name string) error {
	return p.Send(welcomeEmail("http://localhost", to, name))
}

// LastTo returns the recipient of the most recent message, or "".
func (p *MockProvider) LastTo() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Sent) == 0 {
		return ""
	}
	return p.Sent[len(p.Sent)-1].To
}
