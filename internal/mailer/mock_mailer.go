package mailer

import "sync"

// MockMailer records sent mails for assertions in tests.
type MockMailer struct {
	mu   sync.Mutex
	Sent []SentMail

	SendFunc func(recipient, templateFile string, data any) error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

type SentMail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// SentMails returns a snapshot of everything sent so far.
func (m *MockMailer) SentMails() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]SentMail(nil), m.Sent...)
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentMail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(recipient, templateFile, data)
	}

	return nil
}
