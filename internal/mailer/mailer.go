package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/go-mail/mail"
)

//go:embed templates/*
var templatesFS embed.FS

const sendAttempts = 3

// Message is a rendered e-mail.
type Message struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

// Mailer represents a mailer service.
type Mailer struct {
	dialer *mail.Dialer
	sender string
}

// New creates a new Mailer instance.
func New(host string, port int, username, password, sender string) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second
	return &Mailer{
		dialer: dialer,
		sender: sender,
	}
}

// Render executes the subject, plainBody and htmlBody blocks of a template.
func Render(templateName string, data any) (Message, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/"+templateName)
	if err != nil {
		return Message{}, err
	}

	var msg Message
	blocks := []struct {
		name string
		dest *string
	}{
		{"subject", &msg.Subject},
		{"plainBody", &msg.PlainBody},
		{"htmlBody", &msg.HTMLBody},
	}
	for _, b := range blocks {
		buf := new(bytes.Buffer)
		if err := tmpl.ExecuteTemplate(buf, b.name, data); err != nil {
			return Message{}, fmt.Errorf("render %s: %w", b.name, err)
		}
		*b.dest = buf.String()
	}
	return msg, nil
}

// Send renders templateName with data and delivers it to the recipient,
// retrying a failed delivery up to three times.
func (m *Mailer) Send(ctx context.Context, to, templateName string, data any) error {
	rendered, err := Render(templateName, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", rendered.Subject)
	msg.SetBody("text/plain", rendered.PlainBody)
	msg.AddAlternative("text/html", rendered.HTMLBody)

	for attempt := 1; attempt <= sendAttempts; attempt++ {
		if err = m.dialer.DialAndSend(msg); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	return err
}
