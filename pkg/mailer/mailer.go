package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"portfolio-backend/config"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Service sends contact form emails through the Resend API
type Service struct {
	apiKey string
	from   string
	to     string
	send   sendFunc
}

type sendFunc func(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

// NewService creates a new email service backed by Resend
func NewService(cfg *config.Config) *Service {
	s := &Service{
		apiKey: cfg.ResendAPIKey,
		from:   cfg.FromEmail(),
		to:     cfg.ToEmail(),
	}
	if cfg.ResendAPIKey != "" {
		client := resend.NewClient(cfg.ResendAPIKey)
		s.send = client.Emails.SendWithContext
	}
	return s
}

// IsConfigured checks if the email service has a Resend API key
func (s *Service) IsConfigured() bool {
	return s.apiKey != ""
}

// contactEmailTemplate is the HTML template for contact form emails.
// Message is pre-rendered (escaped, newlines to <br>); everything else is
// escaped by the template engine.
const contactEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0a0e27; color: #4ade80; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
        .content { background: #f9f9f9; padding: 20px; border-radius: 8px; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #4ade80; }
        .value { margin-top: 5px; }
        .message-box { background: white; padding: 15px; border-left: 3px solid #4ade80; margin-top: 10px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>New Contact Form Submission</h2>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Name:</div>
                <div class="value">{{.SenderName}}</div>
            </div>
            <div class="field">
                <div class="label">Email:</div>
                <div class="value"><a href="mailto:{{.SenderEmail}}">{{.SenderEmail}}</a></div>
            </div>
            {{if .Subject}}
            <div class="field">
                <div class="label">Subject:</div>
                <div class="value">{{.Subject}}</div>
            </div>
            {{end}}
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.MessageHTML}}</div>
            </div>
        </div>
    </div>
</body>
</html>`

var htmlTmpl = template.Must(template.New("contact").Parse(contactEmailTemplate))

// SendContactEmail dispatches one contact email and returns the provider's
// message id. The reply-to is set to the submitter so replies land with them.
func (s *Service) SendContactEmail(ctx context.Context, data ContactEmailData) (string, error) {
	if s.send == nil {
		return "", fmt.Errorf("mailer: service is not configured")
	}

	subject := strings.TrimSpace(data.Subject)
	if subject == "" {
		subject = fmt.Sprintf("Contact Form: %s", data.SenderName)
	}

	html, err := renderHTML(data)
	if err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}

	sent, err := s.send(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: data.SenderEmail,
		Subject: subject,
		Html:    html,
		Text:    renderText(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}

func renderHTML(data ContactEmailData) (string, error) {
	var body bytes.Buffer
	err := htmlTmpl.Execute(&body, struct {
		SenderName  string
		SenderEmail string
		Subject     string
		MessageHTML template.HTML
	}{
		SenderName:  data.SenderName,
		SenderEmail: data.SenderEmail,
		Subject:     data.Subject,
		MessageHTML: messageHTML(data.Message),
	})
	if err != nil {
		return "", err
	}
	return body.String(), nil
}

// messageHTML escapes the message, then converts newlines to <br> so the
// HTML rendering preserves paragraph breaks. The text rendering keeps raw
// newlines.
func messageHTML(message string) template.HTML {
	escaped := template.HTMLEscapeString(message)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func renderText(data ContactEmailData) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "Name: %s\n", data.SenderName)
	fmt.Fprintf(&b, "Email: %s\n", data.SenderEmail)
	if data.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", data.Subject)
	}
	fmt.Fprintf(&b, "Message:\n%s", data.Message)
	return b.String()
}
