package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

// SMTPConfig configures SMTPNotifier.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AgentEmail string
	SiteName   string
	Timeout    time.Duration
	// Insecure downgrades TLS to opportunistic, for local relays.
	Insecure bool
}

// SMTPNotifier emails the agent about a new lead and sends the lead a
// confirmation.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send func(ctx context.Context, msgs ...*mail.Msg) error
}

// NewSMTPNotifier creates a notifier delivering through cfg.Host.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	n := &SMTPNotifier{cfg: cfg}
	n.send = n.dialAndSend
	return n
}

func (s *SMTPNotifier) Name() string { return "smtp" }

// NotifyLead sends the agent notification and the lead confirmation in one
// SMTP session.
func (s *SMTPNotifier) NotifyLead(ctx context.Context, n Notification) error {
	agentMsg, err := s.agentMessage(n)
	if err != nil {
		return err
	}
	msgs := []*mail.Msg{agentMsg}

	confirmMsg, err := s.confirmationMessage(n)
	if err != nil {
		// A bad lead address must not block the agent notification.
		applog.LogWarn(ctx, "skipping lead confirmation email", zap.Error(err))
	} else {
		msgs = append(msgs, confirmMsg)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	return s.send(ctx, msgs...)
}

func (s *SMTPNotifier) agentMessage(n Notification) (*mail.Msg, error) {
	subject := "New lead: " + n.Name
	if n.City != "" {
		subject += " - " + n.City
	}
	subject += " - " + n.SourceLabel()

	text := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nLocation: %s\nSource: %s\n\n%s\n",
		n.Name, n.Email, n.Phone, orDash(n.Location()), n.SourceLabel(), n.Message)

	var html bytes.Buffer
	if err := agentTemplate.Execute(&html, struct {
		Notification
		LocationText string
		SourceText   string
		SiteName     string
		ReceivedAt   string
	}{
		Notification: n,
		LocationText: orDash(n.Location()),
		SourceText:   n.SourceLabel(),
		SiteName:     s.cfg.SiteName,
		ReceivedAt:   n.CreatedAt.UTC().Format(time.RFC1123),
	}); err != nil {
		return nil, fmt.Errorf("rendering agent email: %w", err)
	}
	return s.message(s.cfg.AgentEmail, subject, text, html.String())
}

func (s *SMTPNotifier) confirmationMessage(n Notification) (*mail.Msg, error) {
	subject := "Thank you for your interest - " + s.cfg.SiteName
	text := fmt.Sprintf("Hello %s,\n\nWe received your message and will contact you shortly.\n", firstName(n.Name))
	if n.City != "" {
		text += fmt.Sprintf("We will prioritize properties in %s.\n", n.City)
	}

	var html bytes.Buffer
	if err := confirmationTemplate.Execute(&html, struct {
		FirstName string
		City      string
		SiteName  string
	}{
		FirstName: firstName(n.Name),
		City:      n.City,
		SiteName:  s.cfg.SiteName,
	}); err != nil {
		return nil, fmt.Errorf("rendering confirmation email: %w", err)
	}
	return s.message(n.Email, subject, text, html.String())
}

func (s *SMTPNotifier) message(to, subject, text, html string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, text)
	m.AddAlternativeString(mail.TypeTextHTML, html)
	return m, nil
}

func (s *SMTPNotifier) dialAndSend(ctx context.Context, msgs ...*mail.Msg) error {
	tlsPolicy := mail.TLSMandatory
	if s.cfg.Insecure {
		tlsPolicy = mail.TLSOpportunistic
	}
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(tlsPolicy),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	c, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client init failed: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, msgs...); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	applog.LogInfo(ctx, "lead emails sent", zap.Int("count", len(msgs)))
	return nil
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var agentTemplate = template.Must(template.New("agent").Parse(`<!doctype html>
<html>
  <body style="font-family:Arial,Helvetica,sans-serif; line-height:1.4;">
    <h2>New lead received</h2>
    <table cellpadding="4">
      <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
      <tr><td><strong>Email</strong></td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
      <tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
      <tr><td><strong>Location</strong></td><td>{{.LocationText}}</td></tr>
      <tr><td><strong>Source</strong></td><td>{{.SourceText}}</td></tr>
    </table>
    {{if .Message}}<p><strong>Message</strong></p><p>{{.Message}}</p>{{end}}
    <p style="color:#555; font-size:12px;">{{.SiteName}} &middot; {{.ReceivedAt}}</p>
  </body>
</html>`))

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html>
  <body style="font-family:Arial,Helvetica,sans-serif; line-height:1.4;">
    <h2>Thank you, {{.FirstName}}!</h2>
    <p>We received your message and will contact you shortly.</p>
    {{if .City}}<p>We will prioritize properties in <strong>{{.City}}</strong>.</p>{{end}}
    <p style="color:#555; font-size:12px;">{{.SiteName}}</p>
  </body>
</html>`))

// Compile-time interface check
var _ Notifier = (*SMTPNotifier)(nil)
