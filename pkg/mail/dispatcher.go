package mail

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"
)

// DefaultSendTimeout is the overall wall-clock budget for one dispatch. The
// losing side of the race is abandoned, not awaited.
const DefaultSendTimeout = 45 * time.Second

// Config selects and parameterizes the active provider. Presence of the
// Resend API key selects the primary HTTP API; otherwise SMTP credentials
// select the fallback transport. Evaluated once at construction.
type Config struct {
	ResendAPIKey string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	From        string // sender identity, may be "Name <addr>"
	To          string // operator's inbox
	SendTimeout time.Duration
}

// Submission is a validated contact-form submission ready for dispatch.
type Submission struct {
	Name       string
	Email      string
	Message    string
	ReceivedAt time.Time
}

// Delivery is the success outcome of a dispatch.
type Delivery struct {
	Provider  string
	MessageID string
}

// Dispatcher turns a submission into a delivered email through the one
// provider fixed at startup. Safe for concurrent use; it holds no per-request
// state.
type Dispatcher struct {
	sender  Sender // nil when no provider is configured
	from    string
	to      string
	timeout time.Duration
}

func NewDispatcher(cfg Config) *Dispatcher {
	var sender Sender
	switch {
	case cfg.ResendAPIKey != "":
		sender = NewResendSender(cfg.ResendAPIKey)
	case cfg.SMTPUsername != "" && cfg.SMTPPassword != "":
		sender = NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
	}

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}

	return &Dispatcher{
		sender:  sender,
		from:    cfg.From,
		to:      cfg.To,
		timeout: timeout,
	}
}

// NewDispatcherWithSender wires an explicit sender. Used by tests to
// substitute a fake provider.
func NewDispatcherWithSender(sender Sender, from, to string, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &Dispatcher{sender: sender, from: from, to: to, timeout: timeout}
}

// IsConfigured reports whether a provider was selected at startup.
func (d *Dispatcher) IsConfigured() bool {
	return d.sender != nil
}

// Provider returns the active provider name, or "" when not configured.
func (d *Dispatcher) Provider() string {
	if d.sender == nil {
		return ""
	}
	return d.sender.Name()
}

// Send races the provider call against the overall deadline and resolves
// exactly once. A provider response arriving after the deadline is discarded:
// the result channel is buffered so the late goroutine never blocks, and the
// select has already returned.
func (d *Dispatcher) Send(ctx context.Context, sub Submission) (*Delivery, error) {
	if d.sender == nil {
		return nil, &DispatchError{Kind: KindNotConfigured, Detail: "no email provider credentials present"}
	}

	msg, err := d.buildMessage(sub)
	if err != nil {
		return nil, &DispatchError{Kind: KindUnknown, Detail: err.Error(), Err: err}
	}

	type sendResult struct {
		id  string
		err error
	}

	sendCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan sendResult, 1)
	go func() {
		id, err := d.sender.Send(sendCtx, msg)
		results <- sendResult{id: id, err: err}
	}()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case res := <-results:
		if res.err != nil {
			return nil, classify(res.err)
		}
		return &Delivery{Provider: d.sender.Name(), MessageID: res.id}, nil
	case <-timer.C:
		// Client-side give-up: cancel (via defer) and stop waiting.
		return nil, &DispatchError{
			Kind:   KindTimeout,
			Detail: fmt.Sprintf("provider %q did not respond within %s", d.sender.Name(), d.timeout),
		}
	case <-ctx.Done():
		return nil, classify(ctx.Err())
	}
}

const contactBodyTemplate = `You received a new message from your portfolio contact form.

Name: {{.Name}}
Email: {{.Email}}
Sent: {{.ReceivedAt.Format "Mon, 02 Jan 2006 15:04:05 MST"}}

Message:
{{.Message}}
`

var contactBody = template.Must(template.New("contact").Parse(contactBodyTemplate))

func (d *Dispatcher) buildMessage(sub Submission) (*Message, error) {
	var body bytes.Buffer
	if err := contactBody.Execute(&body, sub); err != nil {
		return nil, fmt.Errorf("failed to render contact email body: %w", err)
	}

	return &Message{
		From:    d.from,
		To:      d.to,
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("New portfolio message from %s", sub.Name),
		Text:    body.String(),
	}, nil
}
