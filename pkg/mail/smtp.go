package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SMTPConfig holds fallback transport configuration. ConnectTimeout bounds
// the TCP dial; CommandTimeout is a socket deadline covering the greeting and
// every subsequent command. Both are per-stage knobs, distinct from the
// dispatcher's overall deadline.
type SMTPConfig struct {
	Host           string
	Port           string
	Username       string
	Password       string
	ConnectTimeout time.Duration
	CommandTimeout time.Duration
}

// SMTPSender implements Sender over a credential-authenticated SMTP session
// with STARTTLS.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = 30 * time.Second
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Name() string {
	return "smtp"
}

// Send performs connect, greeting, STARTTLS, auth and one DATA transaction.
// SMTP assigns no client-visible id, so the sender generates the Message-ID
// it writes into the headers and returns that.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	dialer := net.Dialer{Timeout: s.cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer conn.Close()

	// One deadline for the greeting and all following commands.
	_ = conn.SetDeadline(time.Now().Add(s.cfg.CommandTimeout))

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err := client.StartTLS(tlsCfg); err != nil {
			return "", fmt.Errorf("%w: %v", ErrConnection, err)
		}
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}

	from := bareAddress(msg.From)
	to := bareAddress(msg.To)

	if err := client.Mail(from); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if err := client.Rcpt(to); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), addressDomain(from))

	w, err := client.Data()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if _, err := w.Write(buildRawMessage(msg, messageID)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	_ = client.Quit()

	return messageID, nil
}

// buildRawMessage constructs the RFC 5322 message with CRLF line endings.
func buildRawMessage(msg *Message, messageID string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Text)
	return []byte(b.String())
}

// bareAddress extracts addr from "Name <addr>" forms for the envelope.
func bareAddress(s string) string {
	if parsed, err := netmail.ParseAddress(s); err == nil {
		return parsed.Address
	}
	return s
}

func addressDomain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}
