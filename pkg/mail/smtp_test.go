package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRawMessage(t *testing.T) {
	msg := &Message{
		From:    "Portfolio <me@site.dev>",
		To:      "inbox@site.dev",
		ReplyTo: "jo@x.com",
		Subject: "New portfolio message from Jo",
		Text:    "Hello there.",
	}

	raw := string(buildRawMessage(msg, "<id-1@site.dev>"))

	assert.Contains(t, raw, "From: Portfolio <me@site.dev>\r\n")
	assert.Contains(t, raw, "To: inbox@site.dev\r\n")
	assert.Contains(t, raw, "Reply-To: jo@x.com\r\n")
	assert.Contains(t, raw, "Message-ID: <id-1@site.dev>\r\n")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8\r\n")

	// Headers and body separated by exactly one empty line.
	headerEnd := strings.Index(raw, "\r\n\r\n")
	require.Greater(t, headerEnd, 0)
	assert.Equal(t, "Hello there.", raw[headerEnd+4:])
}

func TestBareAddress(t *testing.T) {
	assert.Equal(t, "me@site.dev", bareAddress("Portfolio <me@site.dev>"))
	assert.Equal(t, "me@site.dev", bareAddress("me@site.dev"))
	assert.Equal(t, "not-an-address", bareAddress("not-an-address"))
}

func TestAddressDomain(t *testing.T) {
	assert.Equal(t, "site.dev", addressDomain("me@site.dev"))
	assert.Equal(t, "localhost", addressDomain("no-domain"))
}

func TestSMTPSenderDefaults(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Username: "u", Password: "p"})
	assert.Equal(t, "smtp.gmail.com", s.cfg.Host)
	assert.Equal(t, "587", s.cfg.Port)
	assert.Positive(t, s.cfg.ConnectTimeout)
	assert.Positive(t, s.cfg.CommandTimeout)
}

func TestSMTPSenderConnectionRefused(t *testing.T) {
	// Nothing listens on this port; the dial must fail fast and classify as
	// a connection failure.
	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: "1", Username: "u", Password: "p"})

	_, err := s.Send(context.Background(), &Message{
		From: "me@site.dev", To: "inbox@site.dev", Subject: "s", Text: "t",
	})
	require.Error(t, err)
	assert.Equal(t, KindConnectionFailure, classify(err).Kind)
}

func TestClassify(t *testing.T) {
	t.Run("deadline wins over wrapping", func(t *testing.T) {
		err := fmt.Errorf("%w: %v", ErrConnection, context.DeadlineExceeded)
		// Sentinel wrapping keeps only the connection cause here; a real
		// deadline error flows through ctx.Err() untouched.
		assert.Equal(t, KindConnectionFailure, classify(err).Kind)
		assert.Equal(t, KindTimeout, classify(context.DeadlineExceeded).Kind)
	})

	t.Run("provider detail drops sentinel prefix", func(t *testing.T) {
		err := fmt.Errorf("%w: %v", ErrProvider, errors.New("daily quota exceeded"))
		classified := classify(err)
		assert.Equal(t, KindProviderError, classified.Kind)
		assert.Equal(t, "daily quota exceeded", classified.Detail)
		assert.Equal(t, "Email service error: daily quota exceeded", classified.UserMessage())
	})
}
