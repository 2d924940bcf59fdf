package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// ResendSender implements Sender using the Resend HTTP API.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
	}
}

func (s *ResendSender) Name() string {
	return "resend"
}

// Send makes a single API call. The returned id is Resend's message id.
func (s *ResendSender) Send(ctx context.Context, msg *Message) (string, error) {
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if isNetworkError(err) {
			return "", fmt.Errorf("%w: %v", ErrConnection, err)
		}
		// Structured API error (4xx/5xx response body).
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	return sent.Id, nil
}
