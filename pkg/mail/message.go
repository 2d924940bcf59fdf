package mail

import "context"

// Message is a fully-prepared outbound email.
type Message struct {
	From    string // sender, may be "Name <addr>" form
	To      string // operator's configured recipient
	ReplyTo string // submitter's address
	Subject string
	Text    string // plain-text body
}

// Sender delivers a message through one concrete provider and returns the
// provider-assigned message identifier. Implementations make exactly one
// attempt; retry policy, deadlines and error classification live in the
// Dispatcher.
type Sender interface {
	Send(ctx context.Context, msg *Message) (messageID string, err error)
	Name() string
}
