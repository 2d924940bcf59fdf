package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind is the stable classification of a failed dispatch. Handlers map it to
// a user-safe message; the raw provider error never leaves the process.
type Kind string

const (
	KindNotConfigured     Kind = "not_configured"
	KindTimeout           Kind = "timeout"
	KindAuthFailure       Kind = "auth_failure"
	KindConnectionFailure Kind = "connection_failure"
	KindProviderError     Kind = "provider_error"
	KindUnknown           Kind = "unknown"
)

// Sentinel errors senders use to tag failures before classification.
var (
	ErrAuth       = errors.New("email provider rejected credentials")
	ErrConnection = errors.New("cannot connect to email provider")
	ErrProvider   = errors.New("email provider returned an error")
)

// DispatchError is the single failure outcome of a dispatch attempt.
type DispatchError struct {
	Kind   Kind
	Detail string // human-readable, for server-side logs only
	Err    error
}

func (e *DispatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("email dispatch failed (%s): %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("email dispatch failed (%s)", e.Kind)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// UserMessage reduces the failure to a stable, user-safe string. No
// credentials, hostnames or stack traces.
func (e *DispatchError) UserMessage() string {
	switch e.Kind {
	case KindNotConfigured:
		return "Email service is not configured"
	case KindTimeout:
		return "Email service is taking too long. Please try again later."
	case KindAuthFailure:
		return "Email authentication failed. Please check SMTP credentials."
	case KindConnectionFailure:
		return "Cannot connect to email server. This may be due to network restrictions."
	case KindProviderError:
		return "Email service error: " + e.Detail
	default:
		return "Failed to send message. Please try again later."
	}
}

// classify reduces a sender error to a DispatchError. Order matters: a
// deadline hit inside the provider call is still a timeout even when it
// surfaces wrapped in a connection error.
func classify(err error) *DispatchError {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &DispatchError{Kind: KindTimeout, Detail: err.Error(), Err: err}
	case errors.Is(err, ErrAuth):
		return &DispatchError{Kind: KindAuthFailure, Detail: err.Error(), Err: err}
	case errors.Is(err, ErrConnection), isNetworkError(err):
		return &DispatchError{Kind: KindConnectionFailure, Detail: err.Error(), Err: err}
	case errors.Is(err, ErrProvider):
		return &DispatchError{Kind: KindProviderError, Detail: providerDetail(err), Err: err}
	default:
		return &DispatchError{Kind: KindUnknown, Detail: err.Error(), Err: err}
	}
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// providerDetail strips the sentinel prefix so the user-visible provider
// message carries only the provider's own words.
func providerDetail(err error) string {
	detail := err.Error()
	prefix := ErrProvider.Error() + ": "
	if len(detail) > len(prefix) && detail[:len(prefix)] == prefix {
		return detail[len(prefix):]
	}
	return detail
}
