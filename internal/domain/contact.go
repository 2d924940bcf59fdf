package domain

import (
	"context"
	"time"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,contact_email"`
	Message string `json:"message" validate:"required,min=10"`
}

// ContactMessage is the durable record of a delivered submission. It is
// best-effort telemetry written after the email went out, never part of the
// send itself.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactResult is the success outcome returned to the caller
type ContactResult struct {
	Provider  string
	MessageID string
}

// ContactRepository defines persistence for contact messages
type ContactRepository interface {
	Insert(ctx context.Context, msg *ContactMessage) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates, dispatches and (on success) records a
	// contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) (*ContactResult, error)
}
