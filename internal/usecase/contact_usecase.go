package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/mail"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	dispatcher    *mail.Dispatcher
	contactRepo   domain.ContactRepository
	validate      *validator.Validate
	recordTimeout time.Duration
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(dispatcher *mail.Dispatcher, contactRepo domain.ContactRepository, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		dispatcher:    dispatcher,
		contactRepo:   contactRepo,
		validate:      validate,
		recordTimeout: 10 * time.Second,
	}
}

// SendContactMessage validates the submission, dispatches the email and, on
// delivery, schedules a detached write of the durable record. The record
// write never influences the returned outcome.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) (*domain.ContactResult, error) {
	submission := domain.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}

	if verrs := validation.Check(uc.validate, submission); verrs != nil {
		return nil, verrs
	}

	delivery, err := uc.dispatcher.Send(ctx, mail.Submission{
		Name:       submission.Name,
		Email:      submission.Email,
		Message:    submission.Message,
		ReceivedAt: time.Now(),
	})
	if err != nil {
		// Full detail stays server-side; the handler reduces this to the
		// classified user message.
		var dispatchErr *mail.DispatchError
		if errors.As(err, &dispatchErr) {
			logger.Log.Error("contact dispatch failed",
				"kind", string(dispatchErr.Kind),
				"provider", uc.dispatcher.Provider(),
				"detail", dispatchErr.Detail,
			)
		} else {
			logger.Log.Error("contact dispatch failed", "error", err)
		}
		return nil, err
	}

	logger.Log.Info("contact message delivered",
		"provider", delivery.Provider,
		"message_id", delivery.MessageID,
	)

	uc.record(submission)

	return &domain.ContactResult{
		Provider:  delivery.Provider,
		MessageID: delivery.MessageID,
	}, nil
}

// record schedules the fire-and-forget database write. The response to the
// submitter is already decided; failures here are logged and swallowed.
func (uc *contactUsecase) record(submission domain.ContactRequest) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("contact recorder panicked", "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), uc.recordTimeout)
		defer cancel()

		msg := &domain.ContactMessage{
			Name:      submission.Name,
			Email:     submission.Email,
			Message:   submission.Message,
			CreatedAt: time.Now(),
		}
		if err := uc.contactRepo.Insert(ctx, msg); err != nil {
			logger.Log.Error("failed to record contact message", "error", err)
			return
		}
		logger.Log.Debug("contact message recorded", "id", msg.ID)
	}()
}
