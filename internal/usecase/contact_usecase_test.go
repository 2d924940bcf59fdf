package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/mail"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

// Mock Repositories
type MockContactRepo struct {
	mock.Mock
	inserted chan *domain.ContactMessage
}

func newMockContactRepo() *MockContactRepo {
	return &MockContactRepo{inserted: make(chan *domain.ContactMessage, 1)}
}

func (m *MockContactRepo) Insert(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	select {
	case m.inserted <- msg:
	default:
	}
	return args.Error(0)
}

// okSender is a provider stub that always delivers.
type okSender struct{ id string }

func (s *okSender) Name() string { return "stub" }
func (s *okSender) Send(ctx context.Context, msg *mail.Message) (string, error) {
	return s.id, nil
}

// slowSender never responds within the test deadline.
type slowSender struct{}

func (s *slowSender) Name() string { return "slow" }
func (s *slowSender) Send(ctx context.Context, msg *mail.Message) (string, error) {
	select {
	case <-time.After(time.Second):
		return "too-late", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func validRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    "Jo",
		Email:   "jo@x.com",
		Message: "Hello there, this is long enough.",
	}
}

func TestContactValidation(t *testing.T) {
	dispatcher := mail.NewDispatcherWithSender(&okSender{id: "x"}, "from@site.dev", "to@site.dev", time.Second)
	repo := newMockContactRepo()
	uc := usecase.NewContactUsecase(dispatcher, repo, newValidator(t))

	t.Run("all failing fields are reported together", func(t *testing.T) {
		_, err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			Name:    "A",
			Email:   "bad",
			Message: "short",
		})
		require.Error(t, err)

		var verrs *validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "Name must be at least 2 characters", verrs.Fields["name"])
		assert.Equal(t, "Please enter a valid email address", verrs.Fields["email"])
		assert.Equal(t, "Message must be at least 10 characters", verrs.Fields["message"])

		// Nothing reaches the dispatcher or the recorder on rejection.
		repo.AssertNotCalled(t, "Insert")
	})

	t.Run("lengths are checked on trimmed values", func(t *testing.T) {
		_, err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			Name:    "  J  ",
			Email:   "jo@x.com",
			Message: "   1234567   ",
		})
		var verrs *validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.Fields, "name")
		assert.Contains(t, verrs.Fields, "message")
		assert.NotContains(t, verrs.Fields, "email")
	})

	t.Run("permissive email shape is accepted as-is", func(t *testing.T) {
		repo := newMockContactRepo()
		repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewContactUsecase(dispatcher, repo, newValidator(t))

		// Not a deliverable address, but it matches local@domain.tld.
		_, err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			Name:    "Jo",
			Email:   "anything@not-a-real-host.zz",
			Message: "Hello there, this is long enough.",
		})
		assert.NoError(t, err)
	})
}

func TestContactDispatch(t *testing.T) {
	t.Run("delivered submission returns the provider message id", func(t *testing.T) {
		dispatcher := mail.NewDispatcherWithSender(&okSender{id: "abc123"}, "from@site.dev", "to@site.dev", time.Second)
		repo := newMockContactRepo()
		repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewContactUsecase(dispatcher, repo, newValidator(t))

		result, err := uc.SendContactMessage(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "abc123", result.MessageID)

		// Exactly one recorder write is scheduled, carrying the submission.
		select {
		case msg := <-repo.inserted:
			assert.Equal(t, "Jo", msg.Name)
			assert.Equal(t, "jo@x.com", msg.Email)
		case <-time.After(2 * time.Second):
			t.Fatal("recorder write was never scheduled")
		}
	})

	t.Run("recorder failure does not change the delivered outcome", func(t *testing.T) {
		dispatcher := mail.NewDispatcherWithSender(&okSender{id: "abc123"}, "from@site.dev", "to@site.dev", time.Second)
		repo := newMockContactRepo()
		repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("db down"))
		uc := usecase.NewContactUsecase(dispatcher, repo, newValidator(t))

		result, err := uc.SendContactMessage(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "abc123", result.MessageID)

		select {
		case <-repo.inserted:
		case <-time.After(2 * time.Second):
			t.Fatal("recorder write was never attempted")
		}
	})

	t.Run("unconfigured provider fails with the stable message", func(t *testing.T) {
		dispatcher := mail.NewDispatcher(mail.Config{})
		repo := newMockContactRepo()
		uc := usecase.NewContactUsecase(dispatcher, repo, newValidator(t))

		_, err := uc.SendContactMessage(context.Background(), validRequest())
		var dispatchErr *mail.DispatchError
		require.ErrorAs(t, err, &dispatchErr)
		assert.Equal(t, mail.KindNotConfigured, dispatchErr.Kind)
		repo.AssertNotCalled(t, "Insert")
	})

	t.Run("deadline elapsing yields timeout and no record", func(t *testing.T) {
		dispatcher := mail.NewDispatcherWithSender(&slowSender{}, "from@site.dev", "to@site.dev", 30*time.Millisecond)
		repo := newMockContactRepo()
		uc := usecase.NewContactUsecase(dispatcher, repo, newValidator(t))

		_, err := uc.SendContactMessage(context.Background(), validRequest())
		var dispatchErr *mail.DispatchError
		require.ErrorAs(t, err, &dispatchErr)
		assert.Equal(t, mail.KindTimeout, dispatchErr.Kind)

		time.Sleep(100 * time.Millisecond)
		repo.AssertNotCalled(t, "Insert")
	})
}
