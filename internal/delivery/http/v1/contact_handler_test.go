package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/mail"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init()
	m.Run()
}

type stubSender struct{ id string }

func (s *stubSender) Name() string { return "stub" }
func (s *stubSender) Send(ctx context.Context, msg *mail.Message) (string, error) {
	return s.id, nil
}

type noopContactRepo struct{}

func (noopContactRepo) Insert(ctx context.Context, msg *domain.ContactMessage) error { return nil }

func newContactRouter(t *testing.T, dispatcher *mail.Dispatcher) *gin.Engine {
	t.Helper()

	validate := validator.New()
	validation.RegisterValidators(validate)
	uc := usecase.NewContactUsecase(dispatcher, noopContactRepo{}, validate)

	r := gin.New()
	v1.NewContactHandler(r.Group("/api/contact"), uc)
	return r
}

func postContact(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/contact/send", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendMessage(t *testing.T) {
	t.Run("valid submission returns success with message id", func(t *testing.T) {
		dispatcher := mail.NewDispatcherWithSender(&stubSender{id: "abc123"}, "from@site.dev", "to@site.dev", time.Second)
		r := newContactRouter(t, dispatcher)

		w := postContact(t, r, gin.H{
			"name":    "Jo",
			"email":   "jo@x.com",
			"message": "Hello there, testing the contact form.",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success   bool   `json:"success"`
			Message   string `json:"message"`
			MessageID string `json:"messageId"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "Message sent successfully", body.Message)
		assert.Equal(t, "abc123", body.MessageID)
	})

	t.Run("invalid submission reports every failing field", func(t *testing.T) {
		dispatcher := mail.NewDispatcherWithSender(&stubSender{id: "x"}, "from@site.dev", "to@site.dev", time.Second)
		r := newContactRouter(t, dispatcher)

		w := postContact(t, r, gin.H{
			"name":    "A",
			"email":   "bad",
			"message": "short",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Error)
		assert.Len(t, body.Fields, 3)
		assert.Equal(t, "Please enter a valid email address", body.Fields["email"])
		assert.Contains(t, body.Fields["name"], "at least 2")
		assert.Contains(t, body.Fields["message"], "at least 10")
	})

	t.Run("unconfigured provider returns the stable error", func(t *testing.T) {
		r := newContactRouter(t, mail.NewDispatcher(mail.Config{}))

		w := postContact(t, r, gin.H{
			"name":    "Jo",
			"email":   "jo@x.com",
			"message": "Hello there, testing the contact form.",
		})

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var body struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Email service is not configured", body.Error)
	})

	t.Run("malformed json is a 400", func(t *testing.T) {
		dispatcher := mail.NewDispatcherWithSender(&stubSender{id: "x"}, "from@site.dev", "to@site.dev", time.Second)
		r := newContactRouter(t, dispatcher)

		req := httptest.NewRequest(http.MethodPost, "/api/contact/send", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
