package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape every failed request returns. Fields is
// only present on validation failures, keyed by the wire field name.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// SentBody confirms an accepted contact submission.
type SentBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Error: message})
}

// ValidationError sends a 400 carrying the failure for every invalid field.
func ValidationError(c *gin.Context, message string, fields map[string]string) {
	c.JSON(400, ErrorBody{Error: message, Fields: fields})
}

// Sent confirms a delivered contact message with the provider's id.
func Sent(c *gin.Context, messageID string) {
	c.JSON(200, SentBody{
		Success:   true,
		Message:   "Message sent successfully",
		MessageID: messageID,
	})
}
