package v1

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/mail"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(group *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	group.POST("/send", handler.SendMessage)
}

// SendMessage godoc
// @Summary      Send Contact Message
// @Description  Deliver a visitor message to the site owner's inbox. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.SentBody
// @Failure      400      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /contact/send [post]
func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.contactUC.SendContactMessage(c.Request.Context(), &req)
	if err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			response.ValidationError(c, verrs.Error(), verrs.Fields)
			return
		}

		var dispatchErr *mail.DispatchError
		if errors.As(err, &dispatchErr) {
			response.Error(c, http.StatusInternalServerError, dispatchErr.UserMessage())
			return
		}

		response.Error(c, http.StatusInternalServerError, "Failed to send message. Please try again later.")
		return
	}

	response.Sent(c, result.MessageID)
}
