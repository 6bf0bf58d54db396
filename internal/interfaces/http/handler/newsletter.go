package handler

import (
	"github.com/gin-gonic/gin"
	marketingapp "github.com/tinymillion/backend/internal/application/marketing"
)

// NewsletterHandler handles newsletter sign-ups
type NewsletterHandler struct {
	BaseHandler
	newsletter *marketingapp.NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletter *marketingapp.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// SubscribeRequest is the newsletter sign-up body
// @Description Newsletter sign-up
type SubscribeRequest struct {
	Email string `json:"email" example:"asha@example.com"`
}

// Subscribe godoc
// @ID           subscribeNewsletter
// @Summary      Subscribe an email address
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request body SubscribeRequest true "Email"
// @Success      201 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	if err := h.newsletter.Subscribe(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Subscription successful", nil)
}
