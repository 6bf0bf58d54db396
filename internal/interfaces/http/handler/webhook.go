package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	orderapp "github.com/tinymillion/backend/internal/application/order"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/logger"
	"github.com/tinymillion/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// WebhookHandler receives payment provider deliveries. Both routes need the
// untouched request body for signature checks.
type WebhookHandler struct {
	orders *orderapp.OrderService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(orders *orderapp.OrderService) *WebhookHandler {
	return &WebhookHandler{orders: orders}
}

// Stripe godoc
// @ID           stripeWebhook
// @Summary      Stripe webhook
// @Description  Marks the order of a completed checkout session paid. Errors are plain text.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe signature"
// @Success      200 {object} map[string]bool
// @Failure      400 {string} string "Webhook Error"
// @Failure      500 {string} string "Stripe webhook misconfigured"
// @Router       /webhook/stripe [post]
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: unreadable body")
		return
	}

	err = h.orders.HandleStripeWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		status, message := webhookFailure(c, err)
		c.String(status, message)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Razorpay godoc
// @ID           razorpayWebhook
// @Summary      Razorpay webhook
// @Description  Marks the order of a captured payment paid.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        X-Razorpay-Signature header string true "HMAC-SHA256 of the body"
// @Param        X-Razorpay-Event-Id header string false "Delivery id"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} SuccessResponse
// @Failure      500 {object} SuccessResponse
// @Router       /webhook/razorpay [post]
func (h *WebhookHandler) Razorpay(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	err = h.orders.HandleRazorpayWebhook(c.Request.Context(), orderapp.RazorpayWebhookRequest{
		Payload:   payload,
		Signature: c.GetHeader("X-Razorpay-Signature"),
		EventID:   c.GetHeader("X-Razorpay-Event-Id"),
	})
	if err != nil {
		status, message := webhookFailure(c, err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func webhookFailure(c *gin.Context, err error) (int, string) {
	if de, ok := shared.AsDomainError(err); ok {
		return dto.GetHTTPStatus(de.Code), de.Message
	}
	logger.GetGinLogger(c).Error("Webhook processing failed", zap.Error(err))
	return http.StatusInternalServerError, internalErrorMessage
}
