package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	orderapp "github.com/tinymillion/backend/internal/application/order"
)

// OrderHandler handles checkout, payment verification and order admin
type OrderHandler struct {
	BaseHandler
	orders *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// PlaceOrderRequest is the checkout body. cartItems is preferred over the
// legacy items list, totalAmount over amount.
// @Description Checkout submission
type PlaceOrderRequest struct {
	CartItems     []orderapp.RawItem `json:"cartItems"`
	Items         []orderapp.RawItem `json:"items"`
	TotalAmount   *decimal.Decimal   `json:"totalAmount" swaggertype:"number"`
	Amount        *decimal.Decimal   `json:"amount" swaggertype:"number"`
	Address       map[string]any     `json:"address"`
	PaymentMethod string             `json:"paymentMethod" example:"COD"`
}

// VerifyStripeRequest confirms a Stripe checkout
// @Description Stripe session confirmation
type VerifyStripeRequest struct {
	SessionID string `json:"sessionId"`
}

// VerifyRazorpayRequest carries the Razorpay checkout callback
// @Description Razorpay checkout callback
type VerifyRazorpayRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// UpdateStatusRequest is an admin status change
// @Description Order status change
type UpdateStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status" example:"Shipped"`
}

// placeRequest decodes the checkout body for the authenticated user
func (h *OrderHandler) placeRequest(c *gin.Context) (orderapp.PlaceOrderRequest, bool) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return orderapp.PlaceOrderRequest{}, false
	}
	var req PlaceOrderRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return orderapp.PlaceOrderRequest{}, false
	}
	return orderapp.PlaceOrderRequest{
		UserID:        userID,
		CartItems:     req.CartItems,
		Items:         req.Items,
		TotalAmount:   req.TotalAmount,
		Amount:        req.Amount,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	}, true
}

// Place godoc
// @ID           placeOrder
// @Summary      Place a cash-on-delivery order
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PlaceOrderRequest true "Checkout"
// @Success      200 {object} DataResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/order/place [post]
func (h *OrderHandler) Place(c *gin.Context) {
	req, ok := h.placeRequest(c)
	if !ok {
		return
	}

	placed, err := h.orders.PlaceCOD(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Order placed", gin.H{"order": placed}, "order")
}

// PlaceStripe godoc
// @ID           placeStripeOrder
// @Summary      Open a Stripe checkout session
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PlaceOrderRequest true "Checkout"
// @Success      200 {object} DataResponse[orderapp.StripeCheckoutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /api/order/stripe [post]
func (h *OrderHandler) PlaceStripe(c *gin.Context) {
	req, ok := h.placeRequest(c)
	if !ok {
		return
	}

	checkout, err := h.orders.PlaceStripe(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Stripe checkout created", gin.H{
		"session_url": checkout.SessionURL,
		"session_id":  checkout.SessionID,
		"order":       checkout.Order,
	}, "session_url", "session_id")
}

// PlaceRazorpay godoc
// @ID           placeRazorpayOrder
// @Summary      Create a Razorpay order
// @Description  Without Razorpay credentials a paid mock order is recorded.
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PlaceOrderRequest true "Checkout"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/order/razorpay [post]
func (h *OrderHandler) PlaceRazorpay(c *gin.Context) {
	req, ok := h.placeRequest(c)
	if !ok {
		return
	}

	result, err := h.orders.PlaceRazorpay(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Mock {
		h.Success(c, "Razorpay not configured. Mock order created.", gin.H{
			"mock":  true,
			"order": result.Record,
		})
		return
	}
	h.Success(c, "Razorpay order created", gin.H{
		"order":  result.Gateway,
		"key":    result.KeyID,
		"record": result.Record,
	}, "order", "key")
}

// VerifyStripe godoc
// @ID           verifyStripeOrder
// @Summary      Confirm a Stripe checkout session
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body VerifyStripeRequest true "Session"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/order/verifyStripe [post]
func (h *OrderHandler) VerifyStripe(c *gin.Context) {
	var req VerifyStripeRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	if err := h.orders.VerifyStripe(c.Request.Context(), req.SessionID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Payment verified", nil)
}

// VerifyRazorpay godoc
// @ID           verifyRazorpayOrder
// @Summary      Verify a Razorpay checkout signature
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body VerifyRazorpayRequest true "Callback"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/order/verifyRazorpay [post]
func (h *OrderHandler) VerifyRazorpay(c *gin.Context) {
	var req VerifyRazorpayRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	mock, err := h.orders.VerifyRazorpay(c.Request.Context(), orderapp.VerifyRazorpayRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if mock {
		h.Success(c, "Razorpay mock verification accepted", nil)
		return
	}
	h.Success(c, "Payment verified", nil)
}

// UserOrders godoc
// @ID           listUserOrders
// @Summary      Orders of the authenticated user
// @Tags         order
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DataResponse[[]orderapp.OrderResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /api/order/userorders [post]
func (h *OrderHandler) UserOrders(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orders.UserOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Orders fetched", gin.H{"orders": orders}, "orders")
}

// List godoc
// @ID           listAllOrders
// @Summary      Every order with its customer
// @Tags         order
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DataResponse[[]orderapp.OrderResponse]
// @Failure      403 {object} ErrorResponse
// @Router       /api/order/list [post]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.AllOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Orders fetched", gin.H{"orders": orders}, "orders")
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Change an order's status
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateStatusRequest true "Status change"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/order/status [post]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	err := h.orders.UpdateStatus(c.Request.Context(), orderapp.UpdateStatusRequest{
		OrderID: req.OrderID,
		Status:  req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Order status updated", nil)
}
