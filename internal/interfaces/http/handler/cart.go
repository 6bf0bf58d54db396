package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	cartapp "github.com/tinymillion/backend/internal/application/cart"
	"github.com/tinymillion/backend/internal/domain/cart"
)

// CartHandler serves the cart of the authenticated user
type CartHandler struct {
	BaseHandler
	carts *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// CartItemRequest identifies a cart line. Quantity is accepted as a number
// or a numeric string.
// @Description Cart line mutation
type CartItemRequest struct {
	ItemID   string `json:"itemId" example:"3f2b1c9e-6c1f-4b7e-9a55-1f1d3c2e4b5a"`
	Size     string `json:"size" example:"M"`
	Quantity any    `json:"quantity,omitempty" swaggertype:"integer" example:"2"`
}

// MergeCartRequest carries a guest cart to fold into the stored one
// @Description Guest cart
type MergeCartRequest struct {
	CartData cart.Cart `json:"cartData" binding:"required"`
}

// Add godoc
// @ID           addToCart
// @Summary      Add one unit of an item
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CartItemRequest true "Item"
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/cart/add [post]
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	if err := h.carts.Add(c.Request.Context(), userID, req.ItemID, req.Size); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Added To Cart", nil)
}

// Update godoc
// @ID           updateCart
// @Summary      Set the quantity of a cart line
// @Description  A quantity of zero or less removes the line.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CartItemRequest true "Item and quantity"
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/cart/update [post]
func (h *CartHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	err := h.carts.Update(c.Request.Context(), userID, cartapp.UpdateRequest{
		ItemID:   req.ItemID,
		Size:     req.Size,
		Quantity: quantityOf(req.Quantity),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart Updated", nil)
}

// Get godoc
// @ID           getCart
// @Summary      Read the stored cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DataResponse[MergeCartRequest]
// @Failure      401 {object} ErrorResponse
// @Router       /api/cart/get [post]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	data, err := h.carts.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "", gin.H{"cartData": nonNilCart(data)}, "cartData")
}

// Merge godoc
// @ID           mergeCart
// @Summary      Merge a guest cart into the stored cart
// @Description  Lines already in the stored cart keep their quantity.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body MergeCartRequest true "Guest cart"
// @Success      200 {object} DataResponse[MergeCartRequest]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/cart/merge [post]
func (h *CartHandler) Merge(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req MergeCartRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	merged, err := h.carts.Merge(c.Request.Context(), userID, req.CartData)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart merged", gin.H{"cartData": nonNilCart(merged)}, "cartData")
}

func quantityOf(v any) int {
	raw := strings.TrimSpace(scalarText(v))
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

func nonNilCart(c cart.Cart) cart.Cart {
	if c == nil {
		return cart.New()
	}
	return c
}
