package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/tinymillion/backend/internal/application/identity"
	"github.com/tinymillion/backend/internal/interfaces/http/middleware"
)

// UserHandler handles customer and admin authentication
type UserHandler struct {
	BaseHandler
	auth *identityapp.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(auth *identityapp.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// CredentialsRequest is the login body
// @Description Login credentials
type CredentialsRequest struct {
	Email    string `json:"email" example:"asha@example.com"`
	Password string `json:"password" example:"s3cretpass"`
}

// RegisterRequest is the sign-up body
// @Description Customer registration
type RegisterRequest struct {
	Name     string `json:"name" example:"Asha"`
	Email    string `json:"email" example:"asha@example.com"`
	Password string `json:"password" example:"s3cretpass"`
}

// Register godoc
// @ID           registerUser
// @Summary      Register a customer
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), identityapp.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "", gin.H{"token": result.Token}, "token")
}

// Login godoc
// @ID           loginUser
// @Summary      Customer login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Credentials"
// @Success      200 {object} TokenResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "", gin.H{"token": result.Token}, "token")
}

// AdminLogin godoc
// @ID           loginAdmin
// @Summary      Admin login against the configured credentials
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Credentials"
// @Success      200 {object} TokenResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/user/admin [post]
func (h *UserHandler) AdminLogin(c *gin.Context) {
	var req CredentialsRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	result, err := h.auth.AdminLogin(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "", gin.H{"token": result.Token, "role": result.Role}, "token", "role")
}

// Logout godoc
// @ID           logoutUser
// @Summary      Revoke the current token
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/user/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.Unauthorized(c, "Not Authorized (token missing)")
		return
	}

	input := identityapp.LogoutInput{TokenJTI: claims.ID, ExpiresAt: claims.ExpiresAtTime()}
	if err := h.auth.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Logged out", nil)
}
