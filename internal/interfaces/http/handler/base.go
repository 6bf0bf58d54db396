// Package handler implements the HTTP handlers of the storefront API.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/logger"
	"github.com/tinymillion/backend/internal/interfaces/http/dto"
	"github.com/tinymillion/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// internalErrorMessage is shown for every error that is not a DomainError
const internalErrorMessage = "Internal server error"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 envelope. The mirrored data keys are repeated at the
// top level for clients written against the older response shape.
func (h *BaseHandler) Success(c *gin.Context, message string, data gin.H, mirror ...string) {
	h.respond(c, http.StatusOK, message, data, mirror)
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, message string, data gin.H, mirror ...string) {
	h.respond(c, http.StatusCreated, message, data, mirror)
}

func (h *BaseHandler) respond(c *gin.Context, status int, message string, data gin.H, mirror []string) {
	var payload any
	if data != nil {
		payload = data
	}
	c.JSON(status, dto.NewSuccessResponse(message, payload).Flatten(data, mirror...))
}

// Error sends an error envelope with an explicit status
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, shared.CodeInvalidInput, message)
}

// Unauthorized sends a 401 envelope
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, shared.CodeUnauthorized, message)
}

// HandleError converts an error into a response. Domain errors keep their
// message and map to a status by code; anything else is logged and hidden
// behind a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if de, ok := shared.AsDomainError(err); ok {
		h.Error(c, dto.GetHTTPStatus(de.Code), de.Code, de.Message)
		return
	}

	logger.GetGinLogger(c).Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, internalErrorMessage)
}

// bindJSON decodes an optional JSON body. An empty body leaves dst untouched.
func bindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// invalidBody answers a body that could not be decoded or failed its
// binding rules
func (h *BaseHandler) invalidBody(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		middleware.HandleValidationError(c, err)
		return
	}
	logger.GetGinLogger(c).Debug("Malformed request body", zap.Error(err))
	h.BadRequest(c, "Invalid request body")
}

// currentUserID returns the authenticated user id set by AuthUser
func (h *BaseHandler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok || id == uuid.Nil {
		h.Unauthorized(c, "User not authorized")
		return uuid.Nil, false
	}
	return id, true
}

// currentStoreID returns the store of the sub-admin resolved by SubAdminOnly
func (h *BaseHandler) currentStoreID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetMiniStoreID(c)
	if !ok || id == uuid.Nil {
		h.BadRequest(c, "Mini store ID not found")
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a uuid path parameter; a malformed id is reported as notFound
func (h *BaseHandler) pathUUID(c *gin.Context, param, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.Error(c, http.StatusNotFound, shared.CodeNotFound, notFound)
		return uuid.Nil, false
	}
	return id, true
}
