package handler

import "github.com/tinymillion/backend/internal/interfaces/http/dto"

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Message string         `json:"message" example:"Product not found"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse represents a simple success API response for OpenAPI documentation
// @Description Success response without data
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Cart Updated"`
}

// TokenResponse is returned by the customer login endpoints
// @Description Issued JWT
type TokenResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token"`
	Role    string `json:"role,omitempty" example:"admin"`
}

// DataResponse represents a success envelope with a typed data field
// @Description Standard success envelope
type DataResponse[T any] struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// HealthResponse is returned by the health probes
// @Description Liveness status
type HealthResponse struct {
	OK   bool   `json:"ok" example:"true"`
	Time string `json:"time,omitempty" example:"2026-01-23T12:00:00Z"`
}
