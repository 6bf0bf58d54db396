// Package dto holds the JSON envelope every API response is wrapped in.
package dto

import "maps"

// Response is the standard API envelope. Top-level copies of selected data
// keys are added by Flatten so older clients keep working.
type Response struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination is the page block returned by list endpoints
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(message string, data any) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Message: message,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a 400 response listing rejected fields
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// Flatten renders the envelope as a map with the given data keys mirrored
// at the top level. Keys missing from data are skipped. Envelope fields
// always win over mirrored keys.
func (r Response) Flatten(data map[string]any, mirror ...string) map[string]any {
	out := make(map[string]any, len(mirror)+4)
	for _, key := range mirror {
		if v, ok := data[key]; ok {
			out[key] = v
		}
	}
	envelope := map[string]any{"success": r.Success}
	if r.Message != "" {
		envelope["message"] = r.Message
	}
	if r.Data != nil {
		envelope["data"] = r.Data
	}
	if r.Error != nil {
		envelope["error"] = r.Error
	}
	maps.Copy(out, envelope)
	return out
}
