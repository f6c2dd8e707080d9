package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Paginated writes a pagination.Page as the body, which already is the list envelope.
func Paginated(w http.ResponseWriter, page interface{}) {
	writeJSON(w, http.StatusOK, page)
}

// Error responses
func errorResponse(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	writeJSON(w, statusCode, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]interface{}) {
	errorResponse(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	converted := make(map[string]interface{}, len(details))
	for k, v := range details {
		converted[k] = v
	}
	errorResponse(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", converted)
}

func Unauthorized(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusNotFound, "ENTRY_NOT_FOUND", message, nil)
}

func Conflict(w http.ResponseWriter, code, message string, details map[string]interface{}) {
	errorResponse(w, http.StatusConflict, code, message, details)
}

func TooManyRequests(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}
