package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse is the body of every non-2xx API answer.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a wrapped domain.ErrValidation.
func validationBody(err error) ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err))
}

// requestBody returns an ErrorResponse for input rejected before reaching
// the service layer (malformed JSON, unparsable parameters).
func requestBody(message string) ErrorResponse {
	return errorBody("validation_error", message)
}

// upstreamBody returns an ErrorResponse for a rebate provider failure.
func upstreamBody() ErrorResponse {
	return errorBody("upstream_error", "rebate provider unavailable")
}

// unwrapMessage keeps what follows the sentinel in a wrapped error.
// e.g. "service.ScreenService.Create: validation error: unknown white label" → "unknown white label"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
