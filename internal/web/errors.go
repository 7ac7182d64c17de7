package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged server-side with its technical detail and request
// ID, and returned to the client as JSON carrying a user-friendly message,
// a suggested action and a stable code (see core.MapError).

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/JonMunkholm/packlist/internal/core"
	"github.com/go-chi/chi/v5/middleware"
)

var (
	errRateLimited     = errors.New("rate limit exceeded")
	errNoFile          = errors.New("no file provided")
	errMissingCountry  = errors.New("missing country name: pass ?name=")
	errRequestTooLarge = errors.New("file too large: request body exceeds the upload limit")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// ValidationResponse is returned when rows do not match the row schema.
type ValidationResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Action string       `json:"action,omitempty"`
	Issues []core.Issue `json:"issues"`
}

// respondError logs err with request context and writes its user-facing
// JSON form. The error field carries the technical message, which for
// pipeline failures cites the offending row.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	message := userMsg.Message
	if isPipelineError(err) {
		message = err.Error()
	}

	writeJSON(w, statusCode, ErrorResponse{
		Error:   message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// respondIssues writes a schema validation failure.
func respondIssues(w http.ResponseWriter, r *http.Request, issues []core.Issue) {
	msg := core.Describe(core.CodeValidationFailed)

	slog.Warn("rows failed validation",
		"path", r.URL.Path,
		"issues", len(issues),
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeJSON(w, http.StatusBadRequest, ValidationResponse{
		Error:  msg.Message,
		Code:   msg.Code,
		Action: msg.Action,
		Issues: issues,
	})
}

// statusFor picks the HTTP status for an error from the processing path.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrTooManyRuns):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case isPipelineError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isPipelineError(err error) bool {
	var e *core.Error
	return errors.As(err, &e)
}

// clientIP returns the host part of RemoteAddr, which TrustedRealIP has
// already replaced with the forwarded client address when appropriate.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
