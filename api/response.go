package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/intake"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	UserExists *bool  `json:"userExists,omitempty"`
	Error      string `json:"error,omitempty"`
	Stack      string `json:"stack,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, response{Success: false, Message: msg})
}

// statusFor maps a workflow error kind to its HTTP status.
func statusFor(k intake.Kind) int {
	switch k {
	case intake.KindNotFound:
		return http.StatusNotFound
	case intake.KindForbidden:
		return http.StatusForbidden
	case intake.KindStorage:
		return http.StatusInternalServerError
	default:
		// credentials misconfiguration is reported as a bad request too
		return http.StatusBadRequest
	}
}

// writeError renders err. Unknown errors and storage failures become 500s;
// debug adds a stack trace under "stack".
func writeError(w http.ResponseWriter, r *http.Request, err error, debugMode bool) {
	var ierr *intake.Error
	if !errors.As(err, &ierr) {
		ierr = &intake.Error{Kind: intake.KindStorage, Message: err.Error(), Err: err}
	}

	status := statusFor(ierr.Kind)
	resp := response{Success: false, Message: ierr.Message, Error: ierr.Detail}
	if status == http.StatusInternalServerError {
		resp.Message = "Internal server error: " + ierr.Message
		logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("kind", ierr.Kind.String()),
			slog.Any("err", err),
		)
		if debugMode {
			resp.Stack = string(debug.Stack())
		}
	} else {
		logger.Info("request rejected",
			slog.String("path", r.URL.Path),
			slog.String("kind", ierr.Kind.String()),
			slog.String("message", ierr.Message),
		)
	}

	writeJSON(w, status, resp)
}
