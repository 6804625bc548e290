package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/observability"
)

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Input   string      `json:"input,omitempty"`
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidVocabulary:
		return http.StatusBadRequest
	case errors.ErrCodeIllegalToken, errors.ErrCodeIllegalSyllable:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func errNotFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}

func errMethod(method, path string) error {
	return errors.New(errors.ErrCodeInvalidInput, "method %s not allowed on %s", method, path)
}

// writeError reports err with the status derived from its code. Errors
// without a code are internal; their message is not exposed. A layout
// search cut short by the request timeout reports TIMEOUT.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.GetCode(err) == "" && stderrors.Is(err, context.DeadlineExceeded) {
		err = errors.Wrap(errors.ErrCodeTimeout, err, "request exceeded its time limit")
	}
	s.writeErrorStatus(w, r, StatusFor(errors.GetCode(err)), err)
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	ctx := r.Context()
	observability.HTTP().OnError(ctx, r.Method, r.URL.Path, err)

	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestID(ctx))
	}

	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: msg, Input: errors.GetInput(err)},
		RequestID: RequestID(ctx),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
