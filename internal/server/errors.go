package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/launch-orchestrator/internal/db"
	"github.com/jonathan/launch-orchestrator/internal/keys"
	"github.com/jonathan/launch-orchestrator/internal/pipeline"
	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// KeysRetryAfter is advertised when every provider key is rate limited
const KeysRetryAfter = 60 * time.Second

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error      string   `json:"error"`
	Code       string   `json:"code"`
	Missing    []string `json:"missing,omitempty"`
	RetryAfter int      `json:"retry_after,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

func classify(err error) (int, string) {
	var (
		validation *ErrValidation
		notFound   *pipeline.RecordNotFoundError
		dbNotFound *db.NotFoundError
		unknown    *steps.UnknownTaskError
		prereq     *pipeline.PrerequisitesNotMetError
		forbidden  *pipeline.ForbiddenError
		exhausted  *keys.AllKeysExhaustedError
		noKeys     *keys.NoKeysConfiguredError
		generation *pipeline.GenerationFailedError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, "validation"
	case errors.As(err, &notFound), errors.As(err, &dbNotFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &unknown):
		return http.StatusNotFound, "unknown_task"
	case errors.As(err, &prereq):
		return http.StatusConflict, "prerequisites_not_met"
	case errors.As(err, &forbidden):
		return http.StatusForbidden, "forbidden"
	case errors.As(err, &exhausted):
		return http.StatusServiceUnavailable, "keys_exhausted"
	case errors.As(err, &noKeys):
		return http.StatusServiceUnavailable, "no_keys_configured"
	case errors.As(err, &generation):
		return http.StatusBadGateway, "generation_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// NewErrorResponse builds the reply body for err. Internal errors are not echoed.
func NewErrorResponse(err error) (int, ErrorResponse) {
	status, code := classify(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}

	var prereq *pipeline.PrerequisitesNotMetError
	if errors.As(err, &prereq) {
		resp.Missing = types.FieldNames(prereq.Missing)
	}
	switch status {
	case http.StatusServiceUnavailable:
		resp.RetryAfter = int(KeysRetryAfter.Seconds())
	case http.StatusInternalServerError:
		resp.Error = "internal server error"
	}
	return status, resp
}
