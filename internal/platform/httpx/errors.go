package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

// MsgMalformedBody is reported when a request body is not valid JSON.
const MsgMalformedBody = "Request body must be valid JSON"

// ActionResult is the JSON envelope returned by every action endpoint.
type ActionResult struct {
	OK       bool   `json:"ok"`
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
	Details  any    `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// WriteAction renders the outcome of an action. A redirect escape becomes a
// redirect; every other error becomes {ok:false, error}.
func WriteAction(w http.ResponseWriter, r *http.Request, logger *slog.Logger, data any, err error) {
	if err == nil {
		JSON(w, http.StatusOK, ActionResult{OK: true, Data: data})
		return
	}
	RespondError(w, r, logger, err)
}

// Bind decodes the JSON request body into target. A malformed body is
// reported as a validation failure on the "body" field.
func Bind(w http.ResponseWriter, r *http.Request, target any) error {
	if err := DecodeJSON(w, r, target); err != nil {
		return shared.Invalid("body", MsgMalformedBody)
	}
	return nil
}

// RespondError maps action errors to HTTP responses.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if redirect, ok := apiclient.AsRedirect(err); ok {
		Redirect(w, r, redirect)
		return
	}

	var validation *shared.ValidationError
	if errors.As(err, &validation) {
		JSON(w, http.StatusBadRequest, ActionResult{Error: shared.MsgInvalidRequest, Details: validation.Fields})
		return
	}

	var failure *apiclient.Failure
	if errors.As(err, &failure) {
		result := ActionResult{Error: failure.Message}
		if len(failure.Details) > 0 {
			result.Details = failure.Details
		}
		JSON(w, failureStatus(failure.Status), result)
		return
	}

	if errors.Is(err, shared.ErrUnauthorized) {
		JSON(w, http.StatusUnauthorized, ActionResult{Error: shared.MsgUnauthorized})
		return
	}

	if logger != nil {
		logger.Error("action failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	JSON(w, http.StatusInternalServerError, ActionResult{Error: shared.MsgInternal})
}

// Redirect ends the request with a navigation to the redirect target.
// Fetch clients asking for JSON get 401 and the target in the body.
func Redirect(w http.ResponseWriter, r *http.Request, redirect *apiclient.RedirectError) {
	if WantsJSON(r) {
		JSON(w, http.StatusUnauthorized, ActionResult{Error: shared.MsgUnauthorized, Redirect: redirect.Location})
		return
	}
	http.Redirect(w, r, redirect.Location, http.StatusSeeOther)
}

// failureStatus picks the response status for a backend-reported failure.
func failureStatus(status int) int {
	switch {
	case status == 0:
		return http.StatusBadGateway
	case status >= 400 && status < 600:
		return status
	default:
		return http.StatusUnprocessableEntity
	}
}
