package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
)

const (
	msgInternalError      = "internal server error"
	msgUpstreamError      = "the booking service is temporarily unavailable, please try again"
	msgSessionUnavailable = "session is not available"
)

// maxBodyBytes caps request bodies read by DecodeJSON
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RedirectResponse is the body of a guard redirect
type RedirectResponse struct {
	RedirectTo string `json:"redirectTo"`
	Requested  string `json:"requested"`
}

// RespondJSON writes data as JSON with the given status
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError writes an ErrorResponse
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondSessionUnavailable is used when the session middleware did not run
func RespondSessionUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgSessionUnavailable)
}

// RespondRedirect sends the visitor to the earliest step whose prerequisites are missing
func RespondRedirect(w http.ResponseWriter, redirect *flow.RedirectError) {
	location := redirect.To.Path()
	w.Header().Set("Location", location)
	RespondJSON(w, http.StatusSeeOther, RedirectResponse{
		RedirectTo: location,
		Requested:  redirect.Requested.Path(),
	})
}

// RespondUpstream reports a remote API failure. A message from the backend is shown
// verbatim with 422; transport failures get a generic 502.
func RespondUpstream(w http.ResponseWriter, err error) {
	if msg, ok := opsapi.Message(err); ok {
		RespondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	RespondError(w, http.StatusBadGateway, msgUpstreamError)
}

// AsRedirect unwraps a guard redirect from err
func AsRedirect(err error) (*flow.RedirectError, bool) {
	var redirect *flow.RedirectError
	if errors.As(err, &redirect) {
		return redirect, true
	}
	return nil, false
}

// DecodeJSON reads a JSON body into v, rejecting unknown fields and trailing data
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
