package handler

import (
	"errors"
	"net/http"

	"arbor/internal/domain"
	"arbor/internal/httputil"
)

// viewIDsRequest is the shared wire shape of batch operations on views
type viewIDsRequest struct {
	ViewIDs []string `json:"view_ids"`
}

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode() == http.StatusInternalServerError {
			httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidOperation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrGone):
		httputil.RespondError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		// Internal details stay out of responses
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
