package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrContentNotFound),
		errors.Is(err, service.ErrUnknownContentType):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrInvalidFieldValue),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUnknownTaxonomy),
		errors.Is(err, service.ErrUnsupportedImage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps a service error to its status. Internal errors are logged
// and hidden from the client.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.WithError(err).WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Error("request failed")
		WriteError(w, "internal server error", status)
		return
	}
	WriteError(w, err.Error(), status)
}
