// Package response writes the JSON envelopes used by every endpoint:
//
//	{"success": true,  "message": "...", "data": ...}
//	{"success": true,  "message": "...", "meta": {...}, "data": ...}
//	{"success": false, "message": "..."}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/hearthworks/remodel/config"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/logger"
	"github.com/hearthworks/remodel/pkg/pagination"
)

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
	Data    interface{}      `json:"data,omitempty"`
	Errors  interface{}      `json:"errors,omitempty"`
	Error   string           `json:"error,omitempty"` // internal detail, non-production only
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 envelope with data.
func Success(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 envelope with data.
func Created(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// Paginated sends a 200 envelope with meta and data.
func Paginated(w http.ResponseWriter, message string, res pagination.Result) {
	meta := res.Meta
	write(w, http.StatusOK, envelope{Success: true, Message: message, Meta: &meta, Data: res.Data})
}

// Fail sends an error envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Success: false, Message: message})
}

// ValidationErrors sends a 400 with field-level error detail.
func ValidationErrors(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// FromError is the single place application errors become HTTP responses.
// Classified errors map per the taxonomy; anything else is a 500 whose detail
// is exposed only outside production.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindDomain:
		status = http.StatusBadRequest
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}

	body := envelope{Success: false, Message: apperr.Message(err)}

	if status == http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		if !config.Production() {
			body.Error = err.Error()
		}
	}

	write(w, status, body)
}
