// Package response writes JSON bodies and maps service errors to HTTP
// statuses.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
)

type errorBody struct {
	Detail string `json:"detail"`
}

type messageBody struct {
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg} with status 200.
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, messageBody{Message: msg})
}

// Error writes err as {"detail": ...}. Errors without an API code are
// logged and hidden behind a generic 500.
func Error(w http.ResponseWriter, log *logger.Logger, err error) {
	code := apierrors.CodeOf(err)
	if code == apierrors.CodeInternal {
		log.Error("HTTP: internal error", "error", err.Error())
		JSON(w, http.StatusInternalServerError, errorBody{Detail: "internal server error"})
		return
	}

	if code == apierrors.CodeUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	JSON(w, code.HTTPStatus(), errorBody{Detail: err.Error()})
}
