package utils

import (
	"encoding/json"
	"net/http"

	"sheikhdin-booking/pkg/apperror"
)

type errorBody struct {
	Error string `json:"error"`
}

// ResponseJSON writes any payload with the given status code.
func ResponseJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, payload any) {
	ResponseJSON(w, http.StatusOK, payload)
}

// ------------- Error responses -------------

// ResponseError writes {"error": message} with the given status code.
func ResponseError(w http.ResponseWriter, code int, message string) {
	ResponseJSON(w, code, errorBody{Error: message})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusBadRequest, message)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, message)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message)
}

// ResponseFromError maps a domain error to its HTTP form. Anything that is
// not an AppError is an infrastructure failure: generic 500, detail stays in
// the logs.
func ResponseFromError(w http.ResponseWriter, err error) {
	if appErr, ok := apperror.From(err); ok {
		ResponseError(w, appErr.Status, appErr.Message)
		return
	}
	ResponseInternalError(w, "Internal server error")
}
