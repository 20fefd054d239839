package rest

import (
	"encoding/json"
	"net/http"

	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps an application error to a status code and writes a JSON
// error response
func writeError(w http.ResponseWriter, err error) {
	writeErrorResponse(w, statusFor(err), err.Error())
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"statusCode": statusCode,
		"error": map[string]any{
			"status": statusCode,
			"title":  http.StatusText(statusCode),
			"detail": message,
		},
	})
}

func statusFor(err error) int {
	switch dnderr.GetCode(err) {
	case dnderr.CodeInvalidArgument, dnderr.CodeValidation:
		return http.StatusBadRequest
	case dnderr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusMethodNotAllowed, r.Method+" is not supported")
}
