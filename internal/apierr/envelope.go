// internal/apierr/envelope.go
package apierr

import (
	"encoding/json"
	"net/http"
)

// Envelope is the error body shared by every endpoint of the storefront API.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes an Envelope with success=false.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}
