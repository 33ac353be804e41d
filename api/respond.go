package api

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response shape for every API endpoint
type envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		Success:    status < 400,
		StatusCode: status,
		Data:       data,
		Message:    message,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, nil, message)
}
