package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is the JSON error envelope returned by the document server.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON serializes data as the response body with the given status.
// If marshaling fails it responds with 500 and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes msg wrapped in an ErrorBody.
func WriteError(w http.ResponseWriter, msg string, statusCode int) {
	_, _ = WriteJSON(w, ErrorBody{Error: msg}, statusCode)
}
