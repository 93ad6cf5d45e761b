package api

import (
	"encoding/json"
	"net/http"

	"log/slog"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("err", err))
	}
}

// writeMessage emits the {"message": ...} error/confirmation shape every
// endpoint uses.
func writeMessage(w http.ResponseWriter, message string, status int) {
	writeJSON(w, map[string]string{"message": message}, status)
}
