package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"tally/internal/report"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// seriesPayload renders a bucket series as a JSON object keyed by bucket
// index, values in cents. JSON object keys are strings, so indices are
// stringified.
func seriesPayload(s report.Series) map[string]int64 {
	out := make(map[string]int64, len(s))
	for i, v := range s {
		out[strconv.Itoa(i)] = v.Cents
	}
	return out
}
