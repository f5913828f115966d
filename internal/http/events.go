package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// handleEvents streams ledger changes as server-sent events. One event per
// mutation; the payload mirrors ledger.Change so the client can update its
// view without another round trip.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	changes, cancel := s.svc.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, open := <-changes:
			if !open {
				return
			}
			payload, err := json.Marshal(map[string]any{
				"op":           string(change.Op),
				"amount_cents": change.AmountCents,
				"total_cents":  change.TotalCents,
				"today_cents":  change.TodayCents,
				"at":           change.At,
			})
			if err != nil {
				slog.ErrorContext(r.Context(), "Encode change event failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
