// Package http exposes the ledger to the presentation layer: JSON
// endpoints for mutations, state and reports, plus an SSE stream carrying
// the ledger's change signal so clients can re-render without polling.
package http

import (
	"net/http"

	"tally/internal/middleware/trace"
	"tally/internal/services"
)

type Server struct {
	*http.Server
	svc *services.LedgerService
}

func NewServer(addr string, svc *services.LedgerService) *Server {
	s := &Server{svc: svc}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleHealth)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/income", s.handleRecordIncome)
	mux.HandleFunc("/api/expense", s.handleRecordExpense)
	mux.HandleFunc("/api/reset", s.handleReset)
	mux.HandleFunc("/api/reports/week", s.handleWeeklyReport)
	mux.HandleFunc("/api/reports/month", s.handleMonthlyReport)
	mux.HandleFunc("/api/reports/all", s.handleAllTimeReport)
	mux.HandleFunc("/api/events", s.handleEvents)

	tr := trace.NewMiddleware()
	s.Server = &http.Server{
		Addr:    addr,
		Handler: tr.Middleware(mux),
	}
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
