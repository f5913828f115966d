package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/ledger"
)

type mutationRequest struct {
	Amount      string `json:"amount"` // decimal string, dot or comma
	Description string `json:"description"`
}

type stateResponse struct {
	TotalIncomeCents int64           `json:"total_income_cents"`
	TotalIncome      string          `json:"total_income"`
	TodayIncomeCents int64           `json:"today_income_cents"`
	TodayIncome      string          `json:"today_income"`
	LastMutationTime string          `json:"last_mutation_time,omitempty"`
	History          []entryResponse `json:"history"`
}

type entryResponse struct {
	AmountCents int64  `json:"amount_cents"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

func (s *Server) handleRecordIncome(w http.ResponseWriter, r *http.Request) {
	s.handleMutation(w, r, ledger.OpIncome)
}

func (s *Server) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	s.handleMutation(w, r, ledger.OpExpense)
}

func (s *Server) handleMutation(w http.ResponseWriter, r *http.Request, op ledger.Op) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	// Input validation lives here at the boundary; the ledger trusts its
	// callers to never pass a non-positive amount.
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "amount must be a positive decimal")
		return
	}
	description := strings.TrimSpace(req.Description)

	amount := core.Money{Cents: cents}
	if op == ledger.OpIncome {
		err = s.svc.RecordIncome(r.Context(), amount, description)
	} else {
		err = s.svc.RecordExpense(r.Context(), amount, description)
	}
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			writeError(w, http.StatusUnprocessableEntity, "amount must be a positive decimal")
			return
		}
		slog.ErrorContext(r.Context(), "Mutation failed", "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, stateToResponse(s.svc.State()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.svc.Reset(r.Context())
	writeJSON(w, http.StatusOK, stateToResponse(s.svc.State()))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, stateToResponse(s.svc.State()))
}

func stateToResponse(st ledger.State) stateResponse {
	history := make([]entryResponse, len(st.History))
	for i, e := range st.History {
		history[i] = entryResponse{
			AmountCents: e.Amount.Cents,
			Kind:        string(e.Kind),
			Description: e.Description,
			Timestamp:   e.Timestamp.Format(time.RFC3339),
		}
	}
	return stateResponse{
		TotalIncomeCents: st.TotalIncome.Cents,
		TotalIncome:      core.FormatCents(st.TotalIncome.Cents),
		TodayIncomeCents: st.TodayIncome.Cents,
		TodayIncome:      core.FormatCents(st.TodayIncome.Cents),
		LastMutationTime: st.LastMutationTime,
		History:          history,
	}
}
