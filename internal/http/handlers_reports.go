package http

import (
	"net/http"
)

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, seriesPayload(s.svc.WeeklyReport()))
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, seriesPayload(s.svc.MonthlyReport()))
}

func (s *Server) handleAllTimeReport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, seriesPayload(s.svc.AllTimeReport()))
}
