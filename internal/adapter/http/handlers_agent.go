package adapthttp

import (
	"errors"
	"net/http"
	"strings"
)

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.dispatcher == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("agent disabled"))
		return
	}
	var body struct {
		Query string `json:"query"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(body.Query) == "" {
		writeError(w, http.StatusBadRequest, errors.New("query is required"))
		return
	}

	result, err := s.dispatcher.Dispatch(r.Context(), currentUser(r).ID, body.Query)
	if err != nil {
		writeError(w, http.StatusBadGateway, errors.New("assistant is unavailable, try again"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.coach == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("agent disabled"))
		return
	}

	statuses, err := s.habits.ListStatuses(r.Context(), currentUser(r).ID)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	feedback, err := s.coach.Feedback(r.Context(), statuses)
	if err != nil {
		writeError(w, http.StatusBadGateway, errors.New("assistant is unavailable, try again"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": feedback})
}
