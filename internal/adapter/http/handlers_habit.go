package adapthttp

import (
	"errors"
	"net/http"

	"habitkit/internal/app"
	"habitkit/internal/domain"
)

func (s *Server) handleHabits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listHabits(w, r)
	case http.MethodPost:
		s.createHabit(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.habits.ListStatuses(r.Context(), currentUser(r).ID)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": statuses})
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Frequency   string   `json:"frequency"`
		Goal        string   `json:"goal"`
		Icon        string   `json:"icon"`
		Options     []string `json:"options"`
		CategoryID  string   `json:"categoryId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h := domain.Habit{
		Name:        body.Name,
		Description: body.Description,
		Type:        domain.HabitType(body.Type),
		Frequency:   domain.Frequency(body.Frequency),
		Goal:        body.Goal,
		Icon:        body.Icon,
		Options:     body.Options,
		CategoryID:  body.CategoryID,
	}
	created, err := s.habits.CreateHabit(r.Context(), currentUser(r).ID, h)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleHabitUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		ID          string    `json:"id"`
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Type        *string   `json:"type"`
		Frequency   *string   `json:"frequency"`
		Goal        *string   `json:"goal"`
		Icon        *string   `json:"icon"`
		Options     *[]string `json:"options"`
		CategoryID  *string   `json:"categoryId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	patch := domain.HabitPatch{
		Name:        body.Name,
		Description: body.Description,
		Goal:        body.Goal,
		Icon:        body.Icon,
		Options:     body.Options,
		CategoryID:  body.CategoryID,
	}
	if body.Type != nil {
		t := domain.HabitType(*body.Type)
		patch.Type = &t
	}
	if body.Frequency != nil {
		f := domain.Frequency(*body.Frequency)
		patch.Frequency = &f
	}

	err := s.habits.UpdateHabit(r.Context(), currentUser(r).ID, body.ID, patch)
	if errors.Is(err, app.ErrHabitNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleHabitDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.habits.DeleteHabit(r.Context(), currentUser(r).ID, body.ID); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleHabitReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		HabitID string `json:"habitId"`
		Value   string `json:"value"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	userID := currentUser(r).ID
	report, err := s.habits.RecordReport(r.Context(), userID, body.HabitID, body.Value)
	if errors.Is(err, app.ErrHabitNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	status, err := s.habits.GetStatus(r.Context(), userID, body.HabitID)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report, "habit": status})
}

func (s *Server) handleHabitReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		HabitID string `json:"habitId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	err := s.habits.ResetPeriod(r.Context(), currentUser(r).ID, body.HabitID)
	if errors.Is(err, app.ErrHabitNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
