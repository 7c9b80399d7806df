package adapthttp

import (
	"errors"
	"net/http"

	"habitkit/internal/app"
)

func (s *Server) handleDashboardDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	habitID := r.URL.Query().Get("habitId")
	if habitID == "" {
		writeError(w, http.StatusBadRequest, errors.New("habitId is required"))
		return
	}
	days := intQuery(r, "days", 30)

	points, err := s.dashboard.GetDaily(r.Context(), currentUser(r).ID, habitID, days)
	if errors.Is(err, app.ErrHabitNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": points})
}
