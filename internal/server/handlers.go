package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"service": "tickerdash",
	}
	if s.snapshot == nil {
		response["status"] = "degraded"
		if s.buildErr != nil {
			response["error"] = s.buildErr.Error()
		}
	} else {
		response["ticker"] = s.snapshot.Symbol
		response["snapshot_id"] = s.snapshot.ID
		response["fetched_at"] = s.snapshot.BuiltAt.Format(time.RFC3339)
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.dashboard.ServeHTTP(w, r)
}

// handleFigures returns the two chart figures in display order.
func (s *Server) handleFigures(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dashboard.Figures())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.snapshot)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
