package api

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	result := s.health.Check(r.Context())
	status := http.StatusOK
	if result.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, payload{
		"success": result.Status == "healthy",
		"status":  result.Status,
		"service": result.Service,
	})
}
