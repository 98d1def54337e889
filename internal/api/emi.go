package api

import (
	"encoding/json"
	"net/http"

	"github.com/omshinde26/honda-digital-showroom/internal/emi"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

func (s *Server) handleEMIQuote(w http.ResponseWriter, r *http.Request) {
	var in emi.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}
	if in.TenureUnit == "" {
		in.TenureUnit = emi.UnitMonths
	}

	quote, err := s.emi.Quote(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"data":    quote,
	})
}
