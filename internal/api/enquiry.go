package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/omshinde26/honda-digital-showroom/internal/services"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

type enquiryRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	VehicleType string `json:"vehicle_type"`
	Message     string `json:"message"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (s *Server) handleSubmitEnquiry(w http.ResponseWriter, r *http.Request) {
	var req enquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}
	if err := validateEnquiryRequest(&req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.enquiries.Submit(r.Context(), services.SubmitEnquiryInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		City:        req.City,
		VehicleType: req.VehicleType,
		Message:     req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payload{
		"success": true,
		"message": "Enquiry submitted successfully",
		"data": payload{
			"id":           result.ID,
			"submitted_at": result.SubmittedAt,
		},
	})
}

func (s *Server) handleListEnquiries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := s.enquiries.List(r.Context(), services.ListEnquiriesInput{
		Status:    q.Get("status"),
		Limit:     intParam(q.Get("limit")),
		Offset:    intParam(q.Get("offset")),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"data":    page.Records,
		"pagination": payload{
			"total":    page.Total,
			"limit":    page.Limit,
			"offset":   page.Offset,
			"has_more": page.HasMore,
		},
		"statistics": page.Stats,
	})
}

func (s *Server) handleEnquiryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.enquiries.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"data":    stats,
	})
}

func (s *Server) handleGetEnquiry(w http.ResponseWriter, r *http.Request) {
	detail, err := s.enquiries.Get(r.Context(), s.pathParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"data": payload{
			"enquiry": detail.Enquiry,
			"logs":    detail.Logs,
		},
	})
}

func (s *Server) handleUpdateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}
	if err := validateStatusUpdateRequest(&req); err != nil {
		writeError(w, err)
		return
	}

	actor := userFromContext(r.Context())
	updated, err := s.enquiries.UpdateStatus(r.Context(), s.pathParam(r, "id"), req.Status, actor.ID, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"message": "Enquiry status updated successfully",
		"data":    updated,
	})
}

func (s *Server) handleDeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())
	if err := s.enquiries.Delete(r.Context(), s.pathParam(r, "id"), actor.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"message": "Enquiry deleted successfully",
	})
}

func (s *Server) handleClearEnquiries(w http.ResponseWriter, r *http.Request) {
	actor := userFromContext(r.Context())
	deleted, err := s.enquiries.ClearAll(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"message": "All enquiries cleared",
		"data": payload{
			"deleted": deleted,
		},
	})
}

func intParam(raw string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
