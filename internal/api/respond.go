package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

// payload is the generic response envelope: success flag plus whatever the
// endpoint adds (message, data, pagination, statistics, errors).
type payload map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, body payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

// writeError maps service errors onto the HTTP surface. Internal detail
// stays in the server log; callers get the code-appropriate status and a
// safe message.
func writeError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, payload{
			"success": false,
			"message": "Validation failed",
			"errors":  ve.Fields,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, statusFor(appErr.Code), payload{
			"success": false,
			"message": appErr.Message,
		})
		return
	}

	log.Printf("[API] Unhandled error: %v", err)
	writeJSON(w, http.StatusInternalServerError, payload{
		"success": false,
		"message": "Internal server error",
	})
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeBadRequest, apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodePersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
