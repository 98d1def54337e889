package api

import (
	"regexp"
	"strings"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// validateEnquiryRequest checks the public submission fields and collects
// one FieldError per failing field so the form can highlight all of them.
func validateEnquiryRequest(r *enquiryRequest) error {
	var fields []apperrors.FieldError

	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) < 2 || len(r.Name) > 100 {
		fields = append(fields, apperrors.FieldError{
			Field: "name", Reason: "Name must be between 2 and 100 characters",
		})
	} else if !nameRe.MatchString(r.Name) {
		fields = append(fields, apperrors.FieldError{
			Field: "name", Reason: "Name can only contain letters and spaces",
		})
	}

	if !emailRe.MatchString(r.Email) {
		fields = append(fields, apperrors.FieldError{
			Field: "email", Reason: "Please provide a valid email address",
		})
	}

	if !phoneRe.MatchString(r.Phone) {
		fields = append(fields, apperrors.FieldError{
			Field: "phone", Reason: "Please provide a valid phone number",
		})
	}

	r.City = strings.TrimSpace(r.City)
	if len(r.City) < 2 || len(r.City) > 50 {
		fields = append(fields, apperrors.FieldError{
			Field: "city", Reason: "City must be between 2 and 50 characters",
		})
	} else if !nameRe.MatchString(r.City) {
		fields = append(fields, apperrors.FieldError{
			Field: "city", Reason: "City can only contain letters and spaces",
		})
	}

	if !domain.VehicleType(r.VehicleType).Valid() {
		fields = append(fields, apperrors.FieldError{
			Field: "vehicle_type", Reason: "Vehicle type must be scooter, motorcycle, or ev",
		})
	}

	r.Message = strings.TrimSpace(r.Message)
	if len(r.Message) > 1000 {
		fields = append(fields, apperrors.FieldError{
			Field: "message", Reason: "Message cannot exceed 1000 characters",
		})
	}

	if len(fields) > 0 {
		return apperrors.NewValidation(fields...)
	}
	return nil
}

func validateStatusUpdateRequest(r *statusUpdateRequest) error {
	var fields []apperrors.FieldError

	if !domain.EnquiryStatus(r.Status).Valid() {
		fields = append(fields, apperrors.FieldError{
			Field: "status", Reason: "Status must be new, contacted, converted, or closed",
		})
	}

	r.Notes = strings.TrimSpace(r.Notes)
	if len(r.Notes) > 500 {
		fields = append(fields, apperrors.FieldError{
			Field: "notes", Reason: "Notes cannot exceed 500 characters",
		})
	}

	if len(fields) > 0 {
		return apperrors.NewValidation(fields...)
	}
	return nil
}

func validateLoginRequest(r *loginRequest) error {
	var fields []apperrors.FieldError

	r.Username = strings.TrimSpace(r.Username)
	if len(r.Username) < 3 || len(r.Username) > 50 {
		fields = append(fields, apperrors.FieldError{
			Field: "username", Reason: "Username must be between 3 and 50 characters",
		})
	}

	if len(r.Password) < 6 {
		fields = append(fields, apperrors.FieldError{
			Field: "password", Reason: "Password must be at least 6 characters long",
		})
	}

	if len(fields) > 0 {
		return apperrors.NewValidation(fields...)
	}
	return nil
}
