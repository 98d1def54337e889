package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
	"github.com/omshinde26/honda-digital-showroom/internal/metrics"
	"github.com/omshinde26/honda-digital-showroom/internal/store"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// allowed sort columns; anything else falls back to submitted_at rather
// than failing.
var allowedSortFields = map[string]bool{
	"submitted_at": true,
	"updated_at":   true,
	"name":         true,
	"status":       true,
}

// EnquiryService owns the enquiry lifecycle: creation, status transitions,
// deletion and statistics. It is the sole writer of status transitions and
// the sole source of aggregate counts.
type EnquiryService struct {
	store        store.EnquiryStore
	emailService *EmailService
}

// NewEnquiryService creates a new enquiry service on top of the given store
func NewEnquiryService(st store.EnquiryStore, emailService *EmailService) *EnquiryService {
	return &EnquiryService{
		store:        st,
		emailService: emailService,
	}
}

// SubmitEnquiryInput carries the public submission fields. Field-shape
// checks (lengths, character classes) happen at the HTTP boundary; the
// service enforces presence and the vehicle type enum.
type SubmitEnquiryInput struct {
	Name        string
	Email       string
	Phone       string
	City        string
	VehicleType string
	Message     string
}

// SubmitEnquiryResult is returned to the public caller.
type SubmitEnquiryResult struct {
	ID          string
	SubmittedAt time.Time
}

// Submit validates the input, persists the enquiry together with its
// `created` log entry in one transaction and fires the notification emails
// without blocking the mutation.
func (s *EnquiryService) Submit(ctx context.Context, in SubmitEnquiryInput) (*SubmitEnquiryResult, error) {
	log.Printf("[ENQUIRY] Submit request: name=%s, email=%s, vehicle=%s",
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), in.VehicleType)

	if err := validateSubmission(in); err != nil {
		log.Printf("[ENQUIRY] Submit failed: validation error: %v", err)
		return nil, err
	}

	enquiry := &domain.Enquiry{
		ID:          domain.NewEnquiryID(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		City:        strings.TrimSpace(in.City),
		VehicleType: domain.VehicleType(in.VehicleType),
		Message:     strings.TrimSpace(in.Message),
		Status:      domain.StatusNew,
		SubmittedAt: time.Now(),
	}

	newStatus := domain.StatusNew
	entry := &domain.EnquiryLog{
		Action:    domain.ActionCreated,
		NewStatus: &newStatus,
	}

	if err := s.store.Create(ctx, enquiry, entry); err != nil {
		log.Printf("[ENQUIRY] Submit failed: store error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to save enquiry", err)
	}

	log.Printf("[ENQUIRY] Submit successful: id=%s, name=%s", enquiry.ID, enquiry.Name)
	metrics.RecordEnquirySubmission()

	// Notifications are fire-and-forget: a failed email never rolls back or
	// blocks the submission.
	go s.notifySubmission(enquiry)

	return &SubmitEnquiryResult{ID: enquiry.ID, SubmittedAt: enquiry.SubmittedAt}, nil
}

// ListEnquiriesInput controls filtering, pagination and ordering.
type ListEnquiriesInput struct {
	Status    string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// EnquiryPage is one deterministically ordered page plus the aggregate
// statistics taken from the same snapshot.
type EnquiryPage struct {
	Records []domain.Enquiry
	Total   int64
	Limit   int
	Offset  int
	HasMore bool
	Stats   domain.EnquiryStats
}

// List returns a page of enquiries with total count and statistics.
func (s *EnquiryService) List(ctx context.Context, in ListEnquiriesInput) (*EnquiryPage, error) {
	log.Printf("[ENQUIRY] List request: status=%q, limit=%d, offset=%d, sort=%s %s",
		in.Status, in.Limit, in.Offset, in.SortBy, in.SortOrder)

	params := store.ListParams{
		Limit:     in.Limit,
		Offset:    in.Offset,
		SortBy:    normalizeSortField(in.SortBy),
		SortOrder: normalizeSortOrder(in.SortOrder),
	}
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}
	if params.Limit > maxListLimit {
		params.Limit = maxListLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	if in.Status != "" && in.Status != "all" {
		status := domain.EnquiryStatus(in.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidation(apperrors.FieldError{
				Field:  "status",
				Reason: "status must be new, contacted, converted, or closed",
			})
		}
		params.Status = &status
	}

	result, err := s.store.List(ctx, params)
	if err != nil {
		log.Printf("[ENQUIRY] List failed: store error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to fetch enquiries", err)
	}

	log.Printf("[ENQUIRY] List successful: returned %d of %d enquiries", len(result.Records), result.Total)
	return &EnquiryPage{
		Records: result.Records,
		Total:   result.Total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: int64(params.Offset+params.Limit) < result.Total,
		Stats:   result.Stats,
	}, nil
}

// EnquiryDetail is a single enquiry with its audit trail, newest entry
// first.
type EnquiryDetail struct {
	Enquiry domain.Enquiry
	Logs    []domain.EnquiryLog
}

// Get returns one enquiry and its log entries.
func (s *EnquiryService) Get(ctx context.Context, id string) (*EnquiryDetail, error) {
	log.Printf("[ENQUIRY] Get request: id=%s", id)

	enquiry, logs, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("[ENQUIRY] Get failed: id=%s not found", id)
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "enquiry not found")
		}
		log.Printf("[ENQUIRY] Get failed: store error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to fetch enquiry", err)
	}

	return &EnquiryDetail{Enquiry: *enquiry, Logs: logs}, nil
}

// UpdateStatus transitions an enquiry to newStatus and appends the
// `status_changed` log entry atomically. Any state may move to any other
// state; the transition is always observable via the log.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id, newStatus string, actorID uint, notes string) (*domain.Enquiry, error) {
	log.Printf("[ENQUIRY] UpdateStatus request: id=%s, status=%s, actor=%d", id, newStatus, actorID)

	status := domain.EnquiryStatus(newStatus)
	if !status.Valid() {
		return nil, apperrors.NewValidation(apperrors.FieldError{
			Field:  "status",
			Reason: "status must be new, contacted, converted, or closed",
		})
	}

	entry := &domain.EnquiryLog{
		Action:  domain.ActionStatusChanged,
		ActorID: &actorID,
		Notes:   strings.TrimSpace(notes),
	}

	enquiry, err := s.store.UpdateStatus(ctx, id, status, entry)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("[ENQUIRY] UpdateStatus failed: id=%s not found", id)
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "enquiry not found")
		}
		log.Printf("[ENQUIRY] UpdateStatus failed: store error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to update enquiry status", err)
	}

	log.Printf("[ENQUIRY] UpdateStatus successful: id=%s, %s -> %s", id, *entry.OldStatus, status)
	metrics.RecordEnquiryStatusChange(string(status))
	return enquiry, nil
}

// Delete appends a `deleted` log entry and removes the enquiry with its
// audit trail in one transaction. The trailing entry is removed by the same
// cascade, so no orphan log rows survive.
func (s *EnquiryService) Delete(ctx context.Context, id string, actorID uint) error {
	log.Printf("[ENQUIRY] Delete request: id=%s, actor=%d", id, actorID)

	entry := &domain.EnquiryLog{
		Action:  domain.ActionDeleted,
		ActorID: &actorID,
		Notes:   "Enquiry deleted by admin",
	}

	if err := s.store.Delete(ctx, id, entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("[ENQUIRY] Delete failed: id=%s not found", id)
			return apperrors.New(apperrors.ErrCodeNotFound, "enquiry not found")
		}
		log.Printf("[ENQUIRY] Delete failed: store error: %v", err)
		return apperrors.Wrap(apperrors.ErrCodePersistence, "failed to delete enquiry", err)
	}

	log.Printf("[ENQUIRY] Delete successful: id=%s", id)
	metrics.RecordEnquiryDeletion()
	return nil
}

// Stats returns the aggregate per-status counts.
func (s *EnquiryService) Stats(ctx context.Context) (domain.EnquiryStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		log.Printf("[ENQUIRY] Stats failed: store error: %v", err)
		return stats, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to aggregate stats", err)
	}
	return stats, nil
}

// ClearAll removes every enquiry and its logs in a single transaction and
// records one aggregate audit line instead of per-record entries.
func (s *EnquiryService) ClearAll(ctx context.Context, actorID uint) (int64, error) {
	log.Printf("[ENQUIRY] ClearAll request: actor=%d", actorID)

	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		log.Printf("[ENQUIRY] ClearAll failed: store error: %v", err)
		return 0, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to clear enquiries", err)
	}

	log.Printf("[ENQUIRY] ClearAll successful: actor=%d removed %d enquiries", actorID, deleted)
	return deleted, nil
}

// validateSubmission enforces the lifecycle manager's own invariants:
// required fields are present and the vehicle type is one of the allowed
// values. One FieldError per failing field.
func validateSubmission(in SubmitEnquiryInput) error {
	var fields []apperrors.FieldError

	required := []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"phone", in.Phone},
		{"city", in.City},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, apperrors.FieldError{
				Field:  f.name,
				Reason: fmt.Sprintf("%s is required", f.name),
			})
		}
	}

	if !domain.VehicleType(in.VehicleType).Valid() {
		fields = append(fields, apperrors.FieldError{
			Field:  "vehicle_type",
			Reason: "vehicle type must be scooter, motorcycle, or ev",
		})
	}

	if len(fields) > 0 {
		return apperrors.NewValidation(fields...)
	}
	return nil
}

func (s *EnquiryService) notifySubmission(enquiry *domain.Enquiry) {
	if s.emailService == nil {
		return
	}
	if err := s.emailService.SendEnquiryAdminNotification(enquiry); err != nil {
		log.Printf("[ENQUIRY] Warning: failed to send admin notification for id=%s: %v", enquiry.ID, err)
	}
	if err := s.emailService.SendEnquiryConfirmation(enquiry); err != nil {
		log.Printf("[ENQUIRY] Warning: failed to send customer confirmation for id=%s: %v", enquiry.ID, err)
	}
}

func normalizeSortField(field string) string {
	if allowedSortFields[field] {
		return field
	}
	return "submitted_at"
}

func normalizeSortOrder(order string) string {
	if strings.EqualFold(order, store.SortAsc) {
		return store.SortAsc
	}
	return store.SortDesc
}
