// Package store provides the persistence capability set consumed by the
// enquiry lifecycle manager. Implementations must make each mutating call
// (create, status update, delete) atomic with respect to its log append.
package store

import (
	"context"
	"errors"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
)

// ErrNotFound is returned when the referenced enquiry does not exist.
var ErrNotFound = errors.New("enquiry not found")

// Sort orders accepted by List.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListParams controls filtering, pagination and ordering of List.
// SortBy must be one of the allow-listed columns; callers normalize it
// before handing it to a store.
type ListParams struct {
	Status    *domain.EnquiryStatus
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// ListResult bundles a page of records with the total count and the
// per-status statistics, all taken from the same snapshot so the total
// always equals the sum of the per-status counts.
type ListResult struct {
	Records []domain.Enquiry
	Total   int64
	Stats   domain.EnquiryStats
}

// EnquiryStore is the capability set backing the enquiry lifecycle manager.
type EnquiryStore interface {
	// Create persists the enquiry and its `created` log entry in one
	// transaction.
	Create(ctx context.Context, enquiry *domain.Enquiry, entry *domain.EnquiryLog) error

	// List returns a deterministically ordered page plus total and stats.
	List(ctx context.Context, params ListParams) (*ListResult, error)

	// Get returns the enquiry and its log entries ordered newest-first,
	// or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Enquiry, []domain.EnquiryLog, error)

	// UpdateStatus writes the new status, stamps UpdatedAt and appends the
	// log entry atomically. Returns ErrNotFound for unknown ids.
	UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus, entry *domain.EnquiryLog) (*domain.Enquiry, error)

	// Delete appends the entry, then removes the enquiry and cascades over
	// its log rows (the trailing entry included) in one transaction.
	Delete(ctx context.Context, id string, entry *domain.EnquiryLog) error

	// DeleteAll removes every enquiry and every log row in one transaction
	// and reports how many enquiries were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// Stats returns the per-status counts from a single snapshot.
	Stats(ctx context.Context) (domain.EnquiryStats, error)
}
