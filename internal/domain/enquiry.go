package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnquiryStatus is the triage state of an enquiry. Any state may move to any
// other state; every transition is recorded in an EnquiryLog row.
type EnquiryStatus string

const (
	StatusNew       EnquiryStatus = "new"
	StatusContacted EnquiryStatus = "contacted"
	StatusConverted EnquiryStatus = "converted"
	StatusClosed    EnquiryStatus = "closed"
)

// Valid reports whether s is one of the four known statuses.
func (s EnquiryStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted, StatusClosed:
		return true
	}
	return false
}

// VehicleType is the product category an enquiry is about.
type VehicleType string

const (
	VehicleScooter    VehicleType = "scooter"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleEV         VehicleType = "ev"
)

// Valid reports whether v is one of the three known vehicle types.
func (v VehicleType) Valid() bool {
	switch v {
	case VehicleScooter, VehicleMotorcycle, VehicleEV:
		return true
	}
	return false
}

// Enquiry represents a customer enquiry submitted from the showroom site.
type Enquiry struct {
	ID          string        `gorm:"primaryKey;size:64" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Email       string        `gorm:"not null;index" json:"email"`
	Phone       string        `gorm:"not null" json:"phone"`
	City        string        `gorm:"not null" json:"city"`
	VehicleType VehicleType   `gorm:"not null;size:16" json:"vehicle_type"`
	Message     string        `gorm:"type:text" json:"message"`
	Status      EnquiryStatus `gorm:"not null;size:16;index;default:'new'" json:"status"`
	SubmittedAt time.Time     `json:"submitted_at"`
	UpdatedAt   *time.Time    `json:"updated_at"`
}

// TableName specifies the table name for Enquiry
func (Enquiry) TableName() string {
	return "enquiries"
}

// BeforeCreate hook
func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.SubmittedAt.IsZero() {
		e.SubmittedAt = time.Now()
	}
	if e.Status == "" {
		e.Status = StatusNew
	}
	return nil
}

// NewEnquiryID generates a collision-resistant enquiry id: a millisecond
// timestamp followed by a random suffix taken from a UUIDv4, so two
// submissions within the same millisecond still get distinct ids.
func NewEnquiryID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d%s", time.Now().UnixMilli(), suffix)
}

// LogAction tags what happened to an enquiry.
type LogAction string

const (
	ActionCreated       LogAction = "created"
	ActionStatusChanged LogAction = "status_changed"
	ActionUpdated       LogAction = "updated"
	ActionDeleted       LogAction = "deleted"
)

// EnquiryLog is an append-only audit row for a single enquiry. Rows are never
// mutated; they are removed only by the cascade when the parent enquiry is
// deleted.
type EnquiryLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EnquiryID string         `gorm:"not null;size:64;index" json:"enquiry_id"`
	Action    LogAction      `gorm:"not null;size:32" json:"action"`
	OldStatus *EnquiryStatus `gorm:"size:16" json:"old_status"`
	NewStatus *EnquiryStatus `gorm:"size:16" json:"new_status"`
	ActorID   *uint          `json:"actor_id"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName specifies the table name for EnquiryLog
func (EnquiryLog) TableName() string {
	return "enquiry_logs"
}

// BeforeCreate hook
func (l *EnquiryLog) BeforeCreate(tx *gorm.DB) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	return nil
}

// EnquiryStats is the per-status count aggregation over current enquiries.
type EnquiryStats struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Contacted int64 `json:"contacted"`
	Converted int64 `json:"converted"`
	Closed    int64 `json:"closed"`
}
