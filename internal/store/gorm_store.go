package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
)

// GormStore backs the enquiry lifecycle with a relational database through
// GORM (SQLite or PostgreSQL, per DATABASE_URL).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new relational enquiry store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, enquiry *domain.Enquiry, entry *domain.EnquiryLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(enquiry).Error; err != nil {
			return fmt.Errorf("failed to save enquiry: %w", err)
		}
		entry.EnquiryID = enquiry.ID
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to save enquiry log: %w", err)
		}
		return nil
	})
}

func (s *GormStore) List(ctx context.Context, params ListParams) (*ListResult, error) {
	result := &ListResult{}

	// Records, count and statistics share one transaction so the reported
	// total cannot disagree with the sum of the per-status counts.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&domain.Enquiry{})
		if params.Status != nil {
			query = query.Where("status = ?", *params.Status)
		}

		if err := query.Count(&result.Total).Error; err != nil {
			return fmt.Errorf("failed to count enquiries: %w", err)
		}

		order := fmt.Sprintf("%s %s", params.SortBy, sqlOrder(params.SortOrder))
		if err := query.Order(order).
			Offset(params.Offset).Limit(params.Limit).
			Find(&result.Records).Error; err != nil {
			return fmt.Errorf("failed to fetch enquiries: %w", err)
		}

		stats, err := statsIn(tx)
		if err != nil {
			return err
		}
		result.Stats = stats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*domain.Enquiry, []domain.EnquiryLog, error) {
	var enquiry domain.Enquiry
	if err := s.db.WithContext(ctx).First(&enquiry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch enquiry: %w", err)
	}

	var logs []domain.EnquiryLog
	if err := s.db.WithContext(ctx).
		Where("enquiry_id = ?", id).
		Order("created_at DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch enquiry logs: %w", err)
	}

	return &enquiry, logs, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus, entry *domain.EnquiryLog) (*domain.Enquiry, error) {
	var enquiry domain.Enquiry

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&enquiry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch enquiry: %w", err)
		}

		old := enquiry.Status
		now := time.Now()
		enquiry.Status = status
		enquiry.UpdatedAt = &now
		if err := tx.Model(&domain.Enquiry{}).Where("id = ?", id).
			Updates(map[string]interface{}{"status": status, "updated_at": now}).Error; err != nil {
			return fmt.Errorf("failed to update enquiry status: %w", err)
		}

		entry.EnquiryID = id
		entry.OldStatus = &old
		entry.NewStatus = &status
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to save enquiry log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (s *GormStore) Delete(ctx context.Context, id string, entry *domain.EnquiryLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enquiry domain.Enquiry
		if err := tx.First(&enquiry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch enquiry: %w", err)
		}

		// The trailing `deleted` entry is written so the cascade below is
		// observed as one unit; it is removed together with the rest of the
		// enquiry's log rows.
		entry.EnquiryID = id
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to save enquiry log: %w", err)
		}

		if err := tx.Where("enquiry_id = ?", id).Delete(&domain.EnquiryLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete enquiry logs: %w", err)
		}
		if err := tx.Delete(&domain.Enquiry{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete enquiry: %w", err)
		}
		return nil
	})
}

func (s *GormStore) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Enquiry{}).Count(&deleted).Error; err != nil {
			return fmt.Errorf("failed to count enquiries: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&domain.EnquiryLog{}).Error; err != nil {
			return fmt.Errorf("failed to clear enquiry logs: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&domain.Enquiry{}).Error; err != nil {
			return fmt.Errorf("failed to clear enquiries: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *GormStore) Stats(ctx context.Context) (domain.EnquiryStats, error) {
	return statsIn(s.db.WithContext(ctx))
}

// statsIn aggregates per-status counts inside the given transaction handle.
func statsIn(tx *gorm.DB) (domain.EnquiryStats, error) {
	var stats domain.EnquiryStats
	row := tx.Model(&domain.Enquiry{}).Select(
		"COUNT(*) AS total, " +
			"SUM(CASE WHEN status = 'new' THEN 1 ELSE 0 END) AS new, " +
			"SUM(CASE WHEN status = 'contacted' THEN 1 ELSE 0 END) AS contacted, " +
			"SUM(CASE WHEN status = 'converted' THEN 1 ELSE 0 END) AS converted, " +
			"SUM(CASE WHEN status = 'closed' THEN 1 ELSE 0 END) AS closed").
		Row()
	var newCount, contacted, converted, closed *int64
	if err := row.Scan(&stats.Total, &newCount, &contacted, &converted, &closed); err != nil {
		return stats, fmt.Errorf("failed to aggregate enquiry stats: %w", err)
	}
	// SUM over zero rows yields NULL.
	if newCount != nil {
		stats.New = *newCount
	}
	if contacted != nil {
		stats.Contacted = *contacted
	}
	if converted != nil {
		stats.Converted = *converted
	}
	if closed != nil {
		stats.Closed = *closed
	}
	return stats, nil
}

func sqlOrder(order string) string {
	if order == SortAsc {
		return "ASC"
	}
	return "DESC"
}
