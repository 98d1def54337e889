package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
)

// MemoryStore keeps enquiries in process memory. It mirrors the relational
// store's transaction semantics with a single mutex and is used for local
// development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	enquiries map[string]*domain.Enquiry
	logs      []domain.EnquiryLog
	nextLogID uint
}

// NewMemoryStore creates an empty in-memory enquiry store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		enquiries: make(map[string]*domain.Enquiry),
		nextLogID: 1,
	}
}

func (s *MemoryStore) Create(ctx context.Context, enquiry *domain.Enquiry, entry *domain.EnquiryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enquiry.SubmittedAt.IsZero() {
		enquiry.SubmittedAt = time.Now()
	}
	if enquiry.Status == "" {
		enquiry.Status = domain.StatusNew
	}
	cp := *enquiry
	s.enquiries[enquiry.ID] = &cp

	entry.EnquiryID = enquiry.ID
	s.appendLog(entry)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, params ListParams) (*ListResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Enquiry, 0, len(s.enquiries))
	for _, e := range s.enquiries {
		if params.Status != nil && e.Status != *params.Status {
			continue
		}
		matched = append(matched, *e)
	}

	sortEnquiries(matched, params.SortBy, params.SortOrder)

	result := &ListResult{
		Total: int64(len(matched)),
		Stats: s.statsLocked(),
	}

	start := params.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Limit
	if params.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	result.Records = matched[start:end]
	return result, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Enquiry, []domain.EnquiryLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.enquiries[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	cp := *e

	var logs []domain.EnquiryLog
	for _, l := range s.logs {
		if l.EnquiryID == id {
			logs = append(logs, l)
		}
	}
	// newest first
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].CreatedAt.Equal(logs[j].CreatedAt) {
			return logs[i].ID > logs[j].ID
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	return &cp, logs, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus, entry *domain.EnquiryLog) (*domain.Enquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.enquiries[id]
	if !ok {
		return nil, ErrNotFound
	}

	old := e.Status
	now := time.Now()
	e.Status = status
	e.UpdatedAt = &now

	entry.EnquiryID = id
	entry.OldStatus = &old
	entry.NewStatus = &status
	s.appendLog(entry)

	cp := *e
	return &cp, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string, entry *domain.EnquiryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.enquiries[id]; !ok {
		return ErrNotFound
	}

	entry.EnquiryID = id
	s.appendLog(entry)

	delete(s.enquiries, id)
	kept := s.logs[:0]
	for _, l := range s.logs {
		if l.EnquiryID != id {
			kept = append(kept, l)
		}
	}
	s.logs = kept
	return nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := int64(len(s.enquiries))
	s.enquiries = make(map[string]*domain.Enquiry)
	s.logs = nil
	return deleted, nil
}

func (s *MemoryStore) Stats(ctx context.Context) (domain.EnquiryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statsLocked(), nil
}

func (s *MemoryStore) statsLocked() domain.EnquiryStats {
	var stats domain.EnquiryStats
	for _, e := range s.enquiries {
		stats.Total++
		switch e.Status {
		case domain.StatusNew:
			stats.New++
		case domain.StatusContacted:
			stats.Contacted++
		case domain.StatusConverted:
			stats.Converted++
		case domain.StatusClosed:
			stats.Closed++
		}
	}
	return stats
}

func (s *MemoryStore) appendLog(entry *domain.EnquiryLog) {
	entry.ID = s.nextLogID
	s.nextLogID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.logs = append(s.logs, *entry)
}

func sortEnquiries(list []domain.Enquiry, sortBy, order string) {
	less := func(a, b domain.Enquiry) bool {
		switch sortBy {
		case "updated_at":
			au, bu := a.SubmittedAt, b.SubmittedAt
			if a.UpdatedAt != nil {
				au = *a.UpdatedAt
			}
			if b.UpdatedAt != nil {
				bu = *b.UpdatedAt
			}
			if !au.Equal(bu) {
				return au.Before(bu)
			}
		case "name":
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case "status":
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		default: // submitted_at
			if !a.SubmittedAt.Equal(b.SubmittedAt) {
				return a.SubmittedAt.Before(b.SubmittedAt)
			}
		}
		// stable tie-break so pages never overlap
		return a.ID < b.ID
	}

	sort.SliceStable(list, func(i, j int) bool {
		if order == SortAsc {
			return less(list[i], list[j])
		}
		return less(list[j], list[i])
	})
}
