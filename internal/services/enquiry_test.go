package services

import (
	"context"
	"sync"
	"testing"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
	"github.com/omshinde26/honda-digital-showroom/internal/store"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

func newTestService() *EnquiryService {
	return NewEnquiryService(store.NewMemoryStore(), nil)
}

func validSubmission() SubmitEnquiryInput {
	return SubmitEnquiryInput{
		Name:        "Omkar Shinde",
		Email:       "omkar@example.com",
		Phone:       "+919812345678",
		City:        "Pune",
		VehicleType: "scooter",
		Message:     "Interested in the Activa 125",
	}
}

func TestSubmit_CreatesNewEnquiryWithCreatedLog(t *testing.T) {
	svc := newTestService()

	result, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected a non-empty enquiry id")
	}
	if result.SubmittedAt.IsZero() {
		t.Fatal("expected submittedAt to be stamped")
	}

	detail, err := svc.Get(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Enquiry.Status != domain.StatusNew {
		t.Errorf("expected status new, got %s", detail.Enquiry.Status)
	}
	if len(detail.Logs) != 1 {
		t.Fatalf("expected exactly one log entry, got %d", len(detail.Logs))
	}
	if detail.Logs[0].Action != domain.ActionCreated {
		t.Errorf("expected created log entry, got %s", detail.Logs[0].Action)
	}
	if detail.Logs[0].ActorID != nil {
		t.Error("public submission must not record an actor")
	}
}

func TestSubmit_ValidationErrorsListEveryBadField(t *testing.T) {
	svc := newTestService()

	in := SubmitEnquiryInput{
		Name:        "",
		Email:       "",
		Phone:       "+919812345678",
		City:        "Pune",
		VehicleType: "spaceship",
	}
	_, err := svc.Submit(context.Background(), in)
	if err == nil {
		t.Fatal("expected validation error")
	}

	ve, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors (name, email, vehicle_type), got %d: %v", len(ve.Fields), ve.Fields)
	}
	seen := map[string]bool{}
	for _, f := range ve.Fields {
		seen[f.Field] = true
	}
	for _, field := range []string{"name", "email", "vehicle_type"} {
		if !seen[field] {
			t.Errorf("missing field error for %s", field)
		}
	}
}

func TestSubmit_ConcurrentIDsNeverCollide(t *testing.T) {
	svc := newTestService()

	const n = 1000
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Submit(context.Background(), validSubmission())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			ids <- result.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate enquiry id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d unique ids, got %d", n, len(seen))
	}
}

func TestUpdateStatus_LogsEveryTransitionWithOldStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	result, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transitions := []domain.EnquiryStatus{
		domain.StatusContacted,
		domain.StatusConverted,
		domain.StatusClosed,
		domain.StatusContacted, // closed enquiries can be reopened
	}
	for _, next := range transitions {
		updated, err := svc.UpdateStatus(ctx, result.ID, string(next), 7, "follow-up")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != next {
			t.Fatalf("expected status %s, got %s", next, updated.Status)
		}
		if updated.UpdatedAt == nil {
			t.Fatal("expected updatedAt to be stamped")
		}
	}

	detail, err := svc.Get(ctx, result.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var changes []domain.EnquiryLog
	for _, l := range detail.Logs {
		if l.Action == domain.ActionStatusChanged {
			changes = append(changes, l)
		}
	}
	if len(changes) != len(transitions) {
		t.Fatalf("expected %d status_changed entries, got %d", len(transitions), len(changes))
	}

	// logs are newest-first; walk backwards to replay the transitions
	expectedOld := domain.StatusNew
	for i := len(changes) - 1; i >= 0; i-- {
		entry := changes[i]
		if entry.OldStatus == nil || *entry.OldStatus != expectedOld {
			t.Fatalf("entry %d: expected old status %s, got %v", i, expectedOld, entry.OldStatus)
		}
		if entry.ActorID == nil || *entry.ActorID != 7 {
			t.Fatalf("entry %d: expected actor 7, got %v", i, entry.ActorID)
		}
		expectedOld = *entry.NewStatus
	}
}

func TestUpdateStatus_UnknownIDReturnsNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.UpdateStatus(context.Background(), "missing", "contacted", 1, "")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestStats_TotalsAgreeWithList(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 6; i++ {
		result, err := svc.Submit(ctx, validSubmission())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, result.ID)
	}
	if _, err := svc.UpdateStatus(ctx, ids[0], "contacted", 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, ids[1], "converted", 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, ids[2], "closed", 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum := stats.New + stats.Contacted + stats.Converted + stats.Closed; stats.Total != sum {
		t.Errorf("stats total %d does not equal per-status sum %d", stats.Total, sum)
	}

	page, err := svc.List(ctx, ListEnquiriesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != stats.Total {
		t.Errorf("list total %d disagrees with stats total %d", page.Total, stats.Total)
	}
	if page.Stats != stats {
		t.Errorf("list statistics %+v disagree with stats %+v", page.Stats, stats)
	}
}

func TestList_FilterSortAndPagination(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	names := []string{"Charlie", "Alice", "Bob"}
	for _, name := range names {
		in := validSubmission()
		in.Name = name
		if _, err := svc.Submit(ctx, in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	page, err := svc.List(ctx, ListEnquiriesInput{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(page.Records))
	}
	for i, want := range []string{"Alice", "Bob", "Charlie"} {
		if page.Records[i].Name != want {
			t.Errorf("position %d: expected %s, got %s", i, want, page.Records[i].Name)
		}
	}

	// unknown sort column falls back to submitted_at instead of failing
	if _, err := svc.List(ctx, ListEnquiriesInput{SortBy: "password_hash"}); err != nil {
		t.Fatalf("expected fallback for bad sort field, got %v", err)
	}

	page, err = svc.List(ctx, ListEnquiriesInput{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Records) != 2 || !page.HasMore {
		t.Errorf("expected a first page of 2 with hasMore, got %d records hasMore=%v", len(page.Records), page.HasMore)
	}

	page, err = svc.List(ctx, ListEnquiriesInput{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Records) != 1 || page.HasMore {
		t.Errorf("expected a last page of 1 without hasMore, got %d records hasMore=%v", len(page.Records), page.HasMore)
	}

	status := "contacted"
	empty, err := svc.List(ctx, ListEnquiriesInput{Status: status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Total != 0 {
		t.Errorf("expected no contacted enquiries, got %d", empty.Total)
	}
}

func TestDelete_RemovesEnquiryAndItsLogs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	result, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, result.ID, "contacted", 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, result.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Get(ctx, result.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("expected empty stats after delete, got %+v", stats)
	}
}

func TestDelete_UnknownIDLeavesStatsUntouched(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, validSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, "missing", 1); !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	after, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before != after {
		t.Errorf("stats changed across a failed delete: %+v -> %+v", before, after)
	}
}

func TestClearAll_RemovesEverythingInOneCall(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := svc.Submit(ctx, validSubmission()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	deleted, err := svc.ClearAll(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 4 {
		t.Errorf("expected 4 deletions, got %d", deleted)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("expected empty store, got %+v", stats)
	}
}
