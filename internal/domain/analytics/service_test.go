package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/instiprop/instiprop-api/internal/domain/property"
)

type fakeAnalyticsRepo struct {
	traffic   map[uuid.UUID][]DailyCount
	enquiries map[uuid.UUID][]DailyCount
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{
		traffic:   map[uuid.UUID][]DailyCount{},
		enquiries: map[uuid.UUID][]DailyCount{},
	}
}

func bump(buckets map[uuid.UUID][]DailyCount, propertyID uuid.UUID, date time.Time) {
	d := dateOnly(date)
	for i := range buckets[propertyID] {
		if buckets[propertyID][i].Date.Equal(d) {
			buckets[propertyID][i].Count++
			return
		}
	}
	buckets[propertyID] = append(buckets[propertyID], DailyCount{PropertyID: propertyID, Date: d, Count: 1})
}

func (f *fakeAnalyticsRepo) IncrementTraffic(ctx context.Context, propertyID uuid.UUID, date time.Time) error {
	bump(f.traffic, propertyID, date)
	return nil
}

func (f *fakeAnalyticsRepo) IncrementEnquiry(ctx context.Context, propertyID uuid.UUID, date time.Time) error {
	bump(f.enquiries, propertyID, date)
	return nil
}

func (f *fakeAnalyticsRepo) ListTraffic(ctx context.Context, propertyID uuid.UUID) ([]DailyCount, error) {
	return f.traffic[propertyID], nil
}

func (f *fakeAnalyticsRepo) ListEnquiries(ctx context.Context, propertyID uuid.UUID) ([]DailyCount, error) {
	return f.enquiries[propertyID], nil
}

type fakePropertyStore struct {
	known map[uuid.UUID]bool
}

func (f *fakePropertyStore) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	if f.known[id] {
		return &property.Property{ID: id}, nil
	}
	return nil, nil
}

func newAnalyticsService(known ...uuid.UUID) (*Service, *fakeAnalyticsRepo) {
	repo := newFakeAnalyticsRepo()
	store := &fakePropertyStore{known: map[uuid.UUID]bool{}}
	for _, id := range known {
		store.known[id] = true
	}
	return NewService(repo, store), repo
}

func TestRecordTrafficBumpsTodayBucket(t *testing.T) {
	pid := uuid.New()
	svc, repo := newAnalyticsService(pid)
	now := time.Date(2026, time.August, 30, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if err := svc.RecordTraffic(context.Background(), pid); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	buckets := repo.traffic[pid]
	if len(buckets) != 1 {
		t.Fatalf("expected one bucket, got %d", len(buckets))
	}
	if buckets[0].Count != 3 {
		t.Fatalf("expected count 3, got %d", buckets[0].Count)
	}
	if !buckets[0].Date.Equal(dateOnly(now)) {
		t.Fatalf("expected today's date, got %v", buckets[0].Date)
	}
}

func TestRecordForUnknownProperty(t *testing.T) {
	svc, _ := newAnalyticsService()

	if err := svc.RecordTraffic(context.Background(), uuid.New()); !errors.Is(err, property.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
	if err := svc.RecordEnquiry(context.Background(), uuid.New()); !errors.Is(err, property.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestTrafficSummaryComparesWindows(t *testing.T) {
	pid := uuid.New()
	svc, repo := newAnalyticsService(pid)
	now := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	repo.traffic[pid] = []DailyCount{
		{PropertyID: pid, Date: dateOnly(now), Count: 6},
		{PropertyID: pid, Date: dateOnly(now.AddDate(0, 0, -1)), Count: 3},
	}

	s, err := svc.TrafficSummary(context.Background(), pid, WindowToday)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Current != 6 || s.Previous != 3 {
		t.Fatalf("expected 6/3, got %d/%d", s.Current, s.Previous)
	}
	if s.ChangePercent == nil || *s.ChangePercent != 100 {
		t.Fatalf("expected 100%%, got %v", s.ChangePercent)
	}
}

func TestEnquirySummaryUnknownProperty(t *testing.T) {
	svc, _ := newAnalyticsService()

	if _, err := svc.EnquirySummary(context.Background(), uuid.New(), WindowAll); !errors.Is(err, property.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}
