package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/instiprop/instiprop-api/internal/domain/property"
)

// PropertyStore defines the property lookups needed by analytics
type PropertyStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

// Service handles per-property traffic and enquiry analytics
type Service struct {
	repo       Repository
	properties PropertyStore
	now        func() time.Time
}

// NewService creates analytics service
func NewService(repo Repository, properties PropertyStore) *Service {
	return &Service{repo: repo, properties: properties, now: time.Now}
}

func (s *Service) checkProperty(ctx context.Context, propertyID uuid.UUID) error {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p == nil {
		return property.ErrPropertyNotFound
	}
	return nil
}

// RecordTraffic bumps today's traffic bucket for the property
func (s *Service) RecordTraffic(ctx context.Context, propertyID uuid.UUID) error {
	if err := s.checkProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.repo.IncrementTraffic(ctx, propertyID, s.now())
}

// RecordEnquiry bumps today's enquiry bucket for the property
func (s *Service) RecordEnquiry(ctx context.Context, propertyID uuid.UUID) error {
	if err := s.checkProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.repo.IncrementEnquiry(ctx, propertyID, s.now())
}

// ParseWindow validates a window query value; empty defaults to WindowAll
func ParseWindow(raw string) (Window, error) {
	if raw == "" {
		return WindowAll, nil
	}
	switch w := Window(raw); w {
	case WindowToday, WindowLast7, WindowLast30, WindowSixMonths, WindowOneYear, WindowAll:
		return w, nil
	default:
		return "", ErrInvalidWindow
	}
}

// TrafficSummary compares the property's traffic over the window against
// the window before it
func (s *Service) TrafficSummary(ctx context.Context, propertyID uuid.UUID, window Window) (*Summary, error) {
	if err := s.checkProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListTraffic(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(MergeDaily(entries), window, s.now())
	return &summary, nil
}

// EnquirySummary compares the property's enquiries over the window against
// the window before it
func (s *Service) EnquirySummary(ctx context.Context, propertyID uuid.UUID, window Window) (*Summary, error) {
	if err := s.checkProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEnquiries(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(MergeDaily(entries), window, s.now())
	return &summary, nil
}
