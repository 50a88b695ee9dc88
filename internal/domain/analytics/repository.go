package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository defines analytics data access interface. Traffic and enquiry
// counters live in separate day-bucket tables; an increment upserts the
// bucket for the given date atomically.
type Repository interface {
	IncrementTraffic(ctx context.Context, propertyID uuid.UUID, date time.Time) error
	IncrementEnquiry(ctx context.Context, propertyID uuid.UUID, date time.Time) error
	ListTraffic(ctx context.Context, propertyID uuid.UUID) ([]DailyCount, error)
	ListEnquiries(ctx context.Context, propertyID uuid.UUID) ([]DailyCount, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new analytics repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) increment(ctx context.Context, table string, propertyID uuid.UUID, date time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// table is one of the two constants below, never caller input
	query := fmt.Sprintf(`
		INSERT INTO %s (property_id, date, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (property_id, date)
		DO UPDATE SET count = %s.count + 1
	`, table, table)

	if _, err := r.db.ExecContext(ctx, query, propertyID, dateOnly(date)); err != nil {
		return fmt.Errorf("analytics repository increment %s: %w", table, err)
	}
	return nil
}

func (r *repository) list(ctx context.Context, table string, propertyID uuid.UUID) ([]DailyCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT property_id, date, count
		FROM %s
		WHERE property_id = $1
		ORDER BY date ASC
	`, table)

	entries := []DailyCount{}
	if err := r.db.SelectContext(ctx, &entries, query, propertyID); err != nil {
		return nil, fmt.Errorf("analytics repository list %s: %w", table, err)
	}
	return entries, nil
}

const (
	trafficTable = "traffic_daily"
	enquiryTable = "enquiry_daily"
)

func (r *repository) IncrementTraffic(ctx context.Context, propertyID uuid.UUID, date time.Time) error {
	return r.increment(ctx, trafficTable, propertyID, date)
}

func (r *repository) IncrementEnquiry(ctx context.Context, propertyID uuid.UUID, date time.Time) error {
	return r.increment(ctx, enquiryTable, propertyID, date)
}

func (r *repository) ListTraffic(ctx context.Context, propertyID uuid.UUID) ([]DailyCount, error) {
	return r.list(ctx, trafficTable, propertyID)
}

func (r *repository) ListEnquiries(ctx context.Context, propertyID uuid.UUID) ([]DailyCount, error) {
	return r.list(ctx, enquiryTable, propertyID)
}
