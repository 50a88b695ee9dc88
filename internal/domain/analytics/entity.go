package analytics

import (
	"time"

	"github.com/google/uuid"
)

// DailyCount is one day-bucket of a per-property counter. Dates are stored
// as absolute calendar dates, so the 5th of March and the 5th of April are
// distinct buckets.
type DailyCount struct {
	PropertyID uuid.UUID `db:"property_id"`
	Date       time.Time `db:"date"`
	Count      int       `db:"count"`
}

// Window selects the comparison period for a summary
type Window string

const (
	WindowToday     Window = "today"
	WindowLast7     Window = "last7"
	WindowLast30    Window = "last30"
	WindowSixMonths Window = "6months"
	WindowOneYear   Window = "1year"
	WindowAll       Window = "all"
)

// Summary compares the current window against the one before it.
// ChangePercent is nil when the previous window is empty.
type Summary struct {
	Window        Window   `json:"window"`
	Current       int      `json:"current"`
	Previous      int      `json:"previous"`
	ChangePercent *float64 `json:"change_percent"`
}
