package property

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents listing status
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Property represents an institute listing
type Property struct {
	ID      uuid.UUID `db:"id"`
	OwnerID uuid.UUID `db:"owner_id"`

	Title        string          `db:"title"`
	Description  string          `db:"description"`
	PropertyType string          `db:"property_type"`
	City         string          `db:"city"`
	Address      sql.NullString  `db:"address"`
	Price        sql.NullFloat64 `db:"price"`

	Status Status `db:"status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
