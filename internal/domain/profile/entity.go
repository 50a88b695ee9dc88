package profile

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Bio is the free-text part of a profile
type Bio struct {
	UserID    uuid.UUID      `db:"user_id" json:"user_id"`
	About     sql.NullString `db:"about" json:"about"`
	Heading   sql.NullString `db:"heading" json:"heading"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// Location holds the five independently scored address fields
type Location struct {
	UserID    uuid.UUID      `db:"user_id" json:"user_id"`
	Address   sql.NullString `db:"address" json:"address"`
	Pincode   sql.NullString `db:"pincode" json:"pincode"`
	City      sql.NullString `db:"city" json:"city"`
	State     sql.NullString `db:"state" json:"state"`
	Country   sql.NullString `db:"country" json:"country"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// Skill is one named skill on a profile
type Skill struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Experience is one work-history entry
type Experience struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	UserID      uuid.UUID      `db:"user_id" json:"user_id"`
	Title       string         `db:"title" json:"title"`
	Company     sql.NullString `db:"company" json:"company"`
	Year        sql.NullInt32  `db:"year" json:"year"`
	Description sql.NullString `db:"description" json:"description"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Media holds the profile's attached file URLs. Uploading itself is handled
// by an external service; only the resulting URLs land here.
type Media struct {
	UserID    uuid.UUID      `db:"user_id" json:"user_id"`
	AvatarURL sql.NullString `db:"avatar_url" json:"avatar_url"`
	BannerURL sql.NullString `db:"banner_url" json:"banner_url"`
	ResumeURL sql.NullString `db:"resume_url" json:"resume_url"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
