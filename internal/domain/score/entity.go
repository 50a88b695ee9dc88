package score

import "time"

// ProfileScore is one row per user: an accumulated completeness score.
// It is only ever mutated by addition, never recomputed from scratch.
// The row is keyed by the user's integer unique_id, not the uuid.
type ProfileScore struct {
	UniqueID  int64     `db:"unique_id" json:"unique_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Score     int       `db:"score" json:"score"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Deltas awarded or deducted when a profile field transitions between
// absent and present. Callers are responsible for detecting the
// transition; the accumulator trusts the delta it is given.
const (
	DeltaSignupBatch   = 8 // username, name, email, mobile_no: +2 each at registration
	DeltaContactField  = 2 // alt_mobile_no
	DeltaBioField      = 2 // about, heading: each
	DeltaLocationField = 2 // address, pincode, city, state, country: each
	DeltaResume        = 20
	DeltaSkills        = 6
	DeltaExperience    = 20
	DeltaAvatar        = 2
	DeltaBanner        = 2
)
