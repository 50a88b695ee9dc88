package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository provides profile sub-document storage
type Repository interface {
	GetBio(ctx context.Context, userID uuid.UUID) (*Bio, error)
	UpsertBio(ctx context.Context, bio *Bio) error

	GetLocation(ctx context.Context, userID uuid.UUID) (*Location, error)
	UpsertLocation(ctx context.Context, loc *Location) error

	ListSkills(ctx context.Context, userID uuid.UUID) ([]Skill, error)
	CountSkills(ctx context.Context, userID uuid.UUID) (int, error)
	AddSkill(ctx context.Context, skill *Skill) error
	DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error

	ListExperiences(ctx context.Context, userID uuid.UUID) ([]Experience, error)
	CountExperiences(ctx context.Context, userID uuid.UUID) (int, error)
	AddExperience(ctx context.Context, exp *Experience) error
	DeleteExperience(ctx context.Context, userID, expID uuid.UUID) error

	GetMedia(ctx context.Context, userID uuid.UUID) (*Media, error)
	SetAvatar(ctx context.Context, userID uuid.UUID, url string) error
	SetBanner(ctx context.Context, userID uuid.UUID, url string) error
	SetResume(ctx context.Context, userID uuid.UUID, url string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new profile repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBio(ctx context.Context, userID uuid.UUID) (*Bio, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var bio Bio
	err := r.db.GetContext(ctx2, &bio, `
		SELECT user_id, about, heading, updated_at FROM profile_bios WHERE user_id = $1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get bio: %v", ErrInternal, err)
	}
	return &bio, nil
}

func (r *repository) UpsertBio(ctx context.Context, bio *Bio) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO profile_bios (user_id, about, heading)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET about = EXCLUDED.about, heading = EXCLUDED.heading, updated_at = NOW()
	`, bio.UserID, bio.About, bio.Heading)
	if err != nil {
		return fmt.Errorf("%w: upsert bio: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) GetLocation(ctx context.Context, userID uuid.UUID) (*Location, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var loc Location
	err := r.db.GetContext(ctx2, &loc, `
		SELECT user_id, address, pincode, city, state, country, updated_at
		FROM profile_locations WHERE user_id = $1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get location: %v", ErrInternal, err)
	}
	return &loc, nil
}

func (r *repository) UpsertLocation(ctx context.Context, loc *Location) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO profile_locations (user_id, address, pincode, city, state, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET address = EXCLUDED.address, pincode = EXCLUDED.pincode,
		              city = EXCLUDED.city, state = EXCLUDED.state,
		              country = EXCLUDED.country, updated_at = NOW()
	`, loc.UserID, loc.Address, loc.Pincode, loc.City, loc.State, loc.Country)
	if err != nil {
		return fmt.Errorf("%w: upsert location: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) ListSkills(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var skills []Skill
	err := r.db.SelectContext(ctx2, &skills, `
		SELECT id, user_id, name, created_at FROM profile_skills
		WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list skills: %v", ErrInternal, err)
	}
	return skills, nil
}

func (r *repository) CountSkills(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.db.GetContext(ctx2, &count, `
		SELECT COUNT(*) FROM profile_skills WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: count skills: %v", ErrInternal, err)
	}
	return count, nil
}

func (r *repository) AddSkill(ctx context.Context, skill *Skill) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx2, `
		INSERT INTO profile_skills (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, skill.ID, skill.UserID, skill.Name).Scan(&skill.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: add skill: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx2, `
		DELETE FROM profile_skills WHERE id = $1 AND user_id = $2
	`, skillID, userID)
	if err != nil {
		return fmt.Errorf("%w: delete skill: %v", ErrInternal, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *repository) ListExperiences(ctx context.Context, userID uuid.UUID) ([]Experience, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exps []Experience
	err := r.db.SelectContext(ctx2, &exps, `
		SELECT id, user_id, title, company, year, description, created_at
		FROM profile_experiences
		WHERE user_id = $1 ORDER BY year DESC NULLS LAST, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list experiences: %v", ErrInternal, err)
	}
	return exps, nil
}

func (r *repository) CountExperiences(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.db.GetContext(ctx2, &count, `
		SELECT COUNT(*) FROM profile_experiences WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: count experiences: %v", ErrInternal, err)
	}
	return count, nil
}

func (r *repository) AddExperience(ctx context.Context, exp *Experience) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx2, `
		INSERT INTO profile_experiences (id, user_id, title, company, year, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, exp.ID, exp.UserID, exp.Title, exp.Company, exp.Year, exp.Description).Scan(&exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: add experience: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) DeleteExperience(ctx context.Context, userID, expID uuid.UUID) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx2, `
		DELETE FROM profile_experiences WHERE id = $1 AND user_id = $2
	`, expID, userID)
	if err != nil {
		return fmt.Errorf("%w: delete experience: %v", ErrInternal, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrExperienceNotFound
	}
	return nil
}

func (r *repository) GetMedia(ctx context.Context, userID uuid.UUID) (*Media, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var media Media
	err := r.db.GetContext(ctx2, &media, `
		SELECT user_id, avatar_url, banner_url, resume_url, updated_at
		FROM profile_media WHERE user_id = $1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get media: %v", ErrInternal, err)
	}
	return &media, nil
}

func (r *repository) SetAvatar(ctx context.Context, userID uuid.UUID, url string) error {
	return r.setMediaField(ctx, userID, "avatar_url", url)
}

func (r *repository) SetBanner(ctx context.Context, userID uuid.UUID, url string) error {
	return r.setMediaField(ctx, userID, "banner_url", url)
}

func (r *repository) SetResume(ctx context.Context, userID uuid.UUID, url string) error {
	return r.setMediaField(ctx, userID, "resume_url", url)
}

func (r *repository) setMediaField(ctx context.Context, userID uuid.UUID, column, url string) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// column comes from the three callers above, never from input
	query := fmt.Sprintf(`
		INSERT INTO profile_media (user_id, %s)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (user_id)
		DO UPDATE SET %s = NULLIF($2, ''), updated_at = NOW()
	`, column, column)

	_, err := r.db.ExecContext(ctx2, query, userID, url)
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrInternal, column, err)
	}
	return nil
}
