package profile

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/domain/score"
	"github.com/instiprop/instiprop-api/internal/domain/user"
)

// ScoreKeeper is the slice of the score service the profile service needs
type ScoreKeeper interface {
	Add(ctx context.Context, userID int64, delta int) (int, error)
}

// UserStore is the slice of the user repository the profile service needs
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateAltMobile(ctx context.Context, id uuid.UUID, altMobile string) error
}

// Service owns the profile sub-documents and the scoring call discipline:
// it reads the current state of a field, writes the new state, and sends a
// delta to the accumulator only when the field crossed between absent and
// present. The accumulator never sees the field itself.
type Service struct {
	repo   Repository
	users  UserStore
	scores ScoreKeeper
}

// NewService creates profile service
func NewService(repo Repository, users UserStore, scores ScoreKeeper) *Service {
	return &Service{repo: repo, users: users, scores: scores}
}

// transitionDelta maps an absent/present transition to a signed delta
func transitionDelta(wasSet, isSet bool, award int) int {
	switch {
	case !wasSet && isSet:
		return award
	case wasSet && !isSet:
		return -award
	default:
		return 0
	}
}

// applyScore sends a delta to the accumulator. The profile write has
// already landed at this point, so a scoring failure is logged rather than
// turned into a request failure.
func (s *Service) applyScore(ctx context.Context, uniqueID int64, delta int) {
	if delta == 0 {
		return
	}
	if _, err := s.scores.Add(ctx, uniqueID, delta); err != nil {
		log.Warn().Err(err).
			Int64("user_id", uniqueID).
			Int("delta", delta).
			Msg("Failed to apply profile score delta")
	}
}

// GetBio returns the user's bio, or nil when none has been written
func (s *Service) GetBio(ctx context.Context, userID uuid.UUID) (*Bio, error) {
	return s.repo.GetBio(ctx, userID)
}

// UpsertBio writes the bio and scores the about/heading transitions
func (s *Service) UpsertBio(ctx context.Context, userID uuid.UUID, uniqueID int64, about, heading string) (*Bio, error) {
	old, err := s.repo.GetBio(ctx, userID)
	if err != nil {
		return nil, err
	}

	wasAbout, wasHeading := false, false
	if old != nil {
		wasAbout = old.About.Valid && old.About.String != ""
		wasHeading = old.Heading.Valid && old.Heading.String != ""
	}

	bio := &Bio{
		UserID:  userID,
		About:   sql.NullString{String: about, Valid: about != ""},
		Heading: sql.NullString{String: heading, Valid: heading != ""},
	}
	if err := s.repo.UpsertBio(ctx, bio); err != nil {
		return nil, err
	}

	delta := transitionDelta(wasAbout, about != "", score.DeltaBioField) +
		transitionDelta(wasHeading, heading != "", score.DeltaBioField)
	s.applyScore(ctx, uniqueID, delta)

	return bio, nil
}

// UpsertLocation writes the location; each of the five fields scores its
// own transition independently
func (s *Service) UpsertLocation(ctx context.Context, userID uuid.UUID, uniqueID int64, address, pincode, city, state, country string) (*Location, error) {
	old, err := s.repo.GetLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	wasSet := func(v sql.NullString) bool { return v.Valid && v.String != "" }
	var wasAddress, wasPincode, wasCity, wasState, wasCountry bool
	if old != nil {
		wasAddress = wasSet(old.Address)
		wasPincode = wasSet(old.Pincode)
		wasCity = wasSet(old.City)
		wasState = wasSet(old.State)
		wasCountry = wasSet(old.Country)
	}

	loc := &Location{
		UserID:  userID,
		Address: sql.NullString{String: address, Valid: address != ""},
		Pincode: sql.NullString{String: pincode, Valid: pincode != ""},
		City:    sql.NullString{String: city, Valid: city != ""},
		State:   sql.NullString{String: state, Valid: state != ""},
		Country: sql.NullString{String: country, Valid: country != ""},
	}
	if err := s.repo.UpsertLocation(ctx, loc); err != nil {
		return nil, err
	}

	delta := transitionDelta(wasAddress, address != "", score.DeltaLocationField) +
		transitionDelta(wasPincode, pincode != "", score.DeltaLocationField) +
		transitionDelta(wasCity, city != "", score.DeltaLocationField) +
		transitionDelta(wasState, state != "", score.DeltaLocationField) +
		transitionDelta(wasCountry, country != "", score.DeltaLocationField)
	s.applyScore(ctx, uniqueID, delta)

	return loc, nil
}

// AddSkill adds a skill; the first skill on a profile awards the skills
// delta, later ones do not
func (s *Service) AddSkill(ctx context.Context, userID uuid.UUID, uniqueID int64, name string) (*Skill, error) {
	count, err := s.repo.CountSkills(ctx, userID)
	if err != nil {
		return nil, err
	}

	skill := &Skill{ID: uuid.New(), UserID: userID, Name: name}
	if err := s.repo.AddSkill(ctx, skill); err != nil {
		return nil, err
	}

	if count == 0 {
		s.applyScore(ctx, uniqueID, score.DeltaSkills)
	}

	return skill, nil
}

// RemoveSkill deletes a skill; removing the last one deducts the skills delta
func (s *Service) RemoveSkill(ctx context.Context, userID uuid.UUID, uniqueID int64, skillID uuid.UUID) error {
	if err := s.repo.DeleteSkill(ctx, userID, skillID); err != nil {
		return err
	}

	remaining, err := s.repo.CountSkills(ctx, userID)
	if err != nil {
		return err
	}
	if remaining == 0 {
		s.applyScore(ctx, uniqueID, -score.DeltaSkills)
	}

	return nil
}

// ListSkills returns the user's skills
func (s *Service) ListSkills(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	return s.repo.ListSkills(ctx, userID)
}

// AddExperience adds a work-history entry; only the first entry awards the
// experience delta, and deleting entries never deducts it
func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, uniqueID int64, exp *Experience) error {
	count, err := s.repo.CountExperiences(ctx, userID)
	if err != nil {
		return err
	}

	exp.ID = uuid.New()
	exp.UserID = userID
	if err := s.repo.AddExperience(ctx, exp); err != nil {
		return err
	}

	if count == 0 {
		s.applyScore(ctx, uniqueID, score.DeltaExperience)
	}

	return nil
}

// RemoveExperience deletes a work-history entry
func (s *Service) RemoveExperience(ctx context.Context, userID uuid.UUID, expID uuid.UUID) error {
	return s.repo.DeleteExperience(ctx, userID, expID)
}

// ListExperiences returns the user's work history
func (s *Service) ListExperiences(ctx context.Context, userID uuid.UUID) ([]Experience, error) {
	return s.repo.ListExperiences(ctx, userID)
}

// GetMedia returns the user's media URLs
func (s *Service) GetMedia(ctx context.Context, userID uuid.UUID) (*Media, error) {
	return s.repo.GetMedia(ctx, userID)
}

// SetAvatar sets or clears the avatar URL; setting awards, clearing
// deducts, replacing changes nothing
func (s *Service) SetAvatar(ctx context.Context, userID uuid.UUID, uniqueID int64, url string) error {
	was, err := s.mediaFieldSet(ctx, userID, func(m *Media) sql.NullString { return m.AvatarURL })
	if err != nil {
		return err
	}

	if err := s.repo.SetAvatar(ctx, userID, url); err != nil {
		return err
	}

	s.applyScore(ctx, uniqueID, transitionDelta(was, url != "", score.DeltaAvatar))
	return nil
}

// SetBanner sets or clears the banner URL, scoring like SetAvatar
func (s *Service) SetBanner(ctx context.Context, userID uuid.UUID, uniqueID int64, url string) error {
	was, err := s.mediaFieldSet(ctx, userID, func(m *Media) sql.NullString { return m.BannerURL })
	if err != nil {
		return err
	}

	if err := s.repo.SetBanner(ctx, userID, url); err != nil {
		return err
	}

	s.applyScore(ctx, uniqueID, transitionDelta(was, url != "", score.DeltaBanner))
	return nil
}

// SetResume sets the resume URL. Only the first upload awards the resume
// delta; clearing or replacing the resume never deducts it.
func (s *Service) SetResume(ctx context.Context, userID uuid.UUID, uniqueID int64, url string) error {
	was, err := s.mediaFieldSet(ctx, userID, func(m *Media) sql.NullString { return m.ResumeURL })
	if err != nil {
		return err
	}

	if err := s.repo.SetResume(ctx, userID, url); err != nil {
		return err
	}

	if !was && url != "" {
		s.applyScore(ctx, uniqueID, score.DeltaResume)
	}
	return nil
}

// SetAltMobile sets the alternate mobile number. The first set awards the
// contact delta; later edits and clears change nothing.
func (s *Service) SetAltMobile(ctx context.Context, userID uuid.UUID, uniqueID int64, altMobile string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}

	was := u.AltMobileNo.Valid && u.AltMobileNo.String != ""

	if err := s.users.UpdateAltMobile(ctx, userID, altMobile); err != nil {
		return err
	}

	if !was && altMobile != "" {
		s.applyScore(ctx, uniqueID, score.DeltaContactField)
	}
	return nil
}

func (s *Service) mediaFieldSet(ctx context.Context, userID uuid.UUID, field func(*Media) sql.NullString) (bool, error) {
	media, err := s.repo.GetMedia(ctx, userID)
	if err != nil {
		return false, err
	}
	if media == nil {
		return false, nil
	}
	v := field(media)
	return v.Valid && v.String != "", nil
}
