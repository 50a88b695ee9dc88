package permission

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/domain/user"
)

const (
	cacheKeyPrefix = "perm:titles:"
	cacheTTL       = 5 * time.Minute
)

// Service resolves role-granted permissions and manages the two permission
// fields on users: the role snapshot and the manual overrides.
type Service struct {
	repo  Repository
	users user.Repository
	redis *redis.Client // nil if Redis disabled
}

// NewService creates permission service
func NewService(repo Repository, users user.Repository, redis *redis.Client) *Service {
	return &Service{repo: repo, users: users, redis: redis}
}

// ResolveForRole flattens the permission ids of every group whose roles
// array contains roleID, in group order. Duplicates are preserved: two
// groups granting same-named permissions contribute both ids.
func (s *Service) ResolveForRole(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	groups, err := s.repo.ListGroupsByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, g := range groups {
		for _, p := range g.Permissions {
			ids = append(ids, p.ID.String())
		}
	}
	return ids, nil
}

// PermissionsForRegistration returns the initial role-granted snapshot for a
// new user. Only the Property Manager role starts with permissions: the
// ones from the group titled "Property".
func (s *Service) PermissionsForRegistration(ctx context.Context, role *Role) ([]string, error) {
	if role.Name != RoleNamePropertyManager {
		return []string{}, nil
	}

	group, err := s.repo.GetGroupByTitle(ctx, PropertyGroupTitle)
	if err != nil {
		return nil, err
	}
	if group == nil {
		// No Property group configured yet; the manager starts bare.
		return []string{}, nil
	}

	ids := []string{}
	for _, p := range group.Permissions {
		ids = append(ids, p.ID.String())
	}
	return ids, nil
}

// UpdateUserRole changes the user's role and re-derives the role-granted
// snapshot from scratch, replacing the previous one entirely. Manual
// overrides are untouched and keep contributing to the effective set.
func (s *Service) UpdateUserRole(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) error {
	role, err := s.repo.GetRoleByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	resolved, err := s.ResolveForRole(ctx, roleID)
	if err != nil {
		return err
	}

	if err := s.users.UpdateRole(ctx, userID, roleID, resolved); err != nil {
		return err
	}

	s.invalidateCache(ctx, userID)
	return nil
}

// SetOverrides replaces the manual override list for a user
func (s *Service) SetOverrides(ctx context.Context, userID uuid.UUID, permissionIDs []string) error {
	if permissionIDs == nil {
		permissionIDs = []string{}
	}
	if err := s.users.SetPermissionOverrides(ctx, userID, permissionIDs); err != nil {
		return err
	}

	s.invalidateCache(ctx, userID)
	return nil
}

// EffectivePermissionTitles returns the titles of the user's effective
// permission set (role snapshot ∪ overrides). Cached in Redis; role changes
// and override writes invalidate the entry.
func (s *Service) EffectivePermissionTitles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if titles, ok := s.cachedTitles(ctx, userID); ok {
		return titles, nil
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	titles, err := s.repo.TitlesForIDs(ctx, u.EffectivePermissions())
	if err != nil {
		return nil, err
	}
	if titles == nil {
		titles = []string{}
	}

	s.cacheTitles(ctx, userID, titles)
	return titles, nil
}

// UserHasPermission reports whether the user's effective set contains a
// permission with the given title
func (s *Service) UserHasPermission(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	titles, err := s.EffectivePermissionTitles(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, t := range titles {
		if t == title {
			return true, nil
		}
	}
	return false, nil
}

// ListRoles returns all roles
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRoleByName returns a role by its name, or ErrRoleNotFound
func (s *Service) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	role, err := s.repo.GetRoleByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

// ListGroups returns all permission groups with their permissions
func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	return s.repo.ListGroups(ctx)
}

// CreateOrMergeGroup creates a permission group or merges into the existing
// group with the same title
func (s *Service) CreateOrMergeGroup(ctx context.Context, title string, roles []string, perms []GroupPermission) (*Group, error) {
	return s.repo.UpsertGroup(ctx, title, roles, perms)
}

func (s *Service) cachedTitles(ctx context.Context, userID uuid.UUID) ([]string, bool) {
	if s.redis == nil {
		return nil, false
	}

	data, err := s.redis.Get(ctx, cacheKeyPrefix+userID.String()).Bytes()
	if err != nil {
		return nil, false
	}

	var titles []string
	if err := json.Unmarshal(data, &titles); err != nil {
		return nil, false
	}
	return titles, true
}

func (s *Service) cacheTitles(ctx context.Context, userID uuid.UUID, titles []string) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(titles)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKeyPrefix+userID.String(), data, cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to cache permission titles")
	}
}

func (s *Service) invalidateCache(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, cacheKeyPrefix+userID.String()).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to invalidate permission cache")
	}
}
