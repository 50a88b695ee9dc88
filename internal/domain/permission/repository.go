package permission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

// Repository provides role and permission-group storage
type Repository interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	GetRoleByID(ctx context.Context, id uuid.UUID) (*Role, error)

	ListGroups(ctx context.Context) ([]Group, error)
	GetGroupByTitle(ctx context.Context, title string) (*Group, error)
	// ListGroupsByRole returns all groups whose roles array contains roleID,
	// each with its permissions loaded in insertion order.
	ListGroupsByRole(ctx context.Context, roleID uuid.UUID) ([]Group, error)
	// UpsertGroup creates a group, or merges into an existing one with the
	// same title: roles are unioned, submitted permissions are appended.
	UpsertGroup(ctx context.Context, title string, roles []string, perms []GroupPermission) (*Group, error)

	// TitlesForIDs maps permission subdocument ids to their titles
	TitlesForIDs(ctx context.Context, ids []string) ([]string, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new permission repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRoles(ctx context.Context) ([]Role, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var roles []Role
	err := r.db.SelectContext(ctx2, &roles, `SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list roles: %v", ErrInternal, err)
	}
	return roles, nil
}

func (r *repository) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var role Role
	err := r.db.GetContext(ctx2, &role, `SELECT id, name, created_at FROM roles WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get role by name: %v", ErrInternal, err)
	}
	return &role, nil
}

func (r *repository) GetRoleByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var role Role
	err := r.db.GetContext(ctx2, &role, `SELECT id, name, created_at FROM roles WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get role by id: %v", ErrInternal, err)
	}
	return &role, nil
}

func (r *repository) ListGroups(ctx context.Context) ([]Group, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var groups []Group
	err := r.db.SelectContext(ctx2, &groups, `
		SELECT id, title, roles, created_at FROM permission_groups ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list groups: %v", ErrInternal, err)
	}

	for i := range groups {
		if err := r.loadPermissions(ctx2, &groups[i]); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *repository) GetGroupByTitle(ctx context.Context, title string) (*Group, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var group Group
	err := r.db.GetContext(ctx2, &group, `
		SELECT id, title, roles, created_at FROM permission_groups WHERE title = $1
	`, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get group by title: %v", ErrInternal, err)
	}

	if err := r.loadPermissions(ctx2, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) ListGroupsByRole(ctx context.Context, roleID uuid.UUID) ([]Group, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Full scan over permission_groups; group counts are small.
	var groups []Group
	err := r.db.SelectContext(ctx2, &groups, `
		SELECT id, title, roles, created_at
		FROM permission_groups
		WHERE $1 = ANY(roles)
		ORDER BY created_at
	`, roleID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: list groups by role: %v", ErrInternal, err)
	}

	for i := range groups {
		if err := r.loadPermissions(ctx2, &groups[i]); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *repository) UpsertGroup(ctx context.Context, title string, roles []string, perms []GroupPermission) (*Group, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx: %v", ErrInternal, err)
	}
	defer tx.Rollback()

	// Merge-by-title: roles are unioned by the array expression, permissions
	// are appended below. Existing permissions are never rewritten.
	var groupID uuid.UUID
	err = tx.QueryRowContext(ctx2, `
		INSERT INTO permission_groups (id, title, roles)
		VALUES ($1, $2, $3)
		ON CONFLICT (title)
		DO UPDATE SET roles = (
			SELECT ARRAY(SELECT DISTINCT unnest(permission_groups.roles || EXCLUDED.roles))
		)
		RETURNING id
	`, uuid.New(), title, pq.Array(roles)).Scan(&groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: upsert group: %v", ErrInternal, err)
	}

	for i := range perms {
		perms[i].ID = uuid.New()
		perms[i].GroupID = groupID
		_, err = tx.ExecContext(ctx2, `
			INSERT INTO group_permissions (id, group_id, title, description)
			VALUES ($1, $2, $3, $4)
		`, perms[i].ID, groupID, perms[i].Title, perms[i].Description)
		if err != nil {
			return nil, fmt.Errorf("%w: insert group permission: %v", ErrInternal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit tx: %v", ErrInternal, err)
	}

	return r.GetGroupByTitle(ctx, title)
}

func (r *repository) TitlesForIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var titles []string
	err := r.db.SelectContext(ctx2, &titles, `
		SELECT title FROM group_permissions WHERE id = ANY($1::uuid[])
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: titles for ids: %v", ErrInternal, err)
	}
	return titles, nil
}

// loadPermissions fills Group.Permissions in insertion order; flattening
// depends on that order being stable. seq is a bigserial the inserts never
// set, so appended permissions always sort after existing ones.
func (r *repository) loadPermissions(ctx context.Context, g *Group) error {
	err := r.db.SelectContext(ctx, &g.Permissions, `
		SELECT id, group_id, title, description
		FROM group_permissions
		WHERE group_id = $1
		ORDER BY seq
	`, g.ID)
	if err != nil {
		return fmt.Errorf("%w: load group permissions: %v", ErrInternal, err)
	}
	return nil
}
