package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUniqueID(ctx context.Context, uniqueID int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateDetails(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, id uuid.UUID, roleID uuid.UUID, rolePermissions []string) error
	SetPermissionOverrides(ctx context.Context, id uuid.UUID, overrides []string) error
	UpdateAltMobile(ctx context.Context, id uuid.UUID, altMobile string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	u.id, u.unique_id, u.username, u.name, u.email, u.mobile_no, u.alt_mobile_no,
	u.password_hash, u.role_id, r.name AS role_name, u.status, u.verified,
	u.role_permissions, u.permission_overrides, u.created_at, u.updated_at
`

// Create creates a new user; unique_id is assigned by the database
func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, username, name, email, mobile_no, password_hash,
		                   role_id, status, verified, role_permissions, permission_overrides)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING unique_id
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Username,
		user.Name,
		user.Email,
		user.MobileNo,
		user.PasswordHash,
		user.RoleID,
		user.Status,
		user.Verified,
		pq.Array([]string(user.RolePermissions)),
		pq.Array([]string(user.PermissionOverrides)),
	).Scan(&user.UniqueID)
	if err != nil {
		return fmt.Errorf("user repository create: %w", err)
	}

	return nil
}

// GetByID returns user by ID, or nil if not found
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByUniqueID returns user by integer unique id, or nil if not found
func (r *repository) GetByUniqueID(ctx context.Context, uniqueID int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.unique_id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, uniqueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByEmail returns user by email, or nil if not found
func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// UpdateDetails updates mutable account fields. Role and permission arrays
// have dedicated methods because they follow different write disciplines.
func (r *repository) UpdateDetails(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET username = $2, name = $3, email = $4, mobile_no = $5,
		    status = $6, verified = $7, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Name,
		user.Email,
		user.MobileNo,
		user.Status,
		user.Verified,
	)
	if err != nil {
		return fmt.Errorf("user repository update details: %w", err)
	}

	return nil
}

// UpdateRole sets the role and replaces the role-granted permission snapshot
// in one statement. Overrides are left untouched.
func (r *repository) UpdateRole(ctx context.Context, id uuid.UUID, roleID uuid.UUID, rolePermissions []string) error {
	query := `
		UPDATE users
		SET role_id = $2, role_permissions = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, roleID, pq.Array(rolePermissions))
	if err != nil {
		return fmt.Errorf("user repository update role: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetPermissionOverrides replaces the manual override list
func (r *repository) SetPermissionOverrides(ctx context.Context, id uuid.UUID, overrides []string) error {
	query := `UPDATE users SET permission_overrides = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, pq.Array(overrides))
	if err != nil {
		return fmt.Errorf("user repository set overrides: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateAltMobile sets the alternate mobile number
func (r *repository) UpdateAltMobile(ctx context.Context, id uuid.UUID, altMobile string) error {
	query := `UPDATE users SET alt_mobile_no = NULLIF($2, ''), updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, altMobile)
	if err != nil {
		return fmt.Errorf("user repository update alt mobile: %w", err)
	}

	return nil
}

// Delete removes the user. The score row and profile sub-documents go with
// it through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("user repository delete: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
