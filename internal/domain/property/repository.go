package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Filter represents listing filters
type Filter struct {
	City         *string
	PropertyType *string
	OwnerID      *uuid.UUID
	Status       *Status
}

// Pagination for listing
type Pagination struct {
	Page  int
	Limit int
}

// Repository defines property data access interface
type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Property, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new property repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const propertyColumns = `
	id, owner_id, title, description, property_type, city, address, price,
	status, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, p *Property) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO properties (id, owner_id, title, description, property_type,
		                        city, address, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.Title, p.Description, p.PropertyType,
		p.City, p.Address, p.Price, p.Status,
	)
	if err != nil {
		return fmt.Errorf("property repository create: %w", err)
	}

	return nil
}

// GetByID returns property by ID, or nil if not found
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	var p Property
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		UPDATE properties
		SET title = $2, description = $3, property_type = $4, city = $5,
		    address = $6, price = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.PropertyType, p.City,
		p.Address, p.Price, p.Status,
	)
	if err != nil {
		return fmt.Errorf("property repository update: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrPropertyNotFound
	}

	return nil
}

// Delete removes the property. Traffic and enquiry counters go with it
// through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("property repository delete: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrPropertyNotFound
	}

	return nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Property, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.City != nil {
			conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", argPos))
			args = append(args, *filter.City)
			argPos++
		}
		if filter.PropertyType != nil {
			conditions = append(conditions, fmt.Sprintf("property_type = $%d", argPos))
			args = append(args, *filter.PropertyType)
			argPos++
		}
		if filter.OwnerID != nil {
			conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argPos))
			args = append(args, *filter.OwnerID)
			argPos++
		}
		if filter.Status != nil {
			conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
			args = append(args, *filter.Status)
			argPos++
		}
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM properties`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("property repository count: %w", err)
	}

	page, limit := 1, 20
	if pagination != nil {
		if pagination.Page > 0 {
			page = pagination.Page
		}
		if pagination.Limit > 0 {
			limit = pagination.Limit
		}
	}
	offset := (page - 1) * limit

	query := `SELECT ` + propertyColumns + ` FROM properties` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	properties := []*Property{}
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, 0, fmt.Errorf("property repository list: %w", err)
	}

	return properties, total, nil
}
