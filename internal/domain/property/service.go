package property

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Service handles property business logic
type Service struct {
	repo Repository
}

// NewService creates property service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new listing owned by the given user
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreatePropertyRequest) (*Property, error) {
	now := time.Now()
	p := &Property{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		City:         req.City,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Address != "" {
		p.Address = sql.NullString{String: req.Address, Valid: true}
	}
	if req.Price != nil {
		p.Price = sql.NullFloat64{Float64: *req.Price, Valid: true}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a listing by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}
	return p, nil
}

// Update applies the non-nil request fields. Only the owner or an admin
// may update a listing.
func (s *Service) Update(ctx context.Context, id, actorID uuid.UUID, isAdmin bool, req *UpdatePropertyRequest) (*Property, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actorID && !isAdmin {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.PropertyType != nil {
		p.PropertyType = *req.PropertyType
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Address != nil {
		p.Address = sql.NullString{String: *req.Address, Valid: *req.Address != ""}
	}
	if req.Price != nil {
		p.Price = sql.NullFloat64{Float64: *req.Price, Valid: true}
	}
	if req.Status != nil {
		p.Status = Status(*req.Status)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a listing. Only the owner or an admin may delete it.
func (s *Service) Delete(ctx context.Context, id, actorID uuid.UUID, isAdmin bool) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != actorID && !isAdmin {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

// List returns a page of listings matching the filter
func (s *Service) List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Property, int, error) {
	return s.repo.List(ctx, filter, pagination)
}
