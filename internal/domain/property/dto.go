package property

import (
	"time"

	"github.com/google/uuid"
)

// CreatePropertyRequest for POST /property
type CreatePropertyRequest struct {
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Description  string   `json:"description" validate:"required,max=5000"`
	PropertyType string   `json:"property_type" validate:"required,max=50"`
	City         string   `json:"city" validate:"required,max=100"`
	Address      string   `json:"address" validate:"omitempty,max=300"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
}

// UpdatePropertyRequest for PUT /property/{id}; nil fields are left unchanged
type UpdatePropertyRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	PropertyType *string  `json:"property_type" validate:"omitempty,max=50"`
	City         *string  `json:"city" validate:"omitempty,max=100"`
	Address      *string  `json:"address" validate:"omitempty,max=300"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Status       *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// PropertyResponse represents a listing in API responses
type PropertyResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PropertyType string    `json:"property_type"`
	City         string    `json:"city"`
	Address      string    `json:"address,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

// ListResponse wraps a page of listings
type ListResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

// NewPropertyResponse creates PropertyResponse from an entity
func NewPropertyResponse(p *Property) PropertyResponse {
	resp := PropertyResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		City:         p.City,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Address.Valid {
		resp.Address = p.Address.String
	}
	if p.Price.Valid {
		price := p.Price.Float64
		resp.Price = &price
	}
	return resp
}
