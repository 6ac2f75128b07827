package directory

import (
	"time"

	"github.com/google/uuid"
)

type Listing struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OwnerID      uuid.UUID `json:"owner_id" db:"owner_id"`
	BusinessName string    `json:"business_name" db:"business_name"`
	Category     string    `json:"category" db:"category"`
	Description  string    `json:"description,omitempty" db:"description"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	Website      string    `json:"website,omitempty" db:"website"`
	City         string    `json:"city,omitempty" db:"city"`
	ImageURL     string    `json:"image_url,omitempty" db:"image_url"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type CreateListingRequest struct {
	BusinessName string `json:"business_name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Description  string `json:"description,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
	City         string `json:"city,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}
