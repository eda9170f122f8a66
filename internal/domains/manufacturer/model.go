package manufacturer

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type Manufacturer struct {
	ID          uuid.UUID
	Name        string
	Description string
	CountryID   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type CreateManufacturerRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CountryID   string `json:"countryId" binding:"required"`
}

func (r CreateManufacturerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.CountryID, validation.Required, is.UUID),
	)
}

type UpdateManufacturerRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CountryID   string `json:"countryId"`
}

func (r UpdateManufacturerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.When(r.Name != "", validation.Length(1, 255))),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.CountryID, validation.When(r.CountryID != "", is.UUID)),
	)
}

type ManufacturerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CountryID   uuid.UUID `json:"countryId"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Manufacturer) ToResponse() ManufacturerResponse {
	return ManufacturerResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CountryID:   m.CountryID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
