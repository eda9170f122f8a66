package presentation

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Presentation describes how a product is packaged and sold, e.g.
// "Box of 20 tablets" with quantity 20 and measurement unit "tablet".
type Presentation struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Quantity        int
	MeasurementUnit string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

type CreatePresentationRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Quantity        int    `json:"quantity" binding:"required"`
	MeasurementUnit string `json:"measurementUnit" binding:"required"`
}

func (r CreatePresentationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.MeasurementUnit, validation.Required, validation.Length(1, 50)),
	)
}

type UpdatePresentationRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Quantity        *int   `json:"quantity"`
	MeasurementUnit string `json:"measurementUnit"`
}

func (r UpdatePresentationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.When(r.Name != "", validation.Length(1, 255))),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Quantity, validation.Min(1)),
		validation.Field(&r.MeasurementUnit, validation.When(r.MeasurementUnit != "", validation.Length(1, 50))),
	)
}

type PresentationResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Quantity        int       `json:"quantity"`
	MeasurementUnit string    `json:"measurementUnit"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *Presentation) ToResponse() PresentationResponse {
	return PresentationResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Quantity:        p.Quantity,
		MeasurementUnit: p.MeasurementUnit,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
