package city

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type City struct {
	ID        uuid.UUID
	Name      string
	StateID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type CreateCityRequest struct {
	Name    string `json:"name" binding:"required"`
	StateID string `json:"stateId" binding:"required"`
}

func (r CreateCityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.StateID, validation.Required, is.UUID),
	)
}

type UpdateCityRequest struct {
	Name    string `json:"name"`
	StateID string `json:"stateId"`
}

func (r UpdateCityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.When(r.Name != "", validation.Length(1, 255))),
		validation.Field(&r.StateID, validation.When(r.StateID != "", is.UUID)),
	)
}

type CityResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StateID   uuid.UUID `json:"stateId"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *City) ToResponse() CityResponse {
	return CityResponse{
		ID:        c.ID,
		Name:      c.Name,
		StateID:   c.StateID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
