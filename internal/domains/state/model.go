package state

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type State struct {
	ID        uuid.UUID
	Name      string
	CountryID uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type CreateStateRequest struct {
	Name      string `json:"name" binding:"required"`
	CountryID string `json:"countryId" binding:"required"`
}

func (r CreateStateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.CountryID, validation.Required, is.UUID),
	)
}

type UpdateStateRequest struct {
	Name      string `json:"name"`
	CountryID string `json:"countryId"`
}

func (r UpdateStateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.When(r.Name != "", validation.Length(1, 255))),
		validation.Field(&r.CountryID, validation.When(r.CountryID != "", is.UUID)),
	)
}

type StateResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CountryID uuid.UUID `json:"countryId"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *State) ToResponse() StateResponse {
	return StateResponse{
		ID:        s.ID,
		Name:      s.Name,
		CountryID: s.CountryID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
