package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	RoleAdmin       = "ADMIN"
	RoleBranchAdmin = "BRANCH_ADMIN"
	RoleCustomer    = "CUSTOMER"
	RoleDelivery    = "DELIVERY"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBranchAdmin, RoleCustomer, RoleDelivery:
		return true
	}
	return false
}

const (
	// OTP purposes. One row per (user, type).
	OTPTypeEmailValidation  = "EMAIL_VALIDATION"
	OTPTypePasswordRecovery = "PASSWORD_RECOVERY"
)

type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	DocumentID   string
	PhoneNumber  string
	PasswordHash string
	Role         string
	IsValidated  bool
	BranchID     *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	Profile *Profile
}

type Profile struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	BirthDate      *time.Time
	Gender         string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type OTP struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Code      string
	Type      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

type UpdateUserRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	BranchID    string `json:"branchId"`

	BirthDate      *time.Time `json:"birthDate"`
	Gender         string     `json:"gender"`
	ProfilePicture string     `json:"profilePicture"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.When(r.FirstName != "", validation.Length(1, 100))),
		validation.Field(&r.LastName, validation.When(r.LastName != "", validation.Length(1, 100))),
		validation.Field(&r.PhoneNumber, validation.When(r.PhoneNumber != "", validation.Length(5, 20))),
		validation.Field(&r.Role, validation.When(r.Role != "", validation.In(RoleAdmin, RoleBranchAdmin, RoleCustomer, RoleDelivery))),
		validation.Field(&r.BranchID, validation.When(r.BranchID != "", is.UUID)),
		validation.Field(&r.ProfilePicture, validation.When(r.ProfilePicture != "", is.URL)),
	)
}

type ValidateOTPRequest struct {
	Code string `json:"code" binding:"required"`
}

func (r ValidateOTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

type ProfileResponse struct {
	BirthDate      *time.Time `json:"birthDate"`
	Gender         string     `json:"gender"`
	ProfilePicture string     `json:"profilePicture"`
}

type UserResponse struct {
	ID          uuid.UUID        `json:"id"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	Email       string           `json:"email"`
	DocumentID  string           `json:"documentId"`
	PhoneNumber string           `json:"phoneNumber"`
	Role        string           `json:"role"`
	IsValidated bool             `json:"isValidated"`
	BranchID    *uuid.UUID       `json:"branchId"`
	Profile     *ProfileResponse `json:"profile,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DocumentID:  u.DocumentID,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsValidated: u.IsValidated,
		BranchID:    u.BranchID,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Profile != nil {
		resp.Profile = &ProfileResponse{
			BirthDate:      u.Profile.BirthDate,
			Gender:         u.Profile.Gender,
			ProfilePicture: u.Profile.ProfilePicture,
		}
	}
	return resp
}
