package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pharmacy-backend/internal/domains/branch"
	"pharmacy-backend/internal/shared/apperr"
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	List(ctx context.Context, page, pageSize int) ([]UserResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ValidateOTP(ctx context.Context, req *ValidateOTPRequest) error
}

type userService struct {
	repo       Repository
	otpRepo    OTPRepository
	branchRepo branch.Repository
	now        func() time.Time
}

func NewService(repo Repository, otpRepo OTPRepository, branchRepo branch.Repository) Service {
	return &userService{
		repo:       repo,
		otpRepo:    otpRepo,
		branchRepo: branchRepo,
		now:        time.Now,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	resp := u.ToResponse()
	return &resp, nil
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]UserResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	users, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}

	return responses, total, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if v := strings.TrimSpace(req.FirstName); v != "" {
		existing.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		existing.LastName = v
	}
	if v := strings.TrimSpace(req.PhoneNumber); v != "" {
		existing.PhoneNumber = v
	}
	if req.Role != "" {
		if !ValidRole(req.Role) {
			return nil, ErrInvalidRole
		}
		existing.Role = req.Role
	}

	if req.BranchID != "" {
		branchID, err := uuid.Parse(req.BranchID)
		if err != nil {
			return nil, apperr.BadRequest("invalid branch id")
		}
		b, err := s.branchRepo.GetByID(ctx, branchID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, branch.ErrBranchNotFound
		}
		existing.BranchID = &branchID
	}

	if req.BirthDate != nil || req.Gender != "" || req.ProfilePicture != "" {
		if existing.Profile == nil {
			existing.Profile = &Profile{UserID: existing.ID}
		}
		if req.BirthDate != nil {
			existing.Profile.BirthDate = req.BirthDate
		}
		if v := strings.TrimSpace(req.Gender); v != "" {
			existing.Profile.Gender = v
		}
		if v := strings.TrimSpace(req.ProfilePicture); v != "" {
			existing.Profile.ProfilePicture = v
		}
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, id)
}

// ValidateOTP consumes an email-validation code. An expired code fails
// without touching the user's validated flag.
func (s *userService) ValidateOTP(ctx context.Context, req *ValidateOTPRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Validation(err)
	}

	otp, err := s.otpRepo.GetByCodeAndType(ctx, req.Code, OTPTypeEmailValidation)
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrOTPNotFound
	}

	if otp.Expired(s.now()) {
		return ErrOTPExpired
	}

	if err := s.repo.SetValidated(ctx, otp.UserID); err != nil {
		return err
	}

	return s.otpRepo.Delete(ctx, otp.ID)
}
