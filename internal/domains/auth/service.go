package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pharmacy-backend/internal/domains/user"
	"pharmacy-backend/internal/infrastructure/queue"
	"pharmacy-backend/internal/shared/apperr"
	"pharmacy-backend/pkg/jwt"
	"pharmacy-backend/pkg/logger"
)

// bcryptCost matches the hashes already stored in production.
const bcryptCost = 10

type Service interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*user.UserResponse, error)
	Login(ctx context.Context, req *LoginRequest, origin string) (*LoginResponse, error)
	ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error
	IssueVerificationOTP(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	userRepo     user.Repository
	otpRepo      user.OTPRepository
	jwtManager   *jwt.Manager
	queueClient  *queue.Client
	adminOrigins []string
	otpTTL       time.Duration
	now          func() time.Time
}

func NewService(
	userRepo user.Repository,
	otpRepo user.OTPRepository,
	jwtManager *jwt.Manager,
	queueClient *queue.Client,
	adminOrigins []string,
	otpTTL time.Duration,
) Service {
	return &authService{
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		jwtManager:   jwtManager,
		queueClient:  queueClient,
		adminOrigins: adminOrigins,
		otpTTL:       otpTTL,
		now:          time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateOTPCode returns a random 6-digit code.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *authService) SignUp(ctx context.Context, req *SignUpRequest) (*user.UserResponse, error) {
	// Emails are stored lowercased; normalize before validating so
	// mixed-case input passes the format check.
	req.Email = normalizeEmail(req.Email)

	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	existing, err = s.userRepo.GetByDocumentID(ctx, strings.TrimSpace(req.DocumentID))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrDocumentTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, &user.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		DocumentID:   strings.TrimSpace(req.DocumentID),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: string(hash),
		Role:         user.RoleCustomer,
		Profile: &user.Profile{
			BirthDate: req.BirthDate,
			Gender:    strings.TrimSpace(req.Gender),
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.issueAndSendOTP(ctx, created, user.OTPTypeEmailValidation); err != nil {
		// Signup succeeded; the user can request another code later.
		logger.Error("failed to send verification otp", err)
	}

	resp := created.ToResponse()
	return &resp, nil
}

// Login verifies credentials and applies the origin policy: requests
// without an Origin header are rejected outright, and store-side roles
// cannot log in through a dashboard origin.
func (s *authService) Login(ctx context.Context, req *LoginRequest, origin string) (*LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	if origin == "" {
		return nil, ErrOriginRequired
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if (u.Role == user.RoleCustomer || u.Role == user.RoleDelivery) && s.isAdminOrigin(origin) {
		return nil, ErrOriginForbidden
	}

	token, err := s.jwtManager.GenerateSessionToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &LoginResponse{Token: token, User: u.ToResponse()}, nil
}

func (s *authService) isAdminOrigin(origin string) bool {
	for _, allowed := range s.adminOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// ForgotPassword issues a recovery code. Unknown emails are not
// revealed to the caller.
func (s *authService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)

	if err := req.Validate(); err != nil {
		return apperr.Validation(err)
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}

	return s.issueAndSendOTP(ctx, u, user.OTPTypePasswordRecovery)
}

// ResetPassword consumes a recovery code, sets the new password and
// returns a fresh session so the user is logged in right away.
func (s *authService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) (*LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}

	otp, err := s.otpRepo.GetByCodeAndType(ctx, req.Code, user.OTPTypePasswordRecovery)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		return nil, user.ErrOTPNotFound
	}
	if otp.Expired(s.now()) {
		return nil, user.ErrOTPExpired
	}

	u, err := s.userRepo.GetByID(ctx, otp.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return nil, err
	}

	if err := s.otpRepo.Delete(ctx, otp.ID); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateSessionToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &LoginResponse{Token: token, User: u.ToResponse()}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Validation(err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// IssueVerificationOTP issues (or reissues) an email-validation code
// for the authenticated user.
func (s *authService) IssueVerificationOTP(ctx context.Context, userID uuid.UUID) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}

	return s.issueAndSendOTP(ctx, u, user.OTPTypeEmailValidation)
}

// issueAndSendOTP reuses a still-valid code for the same purpose if one
// exists, otherwise mints a new one, then enqueues the email.
func (s *authService) issueAndSendOTP(ctx context.Context, u *user.User, otpType string) error {
	now := s.now()

	otp, err := s.otpRepo.GetByUserAndType(ctx, u.ID, otpType)
	if err != nil {
		return err
	}

	if otp == nil || otp.Expired(now) {
		code, err := generateOTPCode()
		if err != nil {
			return err
		}
		otp, err = s.otpRepo.Upsert(ctx, &user.OTP{
			UserID:    u.ID,
			Code:      code,
			Type:      otpType,
			ExpiresAt: now.Add(s.otpTTL),
		})
		if err != nil {
			return err
		}
	}

	payload := queue.OTPEmailPayload{
		Email:     u.Email,
		FirstName: u.FirstName,
		Code:      otp.Code,
		ExpiresIn: fmt.Sprintf("%d minutes", int(s.otpTTL.Minutes())),
	}

	if otpType == user.OTPTypePasswordRecovery {
		return s.queueClient.EnqueueRecoveryEmail(payload)
	}
	return s.queueClient.EnqueueVerificationEmail(payload)
}
