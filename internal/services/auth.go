package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
	"github.com/omshinde26/honda-digital-showroom/internal/metrics"
	"github.com/omshinde26/honda-digital-showroom/internal/util"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

// AuthService authenticates back-office users
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string
	TokenType   string
	User        *domain.AdminUser
}

// Login verifies the credentials and issues a JWT token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	log.Printf("[AUTH] Login attempt for user: %s", username)

	var user domain.AdminUser
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Login failed: user '%s' not found", username)
			metrics.RecordAuthAttempt(false)
			return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "incorrect username or password")
		}
		log.Printf("[AUTH] Login failed: database error for user '%s': %v", username, err)
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to look up user", err)
	}

	if !util.CheckPasswordHash(password, user.HashedPassword) {
		log.Printf("[AUTH] Login failed: invalid password for user '%s'", username)
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "incorrect username or password")
	}

	if !user.IsActive {
		log.Printf("[AUTH] Login failed: user '%s' is inactive", username)
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user account is inactive")
	}

	// Update last login
	now := time.Now()
	user.LastLogin = &now
	s.db.WithContext(ctx).Save(&user)

	token, err := util.GenerateToken(&user)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for user '%s': %v", username, err)
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to generate token", err)
	}

	log.Printf("[AUTH] Login successful for user '%s' (id=%d, admin=%v, staff=%v)",
		username, user.ID, user.IsAdmin, user.IsStaff)
	metrics.RecordAuthAttempt(true)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        &user,
	}, nil
}

// Authenticate resolves a bearer token into an active admin user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.AdminUser, error) {
	claims, err := util.ValidateToken(token)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid or expired token")
	}

	var user domain.AdminUser
	if err := s.db.WithContext(ctx).Where("username = ?", claims.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to look up user", err)
	}

	if !user.IsActive {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user account is inactive")
	}

	return &user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.AdminUser, currentPassword, newPassword string) error {
	log.Printf("[AUTH] ChangePassword request for user: %s (id=%d)", user.Username, user.ID)

	if !util.CheckPasswordHash(strings.TrimSpace(currentPassword), user.HashedPassword) {
		log.Printf("[AUTH] ChangePassword failed: wrong current password for user '%s'", user.Username)
		return apperrors.New(apperrors.ErrCodeUnauthorized, "current password is incorrect")
	}

	newPassword = strings.TrimSpace(newPassword)
	if len(newPassword) < 6 {
		return apperrors.NewValidation(apperrors.FieldError{
			Field:  "new_password",
			Reason: "password must be at least 6 characters long",
		})
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		log.Printf("[AUTH] ChangePassword failed: hashing error: %v", err)
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to hash password", err)
	}

	user.HashedPassword = hashed
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Printf("[AUTH] ChangePassword failed: database error: %v", err)
		return apperrors.Wrap(apperrors.ErrCodePersistence, "failed to update password", err)
	}

	log.Printf("[AUTH] ChangePassword successful for user '%s'", user.Username)
	return nil
}
