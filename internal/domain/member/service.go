// internal/domain/member/service.go
package member

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/giftshop-backend/internal/config"
	"github.com/your-org/giftshop-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a member is absent from the store.
var ErrNotFound = errors.New("member not found")

// Service handles member business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new member service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// SignUpRequest represents member registration data
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// LoginRequest represents member login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Member      *Member `json:"member"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int64   `json:"expires_in"`
}

// SignUp creates a new member account and returns a token
func (s *Service) SignUp(req *SignUpRequest) (*AuthResponse, error) {
	// Check if member already exists
	var existing Member
	result := s.db.Where("email = ?", req.Email).First(&existing)
	if result.Error == nil {
		return nil, fmt.Errorf("member with this email already exists")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	m := Member{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		IsActive: true,
		IsAdmin:  false,
	}

	if err := s.db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(m.ID, m.Email, m.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now().UTC()
	m.LastLoginAt = &now
	s.db.Save(&m)

	// Clear password from response
	m.Password = ""

	return &AuthResponse{
		Member:      &m,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// Login authenticates a member and returns a token
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var m Member
	result := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&m)
	if result.Error != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, m.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(m.ID, m.Email, m.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now().UTC()
	m.LastLoginAt = &now
	s.db.Save(&m)

	// Clear password from response
	m.Password = ""

	return &AuthResponse{
		Member:      &m,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetProfile gets member profile by ID
func (s *Service) GetProfile(memberID uint) (*Member, error) {
	var m Member
	result := s.db.Where("id = ? AND is_active = ?", memberID, true).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve member: %w", result.Error)
	}

	m.Password = ""
	return &m, nil
}

// GetByEmail retrieves a member by email
func (s *Service) GetByEmail(email string) (*Member, error) {
	var m Member
	result := s.db.Where("email = ?", email).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve member: %w", result.Error)
	}

	m.Password = ""
	return &m, nil
}
