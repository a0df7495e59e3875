// internal/domain/member/service_test.go
package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftshop-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Member{}))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: bcrypt.MinCost,
		},
	}

	return NewService(db, cfg)
}

func TestSignUp(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.SignUp(&SignUpRequest{
		Email:    "Alice@Example.com",
		Password: "Secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.NotZero(t, resp.Member.ID)
	assert.Empty(t, resp.Member.Password)
	// Email is normalized on create
	assert.Equal(t, "alice@example.com", resp.Member.Email)
	assert.True(t, resp.Member.IsActive)
	assert.False(t, resp.Member.IsAdmin)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SignUp(&SignUpRequest{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)

	_, err = svc.SignUp(&SignUpRequest{Email: "alice@example.com", Password: "Secret123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSignUp_WeakPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SignUp(&SignUpRequest{Email: "alice@example.com", Password: "short"})
	require.Error(t, err)

	var count int64
	require.NoError(t, svc.db.Model(&Member{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SignUp(&SignUpRequest{Email: "alice@example.com", Password: "Secret123", Name: "Alice"})
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Empty(t, resp.Member.Password)
	require.NotNil(t, resp.Member.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SignUp(&SignUpRequest{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "alice@example.com", Password: "Wrong1234"})
	require.Error(t, err)
	assert.EqualError(t, err, "invalid email or password")
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "Secret123"})
	require.Error(t, err)
	assert.EqualError(t, err, "invalid email or password")
}

func TestGetProfile(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.SignUp(&SignUpRequest{Email: "alice@example.com", Password: "Secret123", Name: "Alice"})
	require.NoError(t, err)

	m, err := svc.GetProfile(resp.Member.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", m.Email)
	assert.Empty(t, m.Password)

	_, err = svc.GetProfile(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SignUp(&SignUpRequest{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)

	m, err := svc.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, m.Password)

	_, err = svc.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
