package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AdminStore looks up admin principals.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// Claims extends JWT standard claims with the admin identity.
type Claims struct {
	jwt.RegisteredClaims
	AdminID int    `json:"admin_id"`
	Role    string `json:"role"`
	Email   string `json:"email"`
}

// LoginResult is returned after a successful admin login.
type LoginResult struct {
	Token     string
	Admin     *model.Admin
	ExpiresAt time.Time
}

// AuthService handles admin credential checks and session tokens.
type AuthService struct {
	cfg        *config.Config
	admins     AdminStore
	dispatcher *Dispatcher
	// dummyHash is compared against when the email is unknown, so both
	// credential failures cost one bcrypt comparison.
	dummyHash []byte
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, admins AdminStore, dispatcher *Dispatcher) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)
	if err != nil {
		// Cost out of range; fall back so startup never depends on it.
		dummy, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	}
	return &AuthService{
		cfg:        cfg,
		admins:     admins,
		dispatcher: dispatcher,
		dummyHash:  dummy,
		now:        time.Now,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies admin credentials and issues a session token. Unknown
// email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	if err := s.CheckPassword(admin.PasswordHash, password); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.GenerateAdminToken(admin)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Admin: admin, ExpiresAt: expiresAt}, nil
}

// AlertLoginAsync queues the operator login alert without waiting for it.
// Call after the login response has been written.
func (s *AuthService) AlertLoginAsync(event model.LoginEvent) {
	if s.cfg.AdminAlertEmail == "" {
		return
	}
	s.dispatcher.Go("admin_login_alert", func(ctx context.Context, n Notifier) error {
		return n.AdminLoggedIn(ctx, event)
	})
}

// GenerateAdminToken creates a signed JWT for an admin.
func (s *AuthService) GenerateAdminToken(admin *model.Admin) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.JWTExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(admin.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AdminID: admin.ID,
		Role:    model.RoleAdmin,
		Email:   admin.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and validates a JWT, returning the claims. Every
// failure collapses to ErrUnauthorized.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != model.RoleAdmin {
		return nil, ErrUnauthorized
	}

	return claims, nil
}
