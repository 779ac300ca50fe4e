// Package service provides the server's business logic, delegating
// persistence to repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kbenhlel/TodoKeeper/internal/models"
)

var (
	// ErrInvalidCredentials is returned when the email/password pair
	// does not match a stored user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering an already-taken email.
	ErrUserExists = errors.New("user already exists")
)

// Token lifetimes issued at login.
const (
	accessTTL  = time.Hour
	refreshTTL = 30 * 24 * time.Hour
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// GetUserByEmail returns the user with the given email, or
	// (nil, nil) when absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserExists returns true if a user with the given email exists.
	UserExists(ctx context.Context, email string) (bool, error)
	// CreateUser inserts a new user record.
	CreateUser(ctx context.Context, u models.User) error
}

// AuthService implements registration and login with bcrypt-hashed
// passwords and JWT bearer tokens.
type AuthService struct {
	repo   UserRepository
	secret []byte
}

// NewAuthService constructs an AuthService. secret signs the issued
// bearer tokens and must match the verifying middleware.
func NewAuthService(repo UserRepository, secret []byte) *AuthService {
	return &AuthService{repo: repo, secret: secret}
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	exists, err := s.repo.UserExists(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("check user: %w", err)
	}
	if exists {
		return models.User{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Login checks the credentials and issues a token pair. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(u.ID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}
	return *u, tokens, nil
}

// issueTokens signs an access/refresh pair for the user.
func (s *AuthService) issueTokens(userID string) (models.TokenPair, error) {
	access, accessExp, err := s.sign(userID, accessTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, refreshExp, err := s.sign(userID, refreshTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{
		Access:  models.Token{Token: access, Expires: accessExp},
		Refresh: models.Token{Token: refresh, Expires: refreshExp},
	}, nil
}

func (s *AuthService) sign(userID string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}
