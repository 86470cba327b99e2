package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"go-pos-dashboard/internal/database"
	"go-pos-dashboard/internal/models"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

var (
	// ErrInvalidCredentials covers both unknown phone and wrong password.
	ErrInvalidCredentials = errors.New("Invalid phone number or password.")
	ErrInactiveAccount    = errors.New("This account is inactive. Please contact administrator.")
	ErrPhoneTaken         = errors.New("An account with this phone number already exists.")
	ErrWeakPassword       = errors.New("Password must be at least 8 characters.")
	ErrPasswordTooLong    = errors.New("Password must be at most 72 characters.")
	ErrPhoneRequired      = errors.New("Phone number is required.")
)

// UserStore is the part of the users repository the service needs.
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
}

// Service handles staff login and registration.
type Service struct {
	users  UserStore
	tokens *TokenIssuer
}

func NewService(users UserStore, tokens *TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// Login checks the phone and password and returns a signed token.
func (s *Service) Login(ctx context.Context, phone, password string) (string, *models.User, error) {
	user, err := s.users.FindByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	// Compare the input password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrInactiveAccount
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Phone, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// Register creates a staff account. The very first account becomes admin.
func (s *Service) Register(ctx context.Context, phone, password, firstName, lastName string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	// bcrypt has a 72-byte limit
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.users.PhoneExists(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("check phone: %w", err)
	}
	if exists {
		return nil, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := RoleStaff
	if n, err := s.users.Count(ctx); err == nil && n == 0 {
		role = RoleAdmin
	}

	user := &models.User{
		Phone:        phone,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
