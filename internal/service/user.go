package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/grocery_store/internal/hash"
	"github.com/Skotchmaster/grocery_store/internal/models"
	"github.com/Skotchmaster/grocery_store/internal/repo"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

const (
	minPasswordLen = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLen = 72
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type UserService struct {
	Repo UserStore
}

type Registration struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

func (s *UserService) Register(ctx context.Context, r Registration) (*models.User, error) {
	if err := validateRegistration(r); err != nil {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(r.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Username:     r.Username,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, u); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("username is already taken: %w", ErrConflict)
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Me(ctx context.Context, id Identity) (*models.User, error) {
	if id.Anonymous() {
		return nil, fmt.Errorf("profile requires an authenticated user: %w", ErrForbidden)
	}
	u, err := s.Repo.GetUser(ctx, id.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return u, err
}

func (s *UserService) SetPassword(ctx context.Context, id Identity, current, next string) error {
	u, err := s.Me(ctx, id)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(u.PasswordHash, current) {
		return fmt.Errorf("current password is wrong: %w", ErrInvalidInput)
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	h, err := hash.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Repo.UpdatePasswordHash(ctx, u.ID, h)
}

func validateRegistration(r Registration) error {
	switch {
	case r.Username == "" || len(r.Username) > 150:
		return fmt.Errorf("username must be 1..150 characters: %w", ErrInvalidInput)
	case !usernamePattern.MatchString(r.Username):
		return fmt.Errorf("username may contain only letters, digits and @/./+/-/_: %w", ErrInvalidInput)
	case len(r.FirstName) > 150 || len(r.LastName) > 150:
		return fmt.Errorf("names must be at most 150 characters: %w", ErrInvalidInput)
	case strings.TrimSpace(r.Email) == "" || len(r.Email) > 254:
		return fmt.Errorf("email must be 1..254 characters: %w", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("email is malformed: %w", ErrInvalidInput)
	}
	return validatePassword(r.Password)
}

func validatePassword(p string) error {
	if len(p) < minPasswordLen || len(p) > maxPasswordLen {
		return fmt.Errorf("password must be %d..%d bytes: %w", minPasswordLen, maxPasswordLen, ErrInvalidInput)
	}
	return nil
}
