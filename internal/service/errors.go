package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Skotchmaster/grocery_store/internal/models"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
)

// Identity is the authenticated caller. The zero value is anonymous.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (i Identity) Anonymous() bool {
	return i.UserID == uuid.Nil
}

func (i Identity) IsAdmin() bool {
	return !i.Anonymous() && i.Role == models.RoleAdmin
}
