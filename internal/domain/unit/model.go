package unit

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 120
	MaxCityLength = 80
)

// Domain errors
var (
	ErrEmptyName    = errors.New("unit name cannot be empty")
	ErrInvalidEmail = errors.New("unit contact email must be valid")
)

// Unit is a registration unit: the club or federation branch that
// registers athletes and pays their entry fees.
type Unit struct {
	ID           string
	AccountID    string
	Name         string
	City         string
	ContactEmail string
	Phone        string
	CreatedAt    time.Time
}

// Validate checks if the Unit has valid data.
// PRE: Unit struct is populated
// POST: Returns nil if valid, error otherwise
func (u *Unit) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if len(u.Name) > MaxNameLength {
		return errors.New("unit name cannot exceed 120 characters")
	}
	if len(u.City) > MaxCityLength {
		return errors.New("unit city cannot exceed 80 characters")
	}
	if !strings.Contains(u.ContactEmail, "@") {
		return ErrInvalidEmail
	}
	return nil
}
