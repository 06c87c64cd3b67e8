package domain

import (
	"fmt"
	"strings"
)

// Member is a club participant.
// swagger:model Member
type Member struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	RegNumber string `json:"regNumber"`
	Role      string `json:"role"`
	Contact   string `json:"contact"`
}

// MemberFields is the user-supplied part of a Member.
type MemberFields struct {
	Name      string `json:"name"`
	RegNumber string `json:"regNumber"`
	Role      string `json:"role"`
	Contact   string `json:"contact"`
}

// Normalize trims every field in place.
func (f *MemberFields) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.RegNumber = strings.TrimSpace(f.RegNumber)
	f.Role = strings.TrimSpace(f.Role)
	f.Contact = strings.TrimSpace(f.Contact)
}

// Validate returns a slice of error messages; nil means valid.
func (f *MemberFields) Validate() []string {
	var errs []string
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(f.RegNumber) == "" {
		errs = append(errs, "regNumber is required")
	}
	return errs
}

// NewMember builds a Member with the given id from normalized fields.
func NewMember(id int64, f MemberFields) *Member {
	return &Member{
		ID:        id,
		Name:      f.Name,
		RegNumber: f.RegNumber,
		Role:      f.Role,
		Contact:   f.Contact,
	}
}

// invalid wraps validation messages into an ErrInvalidInput error.
func invalid(errs []string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errs, "; "))
}

// CheckMember normalizes and validates f, returning an ErrInvalidInput error on failure.
func CheckMember(f *MemberFields) error {
	f.Normalize()
	if errs := f.Validate(); len(errs) > 0 {
		return invalid(errs)
	}
	return nil
}
