package profile

import (
	"errors"
	"fmt"
	"time"
)

// Variant selects which of the two profile records is being addressed.
// The two variants persist independently and are never merged.
type Variant string

const (
	// VariantIndividual is the personal profile.
	VariantIndividual Variant = "Individual"
	// VariantOrganization is the business profile.
	VariantOrganization Variant = "Organization"
)

// DateLayout is the format used by all profile date fields.
const DateLayout = "2006-01-02"

// ErrUnknownVariant indicates a profile variant outside the closed set.
var ErrUnknownVariant = errors.New("unknown profile variant")

// ParseVariant maps a textual variant name onto the closed set.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantIndividual, VariantOrganization:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// Individual holds the personal profile fields.
type Individual struct {
	FullName    string
	Email       string
	Phone       string
	Address     string
	DateOfBirth string
	Bio         string
	Avatar      []byte
}

// Organization holds the business profile fields.
type Organization struct {
	Name               string
	BusinessEmail      string
	Phone              string
	Address            string
	RegistrationNumber string
	Industry           string
	FoundingDate       string
	Description        string
	Logo               []byte
}

func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("%s must use %s: %w", field, DateLayout, err)
	}
	return nil
}
