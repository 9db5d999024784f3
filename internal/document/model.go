package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/profile"
)

// TimeLayout is the fixed, lexically sortable capture-timestamp format.
// Second precision; every surface (wire metadata, QR payload, API) uses it.
const TimeLayout = "2006-01-02 15:04:05"

// Type is the closed document type enumeration. The integer values are the
// stable wire codes and must never be renumbered.
type Type uint32

const (
	TypePassport     Type = 1
	TypeIdentityCard Type = 2
	TypeAccessPass   Type = 3
)

// ErrUnknownType indicates a document type outside the closed enumeration.
// Construction fails; nothing is ever mapped to a default.
var ErrUnknownType = errors.New("unknown document type")

var typeNames = map[Type]string{
	TypePassport:     "passport",
	TypeIdentityCard: "id_card",
	TypeAccessPass:   "pass",
}

var typeTitles = map[Type]string{
	TypePassport:     "Passport",
	TypeIdentityCard: "Identity Card",
	TypeAccessPass:   "Access Pass",
}

var typeDescriptions = map[Type]string{
	TypePassport:     "International travel document",
	TypeIdentityCard: "National identification card",
	TypeAccessPass:   "Access or membership pass",
}

// ParseType maps a textual type name onto the enumeration.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// TypeFromCode maps a wire code back onto the enumeration.
func TypeFromCode(code uint32) (Type, error) {
	t := Type(code)
	if _, ok := typeNames[t]; !ok {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownType, code)
	}
	return t, nil
}

// String returns the stable textual type name used on the QR payload and API.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", uint32(t))
}

// Code returns the wire integer code.
func (t Type) Code() uint32 { return uint32(t) }

// Title returns the display name for the type.
func (t Type) Title() string { return typeTitles[t] }

// Description returns the one-line description shown alongside the type.
func (t Type) Description() string { return typeDescriptions[t] }

// Valid reports whether t belongs to the closed enumeration.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// Record is one captured document. ID is assigned exactly once at capture
// and never reused, even when issuance later fails; TokenID is the
// ledger-assigned identifier, empty until issuance succeeds, and is never
// assumed equal to ID.
type Record struct {
	ID           string
	Type         Type
	Image        []byte
	CreatedAt    time.Time
	OwnerVariant profile.Variant
	TokenID      string
}

// DateAdded renders the capture timestamp in the fixed layout.
func (r Record) DateAdded() string {
	return r.CreatedAt.Format(TimeLayout)
}
