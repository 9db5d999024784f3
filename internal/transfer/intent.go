package transfer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
)

// State of a transfer intent. Initiated is the only live state; Confirmed
// and Abandoned are terminal and immutable.
type State string

const (
	StateInitiated State = "initiated"
	StateConfirmed State = "confirmed"
	StateAbandoned State = "abandoned"
)

var (
	// ErrInvalidRecipient rejects recipient identifiers that are not
	// alphanumeric or are shorter than 5 characters.
	ErrInvalidRecipient = errors.New("invalid recipient identifier")
	// ErrInvalidTransition rejects events on terminal intents. The intent
	// is left unchanged.
	ErrInvalidTransition = errors.New("invalid transfer transition")
)

const referenceChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Intent is a pending ownership change of one token from one account to
// another. It is a value: transitions return the updated intent, and a new
// intent replaces an old one rather than being reused. TokenID doubles as
// the idempotency key for caller-driven confirm retries.
type Intent struct {
	ID        string
	Reference string
	TokenID   string
	From      string
	To        string
	State     State
	CreatedAt time.Time
}

// New creates an Initiated intent after validating the recipient
// identifier. No intent exists when validation fails.
func New(tokenID, from, to string) (Intent, error) {
	if err := validateRecipient(to); err != nil {
		return Intent{}, err
	}
	if tokenID == "" {
		return Intent{}, fmt.Errorf("token id is required")
	}
	if from == "" {
		return Intent{}, fmt.Errorf("sender account id is required")
	}
	return Intent{
		ID:        uuid.NewString(),
		Reference: newReference(),
		TokenID:   tokenID,
		From:      from,
		To:        to,
		State:     StateInitiated,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Confirm executes the remote ownership change. The only side-effecting
// transition: one ledger call, no automatic retry. On failure the intent
// stays Initiated so the caller may retry explicitly or abandon.
func (i Intent) Confirm(ctx context.Context, ledgerSvc ledger.Service) (Intent, error) {
	if i.State != StateInitiated {
		return i, fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, i.State)
	}
	if err := ledgerSvc.TransferToken(ctx, i.From, i.To, i.TokenID); err != nil {
		return i, fmt.Errorf("confirm transfer %s: %w", i.ID, err)
	}
	i.State = StateConfirmed
	return i, nil
}

// Abandon terminates the intent without any remote effect. Always allowed
// from Initiated.
func (i Intent) Abandon() (Intent, error) {
	if i.State != StateInitiated {
		return i, fmt.Errorf("%w: abandon from %s", ErrInvalidTransition, i.State)
	}
	i.State = StateAbandoned
	return i, nil
}

// Terminal reports whether the intent can accept no further events.
func (i Intent) Terminal() bool {
	return i.State == StateConfirmed || i.State == StateAbandoned
}

func validateRecipient(to string) error {
	if len(to) < 5 {
		return fmt.Errorf("%w: must be at least 5 characters", ErrInvalidRecipient)
	}
	for _, r := range to {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return fmt.Errorf("%w: must be alphanumeric", ErrInvalidRecipient)
		}
	}
	return nil
}

// newReference produces the 6-character booking reference printed on the
// recipient-facing handover artifact.
func newReference() string {
	ref := make([]byte, 6)
	for i := range ref {
		ref[i] = referenceChars[rand.Intn(len(referenceChars))]
	}
	return string(ref)
}
