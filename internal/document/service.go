package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/notification"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/profile"
)

// Issuer captures documents and drives token issuance against the ledger.
// It performs exactly one mint attempt per call: a record whose issuance
// failed keeps its id but never enters the cache, and resubmission is an
// explicit new capture by the caller. Record.ID is the idempotency key for
// any retry layer built on top.
type Issuer struct {
	ledger   ledger.Service
	cache    *Cache
	notifier notification.Notifier
	now      func() time.Time
}

// NewIssuer builds the issuance service.
func NewIssuer(ledgerSvc ledger.Service, cache *Cache, notifier notification.Notifier) *Issuer {
	return &Issuer{
		ledger:   ledgerSvc,
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
	}
}

// Capture validates raw input and produces a record with a freshly assigned
// document id and a second-precision capture timestamp. No network effect.
func (s *Issuer) Capture(typeName string, image []byte, variant profile.Variant) (Record, error) {
	docType, err := ParseType(typeName)
	if err != nil {
		return Record{}, err
	}
	if len(image) == 0 {
		return Record{}, fmt.Errorf("document image must not be empty")
	}
	if _, err := profile.ParseVariant(string(variant)); err != nil {
		return Record{}, err
	}
	return Record{
		ID:           uuid.NewString(),
		Type:         docType,
		Image:        image,
		CreatedAt:    s.now().UTC().Truncate(time.Second),
		OwnerVariant: variant,
	}, nil
}

// Issue encodes the record and requests a token from the ledger. On success
// the record, now carrying its token id, is appended to the cache. When the
// ledger accepts without returning a token id, the local document id stands
// in for the association.
func (s *Issuer) Issue(ctx context.Context, rec Record, ownerID string) (Record, error) {
	req, err := Encode(rec, ownerID)
	if err != nil {
		return Record{}, err
	}

	token, err := s.ledger.MintToken(ctx, req)
	if err != nil {
		return Record{}, fmt.Errorf("issue document %s: %w", rec.ID, err)
	}

	rec.TokenID = token.ID
	if rec.TokenID == "" {
		rec.TokenID = rec.ID
	}

	s.cache.Append(rec)
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindDocumentIssued,
			Destination: ownerID,
			Body:        fmt.Sprintf("document %s issued as token %s", rec.ID, rec.TokenID),
		})
	}
	return rec, nil
}
