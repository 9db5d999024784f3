package transfer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/notification"
)

// ErrNotFound indicates an unknown intent id.
var ErrNotFound = errors.New("transfer intent not found")

// Service tracks the session's transfer intents. Intents are working state
// scoped to the running session, so the collection lives in memory; the
// authoritative ownership record is the ledger itself.
type Service struct {
	ledger   ledger.Service
	notifier notification.Notifier

	mu      sync.RWMutex
	intents map[string]Intent
}

// NewService builds a transfer service over the ledger client.
func NewService(ledgerSvc ledger.Service, notifier notification.Notifier) *Service {
	return &Service{
		ledger:   ledgerSvc,
		notifier: notifier,
		intents:  make(map[string]Intent),
	}
}

// Create validates and stores a new Initiated intent.
func (s *Service) Create(tokenID, from, to string) (Intent, error) {
	intent, err := New(tokenID, from, to)
	if err != nil {
		return Intent{}, err
	}
	s.mu.Lock()
	s.intents[intent.ID] = intent
	s.mu.Unlock()
	return intent, nil
}

// Confirm drives the intent's single side-effecting transition. A failed
// ledger call leaves the stored intent Initiated.
func (s *Service) Confirm(ctx context.Context, id string) (Intent, error) {
	intent, err := s.Get(id)
	if err != nil {
		return Intent{}, err
	}

	confirmed, err := intent.Confirm(ctx, s.ledger)
	if err != nil {
		return confirmed, err
	}

	s.mu.Lock()
	s.intents[id] = confirmed
	s.mu.Unlock()

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferConfirmed,
			Destination: confirmed.To,
			Body:        fmt.Sprintf("token %s transferred, reference %s", confirmed.TokenID, confirmed.Reference),
		})
	}
	return confirmed, nil
}

// Abandon terminates the intent locally.
func (s *Service) Abandon(id string) (Intent, error) {
	intent, err := s.Get(id)
	if err != nil {
		return Intent{}, err
	}
	abandoned, err := intent.Abandon()
	if err != nil {
		return abandoned, err
	}
	s.mu.Lock()
	s.intents[id] = abandoned
	s.mu.Unlock()
	return abandoned, nil
}

// Get returns a stored intent by id.
func (s *Service) Get(id string) (Intent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	intent, ok := s.intents[id]
	if !ok {
		return Intent{}, ErrNotFound
	}
	return intent, nil
}
