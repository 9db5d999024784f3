package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
)

// Service acquires and holds the session's account identity.
//
// GetOrCreate is idempotent: the first call in a fresh environment performs
// exactly one id assignment and at most one remote registration; every later
// call (and every call in an environment with stored state) returns the same
// identity with no network effect. The registration outcome is persisted, so
// a first run whose registration failed stays retryable after a restart.
type Service struct {
	store  Store
	ledger ledger.Service
	logger *slog.Logger

	mu      sync.Mutex
	account *Account
}

// NewService builds an identity service over the given store and ledger client.
func NewService(store Store, ledgerSvc ledger.Service, logger *slog.Logger) *Service {
	return &Service{store: store, ledger: ledgerSvc, logger: logger}
}

// GetOrCreate returns the durable account identity, creating and registering
// it on first run. Storage failure is fatal to the call. Remote registration
// failure is not: it is logged, the account is returned with
// Registered=false, and an operator may retry via RetryRegistration.
func (s *Service) GetOrCreate(ctx context.Context) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account != nil {
		return *s.account, nil
	}

	rec, err := s.store.Load(ctx)
	switch {
	case err == nil:
		// Subsequent run: the stored identity and its registration
		// outcome win, no network call.
		s.account = &Account{ID: rec.ID, Registered: rec.Registered}
		return *s.account, nil
	case errors.Is(err, ErrNotFound):
		// First run, fall through to creation.
	default:
		return Account{}, fmt.Errorf("load identity: %w", err)
	}

	account := Account{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	// The id must be durable before the first network call, or a crash
	// could mint a second identity on restart.
	if err := s.store.Save(ctx, Record{ID: account.ID}); err != nil {
		return Account{}, fmt.Errorf("persist identity: %w", err)
	}

	if err := s.ledger.CreateAccount(ctx, account.ID); err != nil {
		s.logger.Warn("remote account registration failed; identity remains locally valid",
			"account", account.ID, "error", err)
	} else {
		account.Registered = true
		s.persistRegistered(ctx, account.ID)
	}

	s.account = &account
	return account, nil
}

// RetryRegistration re-attempts the remote registration for an identity that
// already exists locally. Explicit operator action; never called implicitly.
// A ledger rejection saying the account already exists counts as success:
// the remote state is exactly what registration would have produced.
func (s *Service) RetryRegistration(ctx context.Context) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil {
		return Account{}, fmt.Errorf("no identity acquired yet")
	}
	if s.account.Registered {
		return *s.account, nil
	}
	if err := s.ledger.CreateAccount(ctx, s.account.ID); err != nil && !accountExists(err) {
		return *s.account, fmt.Errorf("register account: %w", err)
	}
	s.account.Registered = true
	s.persistRegistered(ctx, s.account.ID)
	return *s.account, nil
}

// persistRegistered records a successful registration. Best effort: the
// in-memory state is already correct and a later retry converges via the
// already-exists mapping.
func (s *Service) persistRegistered(ctx context.Context, id string) {
	if err := s.store.Save(ctx, Record{ID: id, Registered: true}); err != nil {
		s.logger.Warn("failed to persist registration outcome", "account", id, "error", err)
	}
}

func accountExists(err error) bool {
	var rejection *ledger.RejectionError
	return errors.As(err, &rejection) && strings.Contains(rejection.Reason, "exists")
}
