package ledger

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// InMemory is a complete in-process ledger with the remote service's
// validation rules. It backs unit tests and the local devledger.
type InMemory struct {
	mu       sync.RWMutex
	accounts map[string][]string
	tokens   map[string]Token
	seq      uint64
}

var _ Service = (*InMemory)(nil)

// NewInMemory creates an empty in-memory ledger.
func NewInMemory() *InMemory {
	return &InMemory{
		accounts: make(map[string][]string),
		tokens:   make(map[string]Token),
	}
}

// CreateAccount registers a new account; duplicates are rejected.
func (l *InMemory) CreateAccount(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.accounts[id]; exists {
		return &RejectionError{Status: http.StatusBadRequest, Reason: "account already exists"}
	}
	l.accounts[id] = nil
	return nil
}

// MintToken mints a token for a known owner. The ledger assigns its own
// token id, distinct from the metadata's document id.
func (l *InMemory) MintToken(_ context.Context, req IssuanceRequest) (Token, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.accounts[req.Owner]; !exists {
		return Token{}, &RejectionError{Status: http.StatusBadRequest, Reason: "account does not exist"}
	}

	l.seq++
	token := Token{
		ID:          fmt.Sprintf("nft_%d", l.seq),
		Name:        req.Name,
		Description: req.Description,
		Owner:       req.Owner,
		Metadata:    req.Metadata,
		CreatedAt:   time.Now().Unix(),
	}
	l.tokens[token.ID] = token
	l.accounts[req.Owner] = append(l.accounts[req.Owner], token.ID)
	return token, nil
}

// ListTokens returns the tokens owned by the account.
func (l *InMemory) ListTokens(_ context.Context, accountID string) ([]Token, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids, exists := l.accounts[accountID]
	if !exists {
		return nil, &RejectionError{Status: http.StatusNotFound, Reason: "account not found"}
	}
	tokens := make([]Token, 0, len(ids))
	for _, id := range ids {
		if token, ok := l.tokens[id]; ok {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

// TransferToken moves a token between two known accounts, enforcing current
// ownership.
func (l *InMemory) TransferToken(_ context.Context, from, to, tokenID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.accounts[from]; !exists {
		return &RejectionError{Status: http.StatusBadRequest, Reason: "sender account not found"}
	}
	if _, exists := l.accounts[to]; !exists {
		return &RejectionError{Status: http.StatusBadRequest, Reason: "receiver account not found"}
	}
	token, exists := l.tokens[tokenID]
	if !exists {
		return &RejectionError{Status: http.StatusBadRequest, Reason: "token not found"}
	}
	if token.Owner != from {
		return &RejectionError{Status: http.StatusBadRequest, Reason: "token does not belong to sender"}
	}

	token.Owner = to
	l.tokens[tokenID] = token

	owned := l.accounts[from]
	for i, id := range owned {
		if id == tokenID {
			l.accounts[from] = append(owned[:i:i], owned[i+1:]...)
			break
		}
	}
	l.accounts[to] = append(l.accounts[to], tokenID)
	return nil
}
