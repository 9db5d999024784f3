package ledger

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable indicates a transport-level failure (connection refused,
// timeout, malformed response envelope). Callers may retry; the client
// itself never does.
var ErrUnavailable = errors.New("ledger unavailable")

// RejectionError is an application-level rejection from the ledger. It is
// not retryable without changing the request.
type RejectionError struct {
	Status int
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("rejected by ledger (status %d): %s", e.Status, e.Reason)
}

// Metadata is the canonical wire projection of a captured document. Field
// names and the integer type code are fixed by the ledger schema; optional
// fields are always present, never omitted.
type Metadata struct {
	ID           string `json:"id"`
	DocumentType uint32 `json:"document_type"`
	Image        string `json:"image"`
	DateAdded    string `json:"date_added"`
	ProfileType  string `json:"profile_type"`
}

// IssuanceRequest asks the ledger to mint one token for one document.
type IssuanceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Owner       string   `json:"owner"`
	Metadata    Metadata `json:"metadata"`
}

// Token mirrors the ledger's minted token object. ID is assigned by the
// ledger and is distinct from Metadata.ID, the locally generated document id.
type Token struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Owner       string   `json:"owner"`
	Metadata    Metadata `json:"metadata"`
	CreatedAt   int64    `json:"created_at"`
}

// Service is the client contract for the remote token ledger. Every call
// issues at most one request and distinguishes transport failure
// (ErrUnavailable) from application rejection (*RejectionError).
type Service interface {
	// CreateAccount registers an account identity. Used exactly once per
	// fresh identity, plus explicit operator retries.
	CreateAccount(ctx context.Context, id string) error

	// MintToken requests a token for the document described by req. A
	// success response without an extractable token id is still accepted;
	// the zero Token is returned and the caller associates its local id.
	MintToken(ctx context.Context, req IssuanceRequest) (Token, error)

	// ListTokens returns all tokens owned by the account.
	ListTokens(ctx context.Context, accountID string) ([]Token, error)

	// TransferToken reassigns ownership of tokenID from one account to
	// another.
	TransferToken(ctx context.Context, from, to, tokenID string) error
}
