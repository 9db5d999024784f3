package ledger

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryMintRequiresAccount(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	_, err := l.MintToken(ctx, IssuanceRequest{Owner: "ghost"})
	var rejection *RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected rejection, got %v", err)
	}

	if err := l.CreateAccount(ctx, "acct-1"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	token, err := l.MintToken(ctx, IssuanceRequest{Owner: "acct-1", Metadata: Metadata{ID: "doc-1"}})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if token.ID == "" || token.ID == token.Metadata.ID {
		t.Fatalf("ledger must assign its own token id, got %q", token.ID)
	}
}

func TestInMemoryDuplicateAccount(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	if err := l.CreateAccount(ctx, "acct-1"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	var rejection *RejectionError
	if err := l.CreateAccount(ctx, "acct-1"); !errors.As(err, &rejection) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestInMemoryTransferEnforcesOwnership(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	for _, id := range []string{"issuer", "passenger"} {
		if err := l.CreateAccount(ctx, id); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	token, err := l.MintToken(ctx, IssuanceRequest{Owner: "issuer"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	var rejection *RejectionError
	if err := l.TransferToken(ctx, "passenger", "issuer", token.ID); !errors.As(err, &rejection) {
		t.Fatalf("expected ownership rejection, got %v", err)
	}

	if err := l.TransferToken(ctx, "issuer", "passenger", token.ID); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	issuerTokens, err := l.ListTokens(ctx, "issuer")
	if err != nil {
		t.Fatalf("list issuer: %v", err)
	}
	if len(issuerTokens) != 0 {
		t.Fatalf("issuer should hold no tokens, has %d", len(issuerTokens))
	}
	passengerTokens, err := l.ListTokens(ctx, "passenger")
	if err != nil {
		t.Fatalf("list passenger: %v", err)
	}
	if len(passengerTokens) != 1 || passengerTokens[0].Owner != "passenger" {
		t.Fatalf("token did not move: %+v", passengerTokens)
	}
}

func TestInMemoryListUnknownAccount(t *testing.T) {
	l := NewInMemory()
	var rejection *RejectionError
	if _, err := l.ListTokens(context.Background(), "missing"); !errors.As(err, &rejection) {
		t.Fatalf("expected rejection, got %v", err)
	}
}
