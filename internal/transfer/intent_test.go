package transfer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
)

type stubLedger struct {
	ledger.Service
	err   error
	calls int
}

func (l *stubLedger) TransferToken(_ context.Context, _, _, _ string) error {
	l.calls++
	return l.err
}

func TestNewValidatesRecipient(t *testing.T) {
	cases := []struct {
		to string
		ok bool
	}{
		{"USER42", true},
		{"abc1234", true},
		{"ab1", false},
		{"", false},
		{"user 42", false},
		{"user-42", false},
	}
	for _, tc := range cases {
		_, err := New("nft-1", "acct-1", tc.to)
		if tc.ok && err != nil {
			t.Fatalf("recipient %q: unexpected error %v", tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidRecipient) {
			t.Fatalf("recipient %q: expected ErrInvalidRecipient, got %v", tc.to, err)
		}
	}
}

func TestNewRequiresTokenAndSender(t *testing.T) {
	if _, err := New("", "acct-1", "USER42"); err == nil {
		t.Fatalf("missing token id must be rejected")
	}
	if _, err := New("nft-1", "", "USER42"); err == nil {
		t.Fatalf("missing sender must be rejected")
	}
}

func TestReferenceShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		intent, err := New("nft-1", "acct-1", "USER42")
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if len(intent.Reference) != 6 {
			t.Fatalf("reference must be 6 characters, got %q", intent.Reference)
		}
		for _, r := range intent.Reference {
			if !strings.ContainsRune(referenceChars, r) {
				t.Fatalf("reference %q contains %q outside the charset", intent.Reference, r)
			}
		}
	}
}

func TestConfirmHappyPath(t *testing.T) {
	backend := &stubLedger{}
	intent, err := New("nft-1", "acct-1", "USER42")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	confirmed, err := intent.Confirm(context.Background(), backend)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.State != StateConfirmed || !confirmed.Terminal() {
		t.Fatalf("expected terminal confirmed intent, got %+v", confirmed)
	}
	if backend.calls != 1 {
		t.Fatalf("exactly one ledger call expected, got %d", backend.calls)
	}
}

func TestConfirmFailureLeavesIntentInitiated(t *testing.T) {
	backend := &stubLedger{err: ledger.ErrUnavailable}
	intent, err := New("nft-1", "acct-1", "USER42")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	after, err := intent.Confirm(context.Background(), backend)
	if !errors.Is(err, ledger.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if after.State != StateInitiated || after.Terminal() {
		t.Fatalf("failed confirm must leave the intent live, got %+v", after)
	}
}

func TestTerminalIntentsRejectEvents(t *testing.T) {
	backend := &stubLedger{}
	intent, err := New("nft-1", "acct-1", "USER42")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	abandoned, err := intent.Abandon()
	if err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if _, err := abandoned.Confirm(context.Background(), backend); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("confirm after abandon: expected ErrInvalidTransition, got %v", err)
	}
	if backend.calls != 0 {
		t.Fatalf("terminal intent must not reach the ledger")
	}
	if _, err := abandoned.Abandon(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double abandon: expected ErrInvalidTransition, got %v", err)
	}
}
