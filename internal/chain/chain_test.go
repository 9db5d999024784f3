package chain

import "testing"

func TestLogLinksBlocks(t *testing.T) {
	log := NewLog()
	first := log.Append(Transaction{Kind: KindCreateAccount, AccountID: "acct-1"})
	second := log.Append(Transaction{Kind: KindTransfer, From: "acct-1", To: "acct-2", TokenID: "nft_1"})

	if first.Index != 1 || second.Index != 2 {
		t.Fatalf("unexpected indexes %d, %d", first.Index, second.Index)
	}
	if second.PreviousHash != first.Hash {
		t.Fatalf("blocks not linked")
	}
	if !log.Verify() {
		t.Fatalf("freshly built log must verify")
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	log := NewLog()
	log.Append(Transaction{Kind: KindCreateAccount, AccountID: "acct-1"})
	log.Append(Transaction{Kind: KindMint, AccountID: "acct-1"})

	log.mu.Lock()
	log.blocks[1].Data.AccountID = "someone-else"
	log.mu.Unlock()

	if log.Verify() {
		t.Fatalf("tampered log must not verify")
	}
}
