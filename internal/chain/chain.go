package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
)

// Kind discriminates the transactions recorded on the block log.
type Kind string

const (
	KindCreateAccount Kind = "create_account"
	KindMint          Kind = "mint"
	KindTransfer      Kind = "transfer"
)

// Transaction is one recorded ledger event. Exactly the fields for its
// kind are populated; the rest stay empty on the wire.
type Transaction struct {
	Kind      Kind          `json:"kind"`
	AccountID string        `json:"account_id,omitempty"`
	Token     *ledger.Token `json:"token,omitempty"`
	From      string        `json:"from,omitempty"`
	To        string        `json:"to,omitempty"`
	TokenID   string        `json:"token_id,omitempty"`
}

// Block is one hash-linked entry of the log.
type Block struct {
	Index        uint64      `json:"index"`
	Timestamp    int64       `json:"timestamp"`
	Data         Transaction `json:"data"`
	PreviousHash string      `json:"previous_hash"`
	Hash         string      `json:"hash"`
}

// Log is an append-only block log linking each entry to its predecessor by
// sha256. It records what the devledger did; account and token state live
// in the in-memory ledger it fronts.
type Log struct {
	mu     sync.RWMutex
	blocks []Block
}

// NewLog creates a log holding only the genesis block.
func NewLog() *Log {
	l := &Log{}
	genesis := newBlock(0, Transaction{Kind: KindCreateAccount, AccountID: "genesis"}, "0")
	l.blocks = append(l.blocks, genesis)
	return l
}

// Append records a transaction as a new block and returns it.
func (l *Log) Append(tx Transaction) Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.blocks[len(l.blocks)-1]
	block := newBlock(prev.Index+1, tx, prev.Hash)
	l.blocks = append(l.blocks, block)
	return block
}

// Blocks returns a copy of the full log, genesis first.
func (l *Log) Blocks() []Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Block, len(l.blocks))
	copy(out, l.blocks)
	return out
}

// Verify recomputes every hash and link; it reports false as soon as any
// block fails to match.
func (l *Log) Verify() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, block := range l.blocks {
		if block.Hash != hashBlock(block.Index, block.Timestamp, block.Data, block.PreviousHash) {
			return false
		}
		if i > 0 && block.PreviousHash != l.blocks[i-1].Hash {
			return false
		}
	}
	return true
}

func newBlock(index uint64, tx Transaction, previousHash string) Block {
	timestamp := time.Now().Unix()
	return Block{
		Index:        index,
		Timestamp:    timestamp,
		Data:         tx,
		PreviousHash: previousHash,
		Hash:         hashBlock(index, timestamp, tx, previousHash),
	}
}

func hashBlock(index uint64, timestamp int64, tx Transaction, previousHash string) string {
	data, _ := json.Marshal(tx)
	input := fmt.Sprintf("%d%d%s%s", index, timestamp, data, previousHash)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
