package document

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/profile"
)

// Cache mirrors the account's remote token state for listing and detail
// views. One instance per session; reads return derived slices and never
// expose or mutate the backing collection.
type Cache struct {
	ledger ledger.Service
	logger *slog.Logger

	mu      sync.RWMutex
	records []Record
}

// NewCache builds an empty cache over the given ledger client.
func NewCache(ledgerSvc ledger.Service, logger *slog.Logger) *Cache {
	return &Cache{ledger: ledgerSvc, logger: logger}
}

// Load reconciles the cache from the ledger's listing endpoint. It fails
// softly: on a listing error the cache is reset to empty and the error is
// returned as a warning for the caller to surface; the session continues
// with a degraded, empty view. Tokens whose metadata does not reconcile
// are skipped and logged.
func (c *Cache) Load(ctx context.Context, accountID string) error {
	tokens, err := c.ledger.ListTokens(ctx, accountID)
	if err != nil {
		c.mu.Lock()
		c.records = nil
		c.mu.Unlock()
		c.logger.Warn("document listing degraded to empty view", "account", accountID, "error", err)
		return err
	}

	records := make([]Record, 0, len(tokens))
	for _, token := range tokens {
		rec, err := reconcile(token)
		if err != nil {
			c.logger.Warn("skipping unreconcilable token", "token", token.ID, "error", err)
			continue
		}
		records = append(records, rec)
	}

	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
	return nil
}

// Append records a document after successful issuance. Failed issuances
// must never reach the cache.
func (c *Cache) Append(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
}

// All returns a copy of every cached record in insertion order.
func (c *Cache) All() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// ByVariant returns the records scoped to one profile variant, preserving
// insertion order.
func (c *Cache) ByVariant(v profile.Variant) []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Record, 0, len(c.records))
	for _, rec := range c.records {
		if rec.OwnerVariant == v {
			out = append(out, rec)
		}
	}
	return out
}

// SortedByDate returns the variant's records ordered by capture time. The
// sort is stable and operates on a copy.
func (c *Cache) SortedByDate(v profile.Variant, descending bool) []Record {
	out := c.ByVariant(v)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Get finds a cached record by its local document id.
func (c *Cache) Get(id string) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, rec := range c.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

func reconcile(token ledger.Token) (Record, error) {
	docType, err := TypeFromCode(token.Metadata.DocumentType)
	if err != nil {
		return Record{}, err
	}
	variant, err := profile.ParseVariant(token.Metadata.ProfileType)
	if err != nil {
		return Record{}, err
	}
	image, err := DecodeImage(token.Metadata.Image)
	if err != nil {
		return Record{}, err
	}
	createdAt, err := time.Parse(TimeLayout, token.Metadata.DateAdded)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:           token.Metadata.ID,
		Type:         docType,
		Image:        image,
		CreatedAt:    createdAt,
		OwnerVariant: variant,
		TokenID:      token.ID,
	}, nil
}
