package store

import (
	"context"
	"sort"
	"sync"

	"cleanhome/internal/payment/models"
	"cleanhome/pkg/platform/sentinel"
)

type ledgerKey struct {
	txnRef        string
	transactionNo string
}

// InMemory is a process-local outcome ledger.
type InMemory struct {
	mu      sync.RWMutex
	records map[ledgerKey]models.Record
}

// NewInMemory creates an empty in-memory ledger.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[ledgerKey]models.Record)}
}

// Insert stores rec, or returns sentinel.ErrConflict if its
// (txnRef, transactionNo) pair is already present.
func (s *InMemory) Insert(_ context.Context, rec *models.Record) error {
	key := ledgerKey{rec.Outcome.ReferenceID, rec.Outcome.GatewayTransactionID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[key]; exists {
		return sentinel.ErrConflict
	}
	s.records[key] = *rec
	return nil
}

// ListByReference returns every record for txnRef, oldest first.
func (s *InMemory) ListByReference(_ context.Context, txnRef string) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, 0)
	for key, rec := range s.records {
		if key.txnRef == txnRef {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].Outcome.GatewayTransactionID < out[j].Outcome.GatewayTransactionID
		}
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	return out, nil
}
