package repository

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
)

// TransactionLedger stages pending payments as expiring hashes
type TransactionLedger struct {
	store       persistence.KVStore
	logger      coreport.Logger
	errorMapper *ErrorMapper
}

// NewTransactionLedger creates a ledger on top of store
func NewTransactionLedger(store persistence.KVStore, logger coreport.Logger) *TransactionLedger {
	return &TransactionLedger{
		store:       store,
		logger:      logger,
		errorMapper: NewErrorMapper(),
	}
}

// Stage writes the transaction hash and its TTL in one batch
func (l *TransactionLedger) Stage(ctx context.Context, txn *entity.Transaction, ttl time.Duration) error {
	fields, err := encodeTransaction(txn)
	if err != nil {
		return err
	}

	key := TransactionKey(txn.ID)
	err = l.store.Watch(ctx, func(tx persistence.KVTx) error {
		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.HSet(key, fields)
			b.Expire(key, ttl)
			return nil
		})
	}, key)
	if err != nil {
		l.logger.Error("Failed to stage transaction", map[string]any{
			"transaction_id": txn.ID,
			"user_id":        txn.UserID,
			"error":          err.Error(),
		})
		return l.errorMapper.MapStoreError(err, "stage transaction")
	}

	l.logger.Debug("Transaction staged", map[string]any{
		"transaction_id": txn.ID,
		"user_id":        txn.UserID,
		"place_id":       txn.PlaceID(),
		"ttl_seconds":    int(ttl.Seconds()),
	})
	return nil
}

// Retrieve reads a staged transaction
func (l *TransactionLedger) Retrieve(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	h, err := l.store.HGetAll(ctx, TransactionKey(transactionID))
	if err != nil {
		return nil, l.errorMapper.MapStoreError(err, "retrieve transaction")
	}
	if len(h) == 0 {
		return nil, errs.ErrTransactionNotFound
	}
	return decodeTransaction(transactionID, h)
}
