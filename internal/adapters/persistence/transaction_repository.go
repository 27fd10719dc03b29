package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-go/internal/domain/ledger"
)

// GormTransactionStore implements the append_transaction half of
// TransactionStore using GORM, grounded on the teacher's
// GormTransactionRepository, trimmed to spec.md §3's leaner field set with
// Category retained (expansion) for credits-changed bookkeeping.
type GormTransactionStore struct {
	db *gorm.DB
}

func NewGormTransactionStore(db *gorm.DB) *GormTransactionStore {
	return &GormTransactionStore{db: db}
}

// AppendTransaction records an immutable purchase/sell event. Never mutated
// or upserted afterwards.
func (r *GormTransactionStore) AppendTransaction(ctx context.Context, userID int, shipID string, kind ledger.TransactionType, good string, pricePerUnit, quantity, total int, locationSymbol string) error {
	category, err := kind.ToCategory()
	if err != nil {
		return NewConstraintError("unmapped transaction category", err)
	}

	model := &TransactionModel{
		ID:             ledger.NewTransactionID().String(),
		UserID:         userID,
		ShipID:         shipID,
		Kind:           kind.String(),
		Category:       category.String(),
		Good:           good,
		PricePerUnit:   pricePerUnit,
		Quantity:       quantity,
		Total:          total,
		LocationSymbol: locationSymbol,
	}
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return NewTransportError("append transaction", result.Error)
	}
	return nil
}
