package repository

import (
	"context"

	"gomarket/internal/domain/entity"
)

// OrderRepository defines the order ledger operations. The ledger is
// append-only; orders are never mutated or deleted.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error

	// ListByUser returns the caller's orders joined with the product name.
	ListByUser(ctx context.Context, userID int64) ([]entity.OrderLine, error)
}
