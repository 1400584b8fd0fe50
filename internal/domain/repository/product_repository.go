package repository

import (
	"context"

	"gomarket/internal/domain/entity"
)

// ProductRepository defines the inventory store operations.
type ProductRepository interface {
	// List returns all products in insertion order.
	List(ctx context.Context) ([]entity.Product, error)

	// GetByID returns (nil, nil) when the product does not exist.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)

	Create(ctx context.Context, p *entity.Product) error

	// DecrementIfSufficient atomically checks quantity >= amount and, only if
	// true, subtracts amount. It reports whether the decrement occurred.
	// The check and the write are one storage-level step; callers must never
	// read the quantity and write it back separately.
	DecrementIfSufficient(ctx context.Context, id int64, amount int64) (bool, error)
}
