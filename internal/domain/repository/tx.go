package repository

import "context"

// Atomic runs a function against repositories bound to a single durable
// transaction. Either every write inside fn commits or none does; a stock
// decrement can therefore never be left without its paired ledger append.
type Atomic interface {
	InTx(ctx context.Context, fn func(products ProductRepository, orders OrderRepository) error) error
}
