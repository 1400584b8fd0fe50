package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gomarket/internal/domain/repository"
)

// TxManager binds repositories to a single pgx transaction for the duration
// of fn. Rollback on a committed transaction is a no-op, so the deferred
// rollback only fires when fn or Commit fails.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

func (m *TxManager) InTx(ctx context.Context, fn func(products repository.ProductRepository, orders repository.OrderRepository) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewOrderRepository(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ repository.Atomic = (*TxManager)(nil)
