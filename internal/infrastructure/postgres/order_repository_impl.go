package postgres

import (
	"context"

	"gomarket/internal/domain/entity"
	"gomarket/internal/domain/repository"
)

type OrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, o.UserID, o.ProductID, o.Quantity)

	return row.Scan(&o.ID, &o.CreatedAt)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]entity.OrderLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, p.name, o.quantity
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.user_id = $1
		ORDER BY o.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]entity.OrderLine, 0)
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.Product, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
