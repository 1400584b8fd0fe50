package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"gomarket/internal/domain/entity"
	"gomarket/internal/domain/repository"
)

type ProductRepository struct {
	db DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, quantity, created_at
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p := &entity.Product{}

	row := r.db.QueryRow(ctx, `
		SELECT id, name, price, quantity, created_at
		FROM products
		WHERE id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO products (name, price, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, p.Name, p.Price, p.Quantity)

	return row.Scan(&p.ID, &p.CreatedAt)
}

// DecrementIfSufficient is a single conditional UPDATE: the quantity check and
// the subtraction happen in one statement under the row lock the UPDATE takes.
// Concurrent decrements on the same product serialize on that lock, so the
// quantity can never be driven negative by a check-then-act race.
func (r *ProductRepository) DecrementIfSufficient(ctx context.Context, id int64, amount int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET quantity = quantity - $2
		WHERE id = $1 AND quantity >= $2
	`, id, amount)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
