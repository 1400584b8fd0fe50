package entity

import "time"

// Order records a single successful placement. The quantity is the amount
// reserved at order time and is never re-derived later.
type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderLine is the caller-facing view of an order, joined with the product name.
type OrderLine struct {
	ID       int64  `json:"id"`
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}
