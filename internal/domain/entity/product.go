package entity

import "time"

// Product is a catalog item with a finite quantity on hand.
// Quantity is only ever mutated by the conditional decrement that backs
// order placement, so it can never go negative.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
