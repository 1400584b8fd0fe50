// Package events holds the message shapes exchanged over the order queue.
package events

import "time"

// TopSellersKey is the redis sorted set the worker increments per placed
// order and the catalog reads for the top-sellers board. Producer and
// consumer must agree on it.
const TopSellersKey = "products:top"

// OrderPlaced is published after an order transaction commits. Consumers
// (cmd/worker) use it to maintain the top-sellers board; delivery is
// best-effort and never blocks or fails an order.
type OrderPlaced struct {
	OrderID   int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	PlacedAt  time.Time `json:"placed_at"`
}
