package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gomarket/internal/domain/apperr"
	"gomarket/internal/domain/entity"
	repo "gomarket/internal/domain/repository"
	"gomarket/pkg/events"
)

// EventPublisher publishes a JSON message to the order queue.
// *helpers.RabbitPublisher satisfies it; tests use fakes.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// OrderService orchestrates order placement: validate, look up the product,
// then run the conditional stock decrement and the ledger append inside one
// durable transaction. Either both writes commit or neither does.
type OrderService struct {
	Products  repo.ProductRepository
	Orders    repo.OrderRepository
	Tx        repo.Atomic
	Catalog   *CatalogService
	Publisher EventPublisher
	Logger    *logrus.Logger
}

func NewOrderService(products repo.ProductRepository, orders repo.OrderRepository, tx repo.Atomic, catalog *CatalogService, pub EventPublisher, logger *logrus.Logger) *OrderService {
	return &OrderService{Products: products, Orders: orders, Tx: tx, Catalog: catalog, Publisher: pub, Logger: logger}
}

// PlaceOrder reserves quantity units of a product for the caller.
//
// The decrement runs as one conditional UPDATE inside the transaction, so two
// concurrent requests can never both pass a stale stock check; whichever
// commits second sees the reduced quantity. On insufficient stock nothing is
// written and the caller owns the retry decision.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, productID, quantity int64) (*entity.Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", apperr.ErrValidation)
	}

	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrProductNotFound
	}

	order := &entity.Order{UserID: userID, ProductID: productID, Quantity: quantity}
	err = s.Tx.InTx(ctx, func(products repo.ProductRepository, orders repo.OrderRepository) error {
		ok, err := products.DecrementIfSufficient(ctx, productID, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInsufficientStock
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if s.Catalog != nil {
		s.Catalog.InvalidateListCache(ctx)
	}
	s.publishPlaced(ctx, order)

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"order_id":   order.ID,
			"user_id":    userID,
			"product_id": productID,
			"quantity":   quantity,
		}).Info("order placed")
	}
	return order, nil
}

// publishPlaced emits the order event after commit. Publishing is
// best-effort: the order already exists and a queue outage must not undo it.
func (s *OrderService) publishPlaced(ctx context.Context, o *entity.Order) {
	if s.Publisher == nil {
		return
	}
	ev := events.OrderPlaced{
		OrderID:   o.ID,
		UserID:    o.UserID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		PlacedAt:  time.Now().UTC(),
	}
	if err := s.Publisher.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("order event publish failed")
	}
}

// ListOrders returns the caller's orders joined with product names.
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]entity.OrderLine, error) {
	return s.Orders.ListByUser(ctx, userID)
}
