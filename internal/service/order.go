package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retailtrove/storefront/internal/models"
	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/transport"
	"github.com/retailtrove/storefront/pkg/logging"
)

type OrderService struct {
	Repo    repo.OrderStore
	TaxRate decimal.Decimal
	Events  EventPublisher
	Metrics Metrics
}

func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.Order == nil {
		return nil, fmt.Errorf("%w: order required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.Order.Total == nil || !req.Order.Total.InRange() {
		return nil, fmt.Errorf("%w: total must be between 0 and %s", ErrValidation, models.MaxAmount)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	subtotal := models.NewMoney(decimal.Zero)
	for i, in := range req.Items {
		if in.ProductID == 0 {
			return nil, fmt.Errorf("%w: items[%d].productId required", ErrValidation, i)
		}
		if in.Price == nil || !in.Price.InRange() {
			return nil, fmt.Errorf("%w: items[%d].price must be between 0 and %s", ErrValidation, i, models.MaxAmount)
		}
		qty := 1
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		if qty <= 0 || qty > models.MaxQuantity {
			return nil, fmt.Errorf("%w: items[%d].quantity must be between 1 and %d", ErrValidation, i, models.MaxQuantity)
		}

		item := models.OrderItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Price:       models.NewMoney(in.Price.Decimal),
			Quantity:    qty,
		}
		subtotal = subtotal.Add(item.LineTotal())
		items = append(items, item)
	}

	f := req.Order
	order := &models.Order{
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Email:      f.Email,
		Phone:      f.Phone,
		Address:    f.Address,
		Apartment:  f.Apartment,
		City:       f.City,
		State:      f.State,
		PostalCode: f.PostalCode,
		Country:    f.Country,
		Total:      models.NewMoney(f.Total.Decimal),
	}

	// The client computes the total; it is stored as sent.
	expected := subtotal.Add(subtotal.Mul(s.TaxRate))
	if !expected.Equal(order.Total) {
		logging.FromContext(ctx).Warn("order_total_mismatch",
			"submitted", order.Total.String(),
			"expected", expected.String(),
			"subtotal", subtotal.String(),
		)
	}

	created, err := s.Repo.CreateOrder(ctx, order, items)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidReference) {
			return nil, fmt.Errorf("%w: order references an unknown product", ErrValidation)
		}
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.OrderCreated()
	}
	publish(ctx, s.Events, TopicOrderEvents, fmt.Sprint(created.ID), map[string]any{
		"type":    "order_created",
		"orderID": created.ID,
		"total":   created.Total.String(),
		"items":   len(created.Items),
	})
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return o, err
}

// ListOrders returns orders newest first.
func (s *OrderService) ListOrders(ctx context.Context, page repo.Page) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, page)
}
