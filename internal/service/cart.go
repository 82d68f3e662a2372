package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/retailtrove/storefront/internal/models"
	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/transport"
)

type CartService struct {
	Repo    repo.CartStore
	TaxRate decimal.Decimal
	Events  EventPublisher
	Metrics Metrics
}

func (s *CartService) GetCart(ctx context.Context, cartID string) ([]models.CartItem, error) {
	return s.Repo.ListCartItems(ctx, cartID)
}

func (s *CartService) AddToCart(ctx context.Context, cartID string, productID uint, quantity int) (*models.CartItem, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, fmt.Errorf("%w: cartId required", ErrValidation)
	}
	if productID == 0 {
		return nil, fmt.Errorf("%w: productId required", ErrValidation)
	}
	if quantity <= 0 || quantity > models.MaxQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrValidation, models.MaxQuantity)
	}

	item, err := s.Repo.AddCartItem(ctx, cartID, productID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		case errors.Is(err, repo.ErrQuantityLimit):
			return nil, fmt.Errorf("%w: cart line would exceed %d units", ErrValidation, models.MaxQuantity)
		}
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.CartItemAdded(quantity)
	}
	publish(ctx, s.Events, TopicCartEvents, cartID, map[string]any{
		"type":      "cart_item_added",
		"cartID":    cartID,
		"productID": productID,
		"quantity":  item.Quantity,
	})
	return item, nil
}

// UpdateQuantity overwrites the quantity; quantity <= 0 removes the item and
// reports removed=true.
func (s *CartService) UpdateQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, bool, error) {
	if quantity > models.MaxQuantity {
		return nil, false, fmt.Errorf("%w: quantity must be at most %d", ErrValidation, models.MaxQuantity)
	}
	item, removed, err := s.Repo.UpdateCartItem(ctx, id, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, false, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
		case errors.Is(err, repo.ErrQuantityLimit):
			return nil, false, fmt.Errorf("%w: quantity must be at most %d", ErrValidation, models.MaxQuantity)
		}
		return nil, false, err
	}

	event := map[string]any{"type": "cart_item_updated", "itemID": id, "quantity": quantity}
	key := fmt.Sprint(id)
	if removed {
		event = map[string]any{"type": "cart_item_removed", "itemID": id}
	} else {
		key = item.CartID
		event["cartID"] = item.CartID
	}
	publish(ctx, s.Events, TopicCartEvents, key, event)
	return item, removed, nil
}

func (s *CartService) RemoveItem(ctx context.Context, id uint) (bool, error) {
	ok, err := s.Repo.RemoveCartItem(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		publish(ctx, s.Events, TopicCartEvents, fmt.Sprint(id), map[string]any{
			"type":   "cart_item_removed",
			"itemID": id,
		})
	}
	return ok, nil
}

func (s *CartService) ClearCart(ctx context.Context, cartID string) (int64, error) {
	n, err := s.Repo.ClearCart(ctx, cartID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		publish(ctx, s.Events, TopicCartEvents, cartID, map[string]any{
			"type":    "cart_cleared",
			"cartID":  cartID,
			"removed": n,
		})
	}
	return n, nil
}

func (s *CartService) Summary(ctx context.Context, cartID string) (*transport.CartSummary, error) {
	items, err := s.Repo.ListCartItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	subtotal := Subtotal(items)
	tax := subtotal.Mul(s.TaxRate)
	count := 0
	for _, it := range items {
		count += it.Quantity
	}

	return &transport.CartSummary{
		CartID:    cartID,
		Items:     items,
		ItemCount: count,
		Subtotal:  subtotal,
		TaxRate:   s.TaxRate.String(),
		Tax:       tax,
		Total:     subtotal.Add(tax),
	}, nil
}

// Subtotal sums live product price times quantity.
func Subtotal(items []models.CartItem) models.Money {
	sum := models.NewMoney(decimal.Zero)
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}
