package repo

import (
	"context"
	"errors"

	"github.com/retailtrove/storefront/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record is referenced")
	// ErrInvalidReference means a row points at a product that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrQuantityLimit means a merge would push a line past models.MaxQuantity.
	ErrQuantityLimit = errors.New("quantity exceeds limit")
)

type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	ListFeaturedProducts(ctx context.Context) ([]models.Product, error)
	ListNewArrivals(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, q string) ([]models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	CreateProduct(ctx context.Context, prod *models.Product) error
	UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type CartStore interface {
	ListCartItems(ctx context.Context, cartID string) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, cartID string, productID uint, quantity int) (*models.CartItem, error)
	// UpdateCartItem deletes the item when quantity <= 0 and reports removed=true.
	UpdateCartItem(ctx context.Context, id uint, quantity int) (item *models.CartItem, removed bool, err error)
	RemoveCartItem(ctx context.Context, id uint) (bool, error)
	ClearCart(ctx context.Context, cartID string) (int64, error)
}

type OrderStore interface {
	// CreateOrder persists the header and its items atomically.
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, page Page) ([]models.Order, error)
}

// Page selects a window of a listing; Limit <= 0 returns everything from Offset.
type Page struct {
	Offset int
	Limit  int
}

type Store interface {
	ProductStore
	CartStore
	OrderStore
	Ping(ctx context.Context) error
}

var (
	_ Store = (*GormRepo)(nil)
	_ Store = (*MemoryRepo)(nil)
)
