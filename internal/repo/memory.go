package repo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/retailtrove/storefront/internal/models"
)

// MemoryRepo keeps everything in process memory. One mutex guards all maps so
// multi-step operations such as CreateOrder are atomic.
type MemoryRepo struct {
	mu sync.Mutex

	products   map[uint]models.Product
	cartItems  map[uint]models.CartItem
	orders     map[uint]models.Order
	orderItems map[uint][]models.OrderItem

	nextProductID   uint
	nextCartItemID  uint
	nextOrderID     uint
	nextOrderItemID uint

	now func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		products:        make(map[uint]models.Product),
		cartItems:       make(map[uint]models.CartItem),
		orders:          make(map[uint]models.Order),
		orderItems:      make(map[uint][]models.OrderItem),
		nextProductID:   1,
		nextCartItemID:  1,
		nextOrderID:     1,
		nextOrderItemID: 1,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryRepo) sortedProducts(keep func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range r.products {
		if keep == nil || keep(p) {
			out = append(out, copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedProducts(nil), nil
}

func (r *MemoryRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = copyProduct(p)
	return &p, nil
}

func (r *MemoryRepo) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedProducts(func(p models.Product) bool {
		return category == models.AllProductsCategory || p.Category == category
	}), nil
}

func (r *MemoryRepo) ListFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedProducts(func(p models.Product) bool { return p.Featured }), nil
}

func (r *MemoryRepo) ListNewArrivals(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedProducts(func(p models.Product) bool { return p.NewArrival }), nil
}

func (r *MemoryRepo) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(q))

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedProducts(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle)
	}), nil
}

func (r *MemoryRepo) GetProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	want := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedProducts(func(p models.Product) bool {
		_, ok := want[p.ID]
		return ok
	}), nil
}

func (r *MemoryRepo) CountProducts(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *MemoryRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prod.ID = r.nextProductID
	r.nextProductID++
	if prod.CreatedAt.IsZero() {
		prod.CreatedAt = r.now()
	}
	r.products[prod.ID] = copyProduct(*prod)
	return nil
}

func (r *MemoryRepo) UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = copyProduct(p)
	patch.Apply(&p)
	r.products[id] = p

	out := copyProduct(p)
	return &out, nil
}

func (r *MemoryRepo) DeleteProduct(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	for _, it := range r.cartItems {
		if it.ProductID == id {
			return fmt.Errorf("product %d: %w", id, ErrConflict)
		}
	}
	for _, items := range r.orderItems {
		for _, it := range items {
			if it.ProductID == id {
				return fmt.Errorf("product %d: %w", id, ErrConflict)
			}
		}
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryRepo) withProduct(it models.CartItem) (models.CartItem, bool) {
	p, ok := r.products[it.ProductID]
	if !ok {
		return it, false
	}
	p = copyProduct(p)
	it.Product = &p
	return it, true
}

func (r *MemoryRepo) ListCartItems(ctx context.Context, cartID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.CartItem{}
	for _, it := range r.cartItems {
		if it.CartID != cartID {
			continue
		}
		if full, ok := r.withProduct(it); ok {
			out = append(out, full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) AddCartItem(ctx context.Context, cartID string, productID uint, quantity int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return nil, ErrNotFound
	}

	for id, it := range r.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			if quantity > models.MaxQuantity-it.Quantity {
				return nil, ErrQuantityLimit
			}
			it.Quantity += quantity
			r.cartItems[id] = it
			full, _ := r.withProduct(it)
			return &full, nil
		}
	}

	if quantity > models.MaxQuantity {
		return nil, ErrQuantityLimit
	}
	it := models.CartItem{
		ID:        r.nextCartItemID,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	r.nextCartItemID++
	r.cartItems[it.ID] = it

	full, _ := r.withProduct(it)
	return &full, nil
}

func (r *MemoryRepo) UpdateCartItem(ctx context.Context, id uint, quantity int) (*models.CartItem, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.cartItems[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	if quantity <= 0 {
		delete(r.cartItems, id)
		return nil, true, nil
	}
	if quantity > models.MaxQuantity {
		return nil, false, ErrQuantityLimit
	}

	it.Quantity = quantity
	r.cartItems[id] = it
	full, _ := r.withProduct(it)
	return &full, false, nil
}

func (r *MemoryRepo) RemoveCartItem(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cartItems[id]; !ok {
		return false, nil
	}
	delete(r.cartItems, id)
	return true, nil
}

func (r *MemoryRepo) ClearCart(ctx context.Context, cartID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, it := range r.cartItems {
		if it.CartID == cartID {
			delete(r.cartItems, id)
			n++
		}
	}
	return n, nil
}

// CreateOrder checks every item before writing anything, matching the
// constraints the relational schema enforces.
func (r *MemoryRepo) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range items {
		if _, ok := r.products[it.ProductID]; !ok {
			return nil, fmt.Errorf("insert order items: item %d: product %d: %w", i, it.ProductID, ErrInvalidReference)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("insert order items: item %d: quantity must be positive", i)
		}
	}

	order.ID = r.nextOrderID
	r.nextOrderID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = r.now()
	}

	stored := make([]models.OrderItem, len(items))
	for i, it := range items {
		it.ID = r.nextOrderItemID
		r.nextOrderItemID++
		it.OrderID = order.ID
		it.Product = nil
		stored[i] = it
	}

	header := *order
	header.Items = nil
	r.orders[order.ID] = header
	r.orderItems[order.ID] = stored

	order.Items = append([]models.OrderItem(nil), stored...)
	return order, nil
}

func (r *MemoryRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Items = append([]models.OrderItem{}, r.orderItems[id]...)
	return &o, nil
}

func (r *MemoryRepo) ListOrders(ctx context.Context, page Page) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if page.Offset >= len(out) {
		return []models.Order{}, nil
	}
	out = out[max(page.Offset, 0):]
	if page.Limit > 0 && page.Limit < len(out) {
		out = out[:page.Limit]
	}
	return out, nil
}

func copyProduct(p models.Product) models.Product {
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		p.OriginalPrice = &v
	}
	if p.Subcategory != nil {
		v := *p.Subcategory
		p.Subcategory = &v
	}
	if p.Badge != nil {
		v := *p.Badge
		p.Badge = &v
	}
	return p
}
