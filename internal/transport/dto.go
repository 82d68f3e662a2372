package transport

import (
	"time"

	"github.com/retailtrove/storefront/internal/models"
)

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type AddCartItemRequest struct {
	CartID    string `json:"cartId"    validate:"required,max=128"`
	ProductID uint   `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity"  validate:"omitempty,min=1,max=10000"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=10000"`
}

type ClearCartResponse struct {
	Removed int64 `json:"removed"`
}

type CartSummary struct {
	CartID    string            `json:"cartId"`
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Subtotal  models.Money      `json:"subtotal"`
	TaxRate   string            `json:"taxRate"`
	Tax       models.Money      `json:"tax"`
	Total     models.Money      `json:"total"`
}

type OrderForm struct {
	FirstName  string        `json:"firstName"  validate:"required,max=100"`
	LastName   string        `json:"lastName"   validate:"required,max=100"`
	Email      string        `json:"email"      validate:"required,email"`
	Phone      string        `json:"phone"      validate:"required,max=40"`
	Address    string        `json:"address"    validate:"required"`
	Apartment  *string       `json:"apartment"`
	City       string        `json:"city"       validate:"required"`
	State      string        `json:"state"      validate:"required"`
	PostalCode string        `json:"postalCode" validate:"required,max=20"`
	Country    string        `json:"country"    validate:"required"`
	Total      *models.Money `json:"total"      validate:"gte=0,lt=100000000"`
}

type OrderItemInput struct {
	ProductID   uint          `json:"productId"   validate:"required"`
	ProductName string        `json:"productName" validate:"required"`
	Price       *models.Money `json:"price"       validate:"gte=0,lt=100000000"`
	Quantity    *int          `json:"quantity"    validate:"omitempty,min=1,max=10000"`
}

type CreateOrderRequest struct {
	Order *OrderForm       `json:"order" validate:"required"`
	Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type CreateProductRequest struct {
	Name          string        `json:"name"          validate:"required,max=200"`
	Description   string        `json:"description"   validate:"required"`
	Price         *models.Money `json:"price"         validate:"gte=0,lt=100000000"`
	OriginalPrice *models.Money `json:"originalPrice" validate:"omitempty,gte=0,lt=100000000"`
	ImageURL      string        `json:"imageUrl"      validate:"required,url"`
	Category      string        `json:"category"      validate:"required,ne=All Products"`
	Subcategory   *string       `json:"subcategory"`
	Badge         *string       `json:"badge"`
	Featured      *bool         `json:"featured"`
	NewArrival    *bool         `json:"newArrival"`
	InStock       *bool         `json:"inStock"`
	Rating        *models.Money `json:"rating"        validate:"omitempty,gte=0,lte=5"`
}

type PatchProductRequest struct {
	Name          *string       `json:"name"          validate:"omitempty,min=1,max=200"`
	Description   *string       `json:"description"   validate:"omitempty,min=1"`
	Price         *models.Money `json:"price"         validate:"omitempty,gte=0,lt=100000000"`
	OriginalPrice *models.Money `json:"originalPrice" validate:"omitempty,gte=0,lt=100000000"`
	ImageURL      *string       `json:"imageUrl"      validate:"omitempty,url"`
	Category      *string       `json:"category"      validate:"omitempty,min=1,ne=All Products"`
	Subcategory   *string       `json:"subcategory"`
	Badge         *string       `json:"badge"`
	Featured      *bool         `json:"featured"`
	NewArrival    *bool         `json:"newArrival"`
	InStock       *bool         `json:"inStock"`
	Rating        *models.Money `json:"rating"        validate:"omitempty,gte=0,lte=5"`
}

func (r PatchProductRequest) Patch() models.ProductPatch {
	return models.ProductPatch{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		ImageURL:      r.ImageURL,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Badge:         r.Badge,
		Featured:      r.Featured,
		NewArrival:    r.NewArrival,
		InStock:       r.InStock,
		Rating:        r.Rating,
	}
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
