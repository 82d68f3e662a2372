package models

import "time"

const AllProductsCategory = "All Products"

var DefaultRating = MustMoney("5")

// MaxQuantity bounds a single cart or order line.
const MaxQuantity = 10000

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name          string    `gorm:"not null"                          json:"name"`
	Description   string    `gorm:"not null"                          json:"description"`
	Price         Money     `gorm:"type:numeric(10,2);not null"       json:"price"`
	OriginalPrice *Money    `gorm:"type:numeric(10,2)"                json:"originalPrice"`
	ImageURL      string    `gorm:"column:image_url;not null"         json:"imageUrl"`
	Category      string    `gorm:"not null;index"                    json:"category"`
	Subcategory   *string   `json:"subcategory"`
	Badge         *string   `json:"badge"`
	Featured      bool      `gorm:"not null"                          json:"featured"`
	NewArrival    bool      `gorm:"not null"                          json:"newArrival"`
	InStock       bool      `gorm:"not null"                          json:"inStock"`
	Rating        Money     `gorm:"type:numeric(3,2);not null"        json:"rating"`
	CreatedAt     time.Time `gorm:"not null"                          json:"createdAt"`
}

func (Product) TableName() string {
	return "products"
}

type CartItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"                          json:"id"`
	CartID    string   `gorm:"not null;uniqueIndex:idx_cart_items_cart_product"  json:"cartId"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_cart_items_cart_product"  json:"productId"`
	Quantity  int      `gorm:"not null;check:quantity > 0"                       json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Order struct {
	ID         uint        `gorm:"primaryKey;autoIncrement"                       json:"id"`
	FirstName  string      `gorm:"not null"                                       json:"firstName"`
	LastName   string      `gorm:"not null"                                       json:"lastName"`
	Email      string      `gorm:"not null"                                       json:"email"`
	Phone      string      `gorm:"not null"                                       json:"phone"`
	Address    string      `gorm:"not null"                                       json:"address"`
	Apartment  *string     `json:"apartment"`
	City       string      `gorm:"not null"                                       json:"city"`
	State      string      `gorm:"not null"                                       json:"state"`
	PostalCode string      `gorm:"not null"                                       json:"postalCode"`
	Country    string      `gorm:"not null"                                       json:"country"`
	Total      Money       `gorm:"type:numeric(10,2);not null"                    json:"total"`
	CreatedAt  time.Time   `gorm:"not null;index"                                 json:"createdAt"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID          uint     `gorm:"primaryKey;autoIncrement"                          json:"id"`
	OrderID     uint     `gorm:"not null;index"                                    json:"orderId"`
	ProductID   uint     `gorm:"not null"                                          json:"productId"`
	ProductName string   `gorm:"not null"                                          json:"productName"`
	Price       Money    `gorm:"type:numeric(10,2);not null"                       json:"price"`
	Quantity    int      `gorm:"not null;check:quantity > 0"                       json:"quantity"`
	Product     *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() Money {
	return i.Price.Mul(decimalFromInt(i.Quantity))
}

func (i CartItem) LineTotal() Money {
	if i.Product == nil {
		return Money{}
	}
	return i.Product.Price.Mul(decimalFromInt(i.Quantity))
}

// ProductPatch holds the fields of a partial product update; nil means unchanged.
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *Money
	OriginalPrice *Money
	ImageURL      *string
	Category      *string
	Subcategory   *string
	Badge         *string
	Featured      *bool
	NewArrival    *bool
	InStock       *bool
	Rating        *Money
}

func (p ProductPatch) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		prod.OriginalPrice = &v
	}
	if p.ImageURL != nil {
		prod.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.Subcategory != nil {
		v := *p.Subcategory
		prod.Subcategory = &v
	}
	if p.Badge != nil {
		v := *p.Badge
		prod.Badge = &v
	}
	if p.Featured != nil {
		prod.Featured = *p.Featured
	}
	if p.NewArrival != nil {
		prod.NewArrival = *p.NewArrival
	}
	if p.InStock != nil {
		prod.InStock = *p.InStock
	}
	if p.Rating != nil {
		prod.Rating = *p.Rating
	}
}
