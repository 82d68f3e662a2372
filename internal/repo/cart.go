package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailtrove/storefront/internal/models"
)

// ListCartItems returns the cart's items with their product embedded. Items
// whose product is gone are left out by the inner join.
func (r *GormRepo) ListCartItems(ctx context.Context, cartID string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.DB.WithContext(ctx).
		InnerJoins("Product").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem inserts the item or, when the cart already holds the product,
// adds quantity to the existing row in the same statement.
func (r *GormRepo) AddCartItem(ctx context.Context, cartID string, productID uint, quantity int) (*models.CartItem, error) {
	var out models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			return translate(err)
		}

		item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(&item).Error
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&out).Error; err != nil {
			return err
		}
		if out.Quantity > models.MaxQuantity {
			return ErrQuantityLimit
		}
		out.Product = &product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepo) UpdateCartItem(ctx context.Context, id uint, quantity int) (*models.CartItem, bool, error) {
	var item models.CartItem
	removed := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			return translate(err)
		}
		if quantity <= 0 {
			if err := tx.Delete(&models.CartItem{}, id).Error; err != nil {
				return err
			}
			removed = true
			return nil
		}
		if quantity > models.MaxQuantity {
			return ErrQuantityLimit
		}

		if err := tx.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error; err != nil {
			return err
		}
		item.Quantity = quantity

		var product models.Product
		if err := tx.Where("id = ?", item.ProductID).First(&product).Error; err != nil {
			return translate(err)
		}
		item.Product = &product
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if removed {
		return nil, true, nil
	}
	return &item, false, nil
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.CartItem{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
