package seed

import (
	"context"
	"fmt"

	"github.com/retailtrove/storefront/internal/models"
	"github.com/retailtrove/storefront/pkg/logging"
)

// Store is what seeding needs from the product repository.
type Store interface {
	CountProducts(ctx context.Context) (int64, error)
	CreateProduct(ctx context.Context, p *models.Product) error
}

// Indexer receives every seeded product; optional.
type Indexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
}

const imageParams = "?q=80&w=800&h=800&auto=format&fit=crop"

func image(photo string) string {
	return "https://images.unsplash.com/" + photo + imageParams
}

func ptr[T any](v T) *T { return &v }

func money(s string) *models.Money {
	m := models.MustMoney(s)
	return &m
}

// Products returns the sample catalog.
func Products() []models.Product {
	return []models.Product{
		{
			Name:          "Premium Watch",
			Description:   "Elegant premium watch with automatic movement and sapphire crystal.",
			Price:         models.MustMoney("299.99"),
			OriginalPrice: money("349.99"),
			ImageURL:      image("photo-1522312346375-d1a52e2b99b3"),
			Category:      "Accessories",
			Subcategory:   ptr("Watches"),
			Badge:         ptr("Sale"),
			Featured:      true,
			InStock:       true,
			Rating:        models.MustMoney("4.8"),
		},
		{
			Name:        "Leather Backpack",
			Description: "Handcrafted genuine leather backpack with multiple compartments.",
			Price:       models.MustMoney("159.99"),
			ImageURL:    image("photo-1548036328-c9fa89d128fa"),
			Category:    "Bags",
			Subcategory: ptr("Backpacks"),
			Featured:    true,
			InStock:     true,
			Rating:      models.MustMoney("4.6"),
		},
		{
			Name:          "Wireless Headphones",
			Description:   "Premium noise-cancelling wireless headphones with 30-hour battery life.",
			Price:         models.MustMoney("249.99"),
			OriginalPrice: money("299.99"),
			ImageURL:      image("photo-1505740420928-5e560c06d30e"),
			Category:      "Electronics",
			Subcategory:   ptr("Audio"),
			Badge:         ptr("Sale"),
			Featured:      true,
			InStock:       true,
			Rating:        models.MustMoney("4.9"),
		},
		{
			Name:        "Ceramic Coffee Mug",
			Description: "Handmade ceramic coffee mug with minimalist design.",
			Price:       models.MustMoney("24.99"),
			ImageURL:    image("photo-1514228742587-6b1558fcca3d"),
			Category:    "Home",
			Subcategory: ptr("Kitchenware"),
			InStock:     true,
			Rating:      models.MustMoney("4.7"),
		},
		{
			Name:        "Minimalist Tote Bag",
			Description: "Premium cotton tote bag with reinforced handles.",
			Price:       models.MustMoney("39.99"),
			ImageURL:    image("photo-1623831854743-8126a920d2ec"),
			Category:    "Bags",
			Subcategory: ptr("Totes"),
			NewArrival:  true,
			InStock:     true,
			Rating:      models.MustMoney("4.5"),
		},
		{
			Name:          "Smart Watch Pro",
			Description:   "Advanced smartwatch with heart rate monitoring and GPS.",
			Price:         models.MustMoney("199.99"),
			OriginalPrice: money("249.99"),
			ImageURL:      image("photo-1579586337278-3befd40fd17a"),
			Category:      "Electronics",
			Subcategory:   ptr("Wearables"),
			Badge:         ptr("Sale"),
			NewArrival:    true,
			InStock:       true,
			Rating:        models.MustMoney("4.8"),
		},
		{
			Name:        "Minimalist Lamp",
			Description: "Modern minimalist desk lamp with adjustable brightness.",
			Price:       models.MustMoney("89.99"),
			ImageURL:    image("photo-1507473885765-e6ed057f782c"),
			Category:    "Home",
			Subcategory: ptr("Lighting"),
			NewArrival:  true,
			InStock:     true,
			Rating:      models.MustMoney("4.6"),
		},
		{
			Name:          "Denim Jacket",
			Description:   "Classic denim jacket with modern fit.",
			Price:         models.MustMoney("79.99"),
			OriginalPrice: money("99.99"),
			ImageURL:      image("photo-1611312449408-fcece27cdbb7"),
			Category:      "Clothing",
			Subcategory:   ptr("Outerwear"),
			Badge:         ptr("Sale"),
			NewArrival:    true,
			InStock:       true,
			Rating:        models.MustMoney("4.7"),
		},
		{
			Name:        "Yoga Mat",
			Description: "Premium non-slip yoga mat with carrying strap.",
			Price:       models.MustMoney("49.99"),
			ImageURL:    image("photo-1599447292246-759abaa2be95"),
			Category:    "Fitness",
			Subcategory: ptr("Yoga"),
			InStock:     true,
			Rating:      models.MustMoney("4.8"),
		},
	}
}

// Seed loads the sample catalog into an empty store and reports how many
// products it created. A store that already has products is left alone.
func Seed(ctx context.Context, store Store, index Indexer) (int, error) {
	l := logging.FromContext(ctx)

	n, err := store.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		l.Info("seed_skipped", "reason", "products already exist", "count", n)
		return 0, nil
	}

	created := 0
	for _, p := range Products() {
		if err := store.CreateProduct(ctx, &p); err != nil {
			return created, fmt.Errorf("create %q: %w", p.Name, err)
		}
		created++
		if index != nil {
			if err := index.IndexProduct(ctx, p); err != nil {
				l.Warn("seed_index_error", "product_id", p.ID, "error", err)
			}
		}
	}

	l.Info("seed_done", "created", created)
	return created, nil
}
