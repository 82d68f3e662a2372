package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/retailtrove/storefront/internal/models"
	"github.com/retailtrove/storefront/internal/repo"
	"github.com/retailtrove/storefront/internal/transport"
	"github.com/retailtrove/storefront/pkg/logging"
)

// ProductIndex is an external full-text index kept in sync with admin writes.
type ProductIndex interface {
	SearchProductIDs(ctx context.Context, q string) ([]uint, error)
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type CatalogService struct {
	Repo   repo.ProductStore
	Index  ProductIndex
	Events EventPublisher
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.Repo.ListProductsByCategory(ctx, category)
}

func (s *CatalogService) ListFeatured(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListFeaturedProducts(ctx)
}

func (s *CatalogService) ListNewArrivals(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListNewArrivals(ctx)
}

// Search asks the index first when one is configured and falls back to the
// store when the index is unreachable.
func (s *CatalogService) Search(ctx context.Context, q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" || s.Index == nil {
		return s.Repo.SearchProducts(ctx, q)
	}

	ids, err := s.Index.SearchProductIDs(ctx, q)
	if err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "reason", "falling back to store", "error", err)
		return s.Repo.SearchProducts(ctx, q)
	}
	return s.Repo.GetProductsByIDs(ctx, ids)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price == nil || !req.Price.InRange() {
		return nil, fmt.Errorf("%w: price must be between 0 and %s", ErrValidation, models.MaxAmount)
	}
	if req.OriginalPrice != nil && !req.OriginalPrice.InRange() {
		return nil, fmt.Errorf("%w: originalPrice must be between 0 and %s", ErrValidation, models.MaxAmount)
	}

	prod := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         models.NewMoney(req.Price.Decimal),
		OriginalPrice: req.OriginalPrice,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Badge:         req.Badge,
		Featured:      boolOr(req.Featured, false),
		NewArrival:    boolOr(req.NewArrival, false),
		InStock:       boolOr(req.InStock, true),
		Rating:        models.DefaultRating,
	}
	if req.Rating != nil {
		if err := checkRating(*req.Rating); err != nil {
			return nil, err
		}
		prod.Rating = *req.Rating
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	s.index(ctx, prod)
	publish(ctx, s.Events, TopicProductEvents, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return &prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	if patch.Price != nil && !patch.Price.InRange() {
		return nil, fmt.Errorf("%w: price must be between 0 and %s", ErrValidation, models.MaxAmount)
	}
	if patch.OriginalPrice != nil && !patch.OriginalPrice.InRange() {
		return nil, fmt.Errorf("%w: originalPrice must be between 0 and %s", ErrValidation, models.MaxAmount)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if patch.Rating != nil {
		if err := checkRating(*patch.Rating); err != nil {
			return nil, err
		}
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	s.index(ctx, *prod)
	publish(ctx, s.Events, TopicProductEvents, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		case errors.Is(err, repo.ErrConflict):
			return fmt.Errorf("product %d is in a cart or order: %w", id, ErrConflict)
		}
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_delete_error", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

// Reindex pushes every stored product to the index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range items {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			return 0, fmt.Errorf("index product %d: %w", p.ID, err)
		}
	}
	return len(items), nil
}

func (s *CatalogService) index(ctx context.Context, p models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "product_id", p.ID, "error", err)
	}
}

var maxRating = models.MustMoney("5")

func checkRating(r models.Money) error {
	if r.IsNegative() || r.GreaterThan(maxRating.Decimal) {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
