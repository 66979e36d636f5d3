package service

import (
	"context"
	"fmt"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create persists a transient product and assigns its id.
func (s *productService) Create(ctx context.Context, product *model.Product) error {
	// Ids come from the store; whatever the caller supplied is cleared.
	product.ID = 0

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return nil
}

// Get retrieves a single product by id.
func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Update persists the product's field values against its existing row.
func (s *productService) Update(ctx context.Context, product *model.Product) error {
	if product.ID == 0 {
		s.logger.Warn().Str("name", product.Name).Msg("update called with empty id field")
		return model.NewValidationError("update called with empty id field")
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if err == model.ErrProductNotFound {
			s.logger.Debug().Int64("product_id", product.ID).Msg("product to update not found")
			return err
		}
		s.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Msg("product updated")

	return nil
}

// Delete removes the product with the given id. The not-found check
// happens here so an absent id stays a success no-op.
func (s *productService) Delete(ctx context.Context, id int64) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to look up product for delete")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product to delete not found, nothing to do")
		return nil
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}

// List retrieves every product.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.All(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("listed products")

	return products, nil
}

// FindByName retrieves all products whose name matches exactly.
func (s *productService) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	products, err := s.productRepo.FindByName(ctx, name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to find products by name")
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}

	s.logger.Debug().Str("name", name).Int("count", len(products)).Msg("found products by name")

	return products, nil
}

// FindByCategory retrieves all products in the given category.
func (s *productService) FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	products, err := s.productRepo.FindByCategory(ctx, category)
	if err != nil {
		s.logger.Error().Err(err).Stringer("category", category).Msg("failed to find products by category")
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}

	s.logger.Debug().Stringer("category", category).Int("count", len(products)).Msg("found products by category")

	return products, nil
}

// FindByAvailability retrieves all products with the given availability.
func (s *productService) FindByAvailability(ctx context.Context, available bool) ([]model.Product, error) {
	products, err := s.productRepo.FindByAvailability(ctx, available)
	if err != nil {
		s.logger.Error().Err(err).Bool("available", available).Msg("failed to find products by availability")
		return nil, fmt.Errorf("failed to find products by availability: %w", err)
	}

	s.logger.Debug().Bool("available", available).Int("count", len(products)).Msg("found products by availability")

	return products, nil
}
