package service

import (
	"context"

	"product-catalog/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// Create persists a transient product and assigns its id. Any id
	// already set on the input is cleared first.
	Create(ctx context.Context, product *model.Product) error

	// Get retrieves a single product by id.
	Get(ctx context.Context, id int64) (*model.Product, error)

	// Update persists the product's field values against its existing
	// row. A product without an id is rejected before the store is
	// touched.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes the product with the given id. Deleting an absent
	// id is a success no-op.
	Delete(ctx context.Context, id int64) error

	// List retrieves every product.
	List(ctx context.Context) ([]model.Product, error)

	// FindByName retrieves all products whose name matches exactly.
	FindByName(ctx context.Context, name string) ([]model.Product, error)

	// FindByCategory retrieves all products in the given category.
	FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error)

	// FindByAvailability retrieves all products with the given availability.
	FindByAvailability(ctx context.Context, available bool) ([]model.Product, error)
}
