package catalog

import (
	"context"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for items
type ItemRepository interface {
	// FindByID finds an item by ID within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Item, error)

	// FindBySKU finds an item by SKU within an organization
	FindBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*Item, error)

	// FindAll lists items matching the filter
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[Item], error)

	// FindByConsignor lists a consignor's items
	FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[Item], error)

	// FindByStatus lists items in a given status
	FindByStatus(ctx context.Context, orgID uuid.UUID, status ItemStatus, filter shared.Filter) (*shared.Paginated[Item], error)

	// FindAvailableForStorefront lists available items for the public storefront
	FindAvailableForStorefront(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[Item], error)

	// ExistsBySKU checks whether a SKU is already used in an organization
	ExistsBySKU(ctx context.Context, orgID uuid.UUID, sku string) (bool, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete removes an item
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
