package consignment

import (
	"context"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ConsignorRepository defines persistence operations for consignors
type ConsignorRepository interface {
	// FindByID finds a consignor by ID within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Consignor, error)

	// FindByCode finds a consignor by code within an organization
	FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*Consignor, error)

	// FindAll lists consignors matching the filter
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[Consignor], error)

	// FindByStatus lists consignors in a given status
	FindByStatus(ctx context.Context, orgID uuid.UUID, status ConsignorStatus, filter shared.Filter) (*shared.Paginated[Consignor], error)

	// ExistsByCode checks whether a code is already taken in an organization
	ExistsByCode(ctx context.Context, orgID uuid.UUID, code string) (bool, error)

	// Save creates or updates a consignor
	Save(ctx context.Context, consignor *Consignor) error

	// Delete removes a consignor
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
