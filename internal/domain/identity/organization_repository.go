package identity

import (
	"context"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrganizationRepository defines persistence operations for organizations
type OrganizationRepository interface {
	// FindByID finds an organization by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)

	// FindBySlug finds an organization by its storefront slug
	FindBySlug(ctx context.Context, slug string) (*Organization, error)

	// FindByStripeCustomerID finds the organization linked to a payment
	// provider customer, used by the billing webhook
	FindByStripeCustomerID(ctx context.Context, customerID string) (*Organization, error)

	// FindAll lists organizations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Organization, error)

	// ExistsBySlug checks whether a slug is already taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save creates or updates an organization
	Save(ctx context.Context, org *Organization) error

	// Delete removes an organization
	Delete(ctx context.Context, id uuid.UUID) error
}
