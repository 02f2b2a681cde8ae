package identity

import (
	"context"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// FindByID finds a user by ID within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within an organization
	FindByEmail(ctx context.Context, orgID uuid.UUID, email string) (*User, error)

	// FindByEmailGlobal finds a user by email across organizations, used at login
	// before the organization context is established
	FindByEmailGlobal(ctx context.Context, email string) (*User, error)

	// FindAll lists users in an organization matching the filter
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]User, error)

	// ExistsByEmail checks whether an email is already registered in an organization
	ExistsByEmail(ctx context.Context, orgID uuid.UUID, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete removes a user
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
