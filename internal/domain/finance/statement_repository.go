package finance

import (
	"context"
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StatementRepository defines persistence operations for consignor statements
type StatementRepository interface {
	// FindByID finds a statement with its lines
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Statement, error)

	// FindByPeriod finds the statement for a consignor and exact period,
	// if one has been generated
	FindByPeriod(ctx context.Context, orgID, consignorID uuid.UUID, periodStart, periodEnd time.Time) (*Statement, error)

	// FindLatestBefore finds the most recent statement for a consignor
	// ending strictly before the given time, used to chain opening balances
	FindLatestBefore(ctx context.Context, orgID, consignorID uuid.UUID, before time.Time) (*Statement, error)

	// FindByConsignor lists a consignor's statements, newest first
	FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[Statement], error)

	// Save upserts a statement and replaces its lines. Regenerating a
	// period overwrites the earlier statement for that period.
	Save(ctx context.Context, statement *Statement) error

	// Delete removes a statement and its lines
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
