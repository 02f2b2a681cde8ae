package finance

import (
	"context"
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PayoutRepository defines persistence operations for payouts
type PayoutRepository interface {
	// FindByID finds a payout by ID within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Payout, error)

	// FindByNumber finds a payout by its number
	FindByNumber(ctx context.Context, orgID uuid.UUID, number string) (*Payout, error)

	// FindAll lists payouts matching the filter
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[Payout], error)

	// FindByConsignor lists a consignor's payouts
	FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[Payout], error)

	// FindPaidByConsignorInPeriod lists a consignor's payouts paid within
	// [from, to], used when assembling statements
	FindPaidByConsignorInPeriod(ctx context.Context, orgID, consignorID uuid.UUID, from, to time.Time) ([]Payout, error)

	// NextPayoutNumber reserves the next sequential payout number
	NextPayoutNumber(ctx context.Context, orgID uuid.UUID) (string, error)

	// CreateWithClaims persists the payout and stamps its ID onto the
	// covered transactions in one atomic unit. Only transactions that are
	// still unclaimed are stamped; if any of them already belongs to
	// another payout the whole operation fails with ErrAlreadyPaidOut and
	// nothing is written.
	CreateWithClaims(ctx context.Context, payout *Payout, transactionIDs []uuid.UUID) error

	// CancelWithRelease saves the cancelled payout and clears the payout
	// link on its transactions in one atomic unit, making their shares
	// claimable by a future payout.
	CancelWithRelease(ctx context.Context, payout *Payout) error

	// Save creates or updates a payout
	Save(ctx context.Context, payout *Payout) error
}
