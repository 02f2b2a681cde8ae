package trade

import (
	"context"
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionRepository defines persistence operations for sale transactions
type TransactionRepository interface {
	// FindByID finds a transaction by ID within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Transaction, error)

	// FindByNumber finds a transaction by its receipt number
	FindByNumber(ctx context.Context, orgID uuid.UUID, number string) (*Transaction, error)

	// FindAll lists transactions matching the filter
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[Transaction], error)

	// FindByConsignor lists a consignor's transactions
	FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[Transaction], error)

	// FindUnpaidByConsignor lists transactions whose consignor share has not
	// been included in any payout yet
	FindUnpaidByConsignor(ctx context.Context, orgID, consignorID uuid.UUID) ([]Transaction, error)

	// FindByConsignorInPeriod lists a consignor's transactions sold within
	// the inclusive time range, used by statement generation
	FindByConsignorInPeriod(ctx context.Context, orgID, consignorID uuid.UUID, from, to time.Time) ([]Transaction, error)

	// FindByPayout lists the transactions included in a payout
	FindByPayout(ctx context.Context, orgID, payoutID uuid.UUID) ([]Transaction, error)

	// NextTransactionNumber reserves the next sequential receipt number
	NextTransactionNumber(ctx context.Context, orgID uuid.UUID) (string, error)

	// CreateWithItemSold writes the sale transaction and flips its item
	// from available to sold in one atomic unit. An item that is no
	// longer available fails the whole write.
	CreateWithItemSold(ctx context.Context, txn *Transaction) error

	// Save creates or updates a transaction
	Save(ctx context.Context, txn *Transaction) error
}
