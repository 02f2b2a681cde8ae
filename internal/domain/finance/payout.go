package finance

import (
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PayoutStatus represents where a payout is in its lifecycle
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"    // Built, not yet being paid
	PayoutStatusProcessing PayoutStatus = "processing" // Check cut / transfer initiated
	PayoutStatusPaid       PayoutStatus = "paid"       // Funds handed over
	PayoutStatusCancelled  PayoutStatus = "cancelled"  // Abandoned before payment
)

// IsValid checks if the status is a known PayoutStatus
func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusProcessing, PayoutStatusPaid, PayoutStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s PayoutStatus) CanTransitionTo(target PayoutStatus) bool {
	switch s {
	case PayoutStatusPending:
		return target == PayoutStatusProcessing || target == PayoutStatusCancelled
	case PayoutStatusProcessing:
		return target == PayoutStatusPaid || target == PayoutStatusCancelled
	case PayoutStatusPaid, PayoutStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Payout pays a consignor their accumulated share across a batch of sale
// transactions. The total is the exact sum of the consignor amounts of
// the transactions claimed into the batch.
type Payout struct {
	shared.OrgAggregateRoot
	PayoutNumber     string // Unique per organization
	ConsignorID      uuid.UUID
	PeriodStart      time.Time // Covered sales fall within [PeriodStart, PeriodEnd]
	PeriodEnd        time.Time
	TotalAmount      valueobject.Money
	TransactionCount int
	Method           string // check, cash, store credit, ...
	Reference        string // Check number or transfer reference
	Status           PayoutStatus
	ProcessedAt      *time.Time
	PaidAt           *time.Time
	CancelledAt      *time.Time
	CancelReason     string
	SyncedToLedger   bool // Mirrored into the external accounting system
	LedgerSyncRef    string
	LedgerSyncedAt   *time.Time
	Notes            string
}

// NewPayout creates a pending payout for a batch of transactions sold
// within the given period
func NewPayout(orgID uuid.UUID, number string, consignorID uuid.UUID, period valueobject.Period, total valueobject.Money, transactionCount int, method string) (*Payout, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Payout number cannot be empty")
	}
	if consignorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONSIGNOR_ID", "Consignor ID cannot be empty")
	}
	if transactionCount <= 0 {
		return nil, shared.NewDomainError("EMPTY_PAYOUT", "A payout must cover at least one transaction")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payout total cannot be negative")
	}
	if len(method) > 100 {
		return nil, shared.NewDomainError("INVALID_PAYOUT_METHOD", "Payout method cannot exceed 100 characters")
	}

	return &Payout{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		PayoutNumber:     number,
		ConsignorID:      consignorID,
		PeriodStart:      period.Start(),
		PeriodEnd:        period.End(),
		TotalAmount:      total,
		TransactionCount: transactionCount,
		Method:           method,
		Status:           PayoutStatusPending,
	}, nil
}

// StartProcessing moves a pending payout into processing
func (p *Payout) StartProcessing() error {
	if !p.Status.CanTransitionTo(PayoutStatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", "Payout cannot start processing from status "+string(p.Status))
	}

	now := time.Now()
	p.Status = PayoutStatusProcessing
	p.ProcessedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// MarkPaid records that the consignor has been paid
func (p *Payout) MarkPaid(reference string) error {
	if !p.Status.CanTransitionTo(PayoutStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", "Payout cannot be paid from status "+string(p.Status))
	}
	if len(reference) > 100 {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference cannot exceed 100 characters")
	}

	now := time.Now()
	p.Status = PayoutStatusPaid
	p.Reference = reference
	p.PaidAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Cancel abandons a payout before payment. The covered transactions must
// be released back to unpaid by the caller in the same unit of work.
func (p *Payout) Cancel(reason string) error {
	if !p.Status.CanTransitionTo(PayoutStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Payout cannot be cancelled from status "+string(p.Status))
	}

	now := time.Now()
	p.Status = PayoutStatusCancelled
	p.CancelReason = reason
	p.CancelledAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// MarkSyncedToLedger flags the payout as mirrored into the external
// accounting system. Only paid payouts can be synced.
func (p *Payout) MarkSyncedToLedger(ref string) error {
	if p.Status != PayoutStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Only paid payouts can be synced to the ledger")
	}
	if p.SyncedToLedger {
		return shared.NewDomainError("ALREADY_SYNCED", "Payout is already synced to the ledger")
	}
	if len(ref) > 100 {
		return shared.NewDomainError("INVALID_REFERENCE", "Sync reference cannot exceed 100 characters")
	}

	now := time.Now()
	p.SyncedToLedger = true
	p.LedgerSyncRef = ref
	p.LedgerSyncedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// SetNotes sets notes on the payout
func (p *Payout) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsTerminal returns true if the payout can no longer change status
func (p *Payout) IsTerminal() bool {
	return p.Status == PayoutStatusPaid || p.Status == PayoutStatusCancelled
}
