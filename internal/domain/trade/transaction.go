package trade

import (
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentCard        PaymentMethod = "card"
	PaymentStoreCredit PaymentMethod = "store_credit"
	PaymentOther       PaymentMethod = "other"
)

// IsValid checks if the payment method is known
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentStoreCredit, PaymentOther:
		return true
	}
	return false
}

// Transaction records the sale of one consigned item at the register.
// The sale price, split percentage, and both computed shares are
// snapshotted at sale time and never recomputed afterwards.
type Transaction struct {
	shared.OrgAggregateRoot
	TransactionNumber string // Unique per organization, sequential receipt number
	ItemID            uuid.UUID
	ConsignorID       uuid.UUID
	ItemSKU           string // Snapshot for receipts and statements
	ItemTitle         string
	SalePrice         valueobject.Money
	SalesTax          valueobject.Money // Collected for remittance; excluded from the split
	SplitPct          decimal.Decimal
	ConsignorAmount   valueobject.Money
	ShopAmount        valueobject.Money
	PaymentMethod     PaymentMethod
	ClerkID           uuid.UUID  // User who rang the sale
	PayoutID          *uuid.UUID // Set once the consignor share has been paid out
	SoldAt            time.Time
	Notes             string
}

// NewTransaction records a sale. The split is computed here from the
// item's snapshotted percentage so the invariant that the two shares sum
// to the sale price holds by construction.
func NewTransaction(orgID uuid.UUID, number string, itemID, consignorID, clerkID uuid.UUID, sku, title string, salePrice, salesTax valueobject.Money, splitPct decimal.Decimal, method PaymentMethod, soldAt time.Time) (*Transaction, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transaction number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transaction number cannot exceed 50 characters")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM_ID", "Item ID cannot be empty")
	}
	if consignorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONSIGNOR_ID", "Consignor ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if soldAt.IsZero() {
		soldAt = time.Now()
	}
	if salesTax.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sales tax cannot be negative")
	}
	if !salesTax.IsSameCurrency(salePrice) {
		return nil, shared.NewDomainError("CURRENCY_MISMATCH", "Sales tax currency must match the sale price")
	}

	split, err := ComputeSplit(salePrice, splitPct)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		OrgAggregateRoot:  shared.NewOrgAggregateRoot(orgID),
		TransactionNumber: number,
		ItemID:            itemID,
		ConsignorID:       consignorID,
		ItemSKU:           sku,
		ItemTitle:         title,
		SalePrice:         salePrice,
		SalesTax:          salesTax,
		SplitPct:          splitPct,
		ConsignorAmount:   split.ConsignorAmount,
		ShopAmount:        split.ShopAmount,
		PaymentMethod:     method,
		ClerkID:           clerkID,
		SoldAt:            soldAt,
	}, nil
}

// IsPaidOut returns true if the consignor share has been included in a payout
func (t *Transaction) IsPaidOut() bool {
	return t.PayoutID != nil
}

// AssignPayout links the transaction to a payout. A transaction can only
// ever belong to one payout.
func (t *Transaction) AssignPayout(payoutID uuid.UUID) error {
	if payoutID == uuid.Nil {
		return shared.NewDomainError("INVALID_PAYOUT_ID", "Payout ID cannot be empty")
	}
	if t.PayoutID != nil {
		return shared.ErrAlreadyPaidOut
	}

	t.PayoutID = &payoutID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// ReleasePayout unlinks the transaction from a cancelled payout
func (t *Transaction) ReleasePayout() {
	t.PayoutID = nil
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetNotes sets notes on the transaction
func (t *Transaction) SetNotes(notes string) {
	t.Notes = notes
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}
