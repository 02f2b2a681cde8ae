package finance

import (
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// StatementLineType distinguishes earnings from disbursements on a statement
type StatementLineType string

const (
	LineTypeSale   StatementLineType = "sale"   // Consignor share of a sale
	LineTypePayout StatementLineType = "payout" // Money paid out to the consignor
)

// StatementLine is one dated entry on a consignor statement
type StatementLine struct {
	ID          uuid.UUID
	StatementID uuid.UUID
	Type        StatementLineType
	OccurredAt  time.Time
	Description string
	Reference   string            // Receipt or payout number
	Amount      valueobject.Money // Positive for sales, positive for payouts (type carries direction)
	CreatedAt   time.Time
}

// Statement summarizes a consignor's account over one period.
// The balance identity holds by construction:
// closing = opening + earnings - payouts.
type Statement struct {
	shared.OrgAggregateRoot
	ConsignorID    uuid.UUID
	PeriodStart    time.Time
	PeriodEnd      time.Time
	OpeningBalance valueobject.Money // Equals the prior period's closing balance
	TotalSales     valueobject.Money // Sum of in-period sale prices, before the split
	TotalEarnings  valueobject.Money
	TotalPayouts   valueobject.Money
	ClosingBalance valueobject.Money
	Lines          []StatementLine
	GeneratedAt    time.Time
}

// NewStatement builds a statement for a consignor over the given period.
// The closing balance is derived, never supplied.
func NewStatement(orgID, consignorID uuid.UUID, period valueobject.Period, opening valueobject.Money) (*Statement, error) {
	if consignorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONSIGNOR_ID", "Consignor ID cannot be empty")
	}

	currency := opening.Currency()
	return &Statement{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		ConsignorID:      consignorID,
		PeriodStart:      period.Start(),
		PeriodEnd:        period.End(),
		OpeningBalance:   opening,
		TotalSales:       valueobject.Zero(currency),
		TotalEarnings:    valueobject.Zero(currency),
		TotalPayouts:     valueobject.Zero(currency),
		ClosingBalance:   opening,
		Lines:            make([]StatementLine, 0),
		GeneratedAt:      time.Now(),
	}, nil
}

// Period returns the statement's period
func (s *Statement) Period() valueobject.Period {
	p, _ := valueobject.NewPeriod(s.PeriodStart, s.PeriodEnd)
	return p
}

// AddSaleLine records an in-period sale: the full sale price feeds
// TotalSales, the consignor's share feeds TotalEarnings and the line.
func (s *Statement) AddSaleLine(occurredAt time.Time, description, reference string, salePrice, consignorShare valueobject.Money) error {
	if err := s.validateLine(occurredAt, consignorShare); err != nil {
		return err
	}
	if salePrice.IsNegative() || !salePrice.IsSameCurrency(s.OpeningBalance) {
		return shared.NewDomainError("INVALID_AMOUNT", "Sale price must be non-negative in the statement currency")
	}

	s.Lines = append(s.Lines, s.newLine(LineTypeSale, occurredAt, description, reference, consignorShare))
	s.TotalSales = s.TotalSales.MustAdd(salePrice)
	s.TotalEarnings = s.TotalEarnings.MustAdd(consignorShare)
	s.recalculate()

	return nil
}

// AddPayoutLine records money paid to the consignor within the period
func (s *Statement) AddPayoutLine(occurredAt time.Time, description, reference string, amount valueobject.Money) error {
	if err := s.validateLine(occurredAt, amount); err != nil {
		return err
	}

	s.Lines = append(s.Lines, s.newLine(LineTypePayout, occurredAt, description, reference, amount))
	s.TotalPayouts = s.TotalPayouts.MustAdd(amount)
	s.recalculate()

	return nil
}

func (s *Statement) newLine(lineType StatementLineType, occurredAt time.Time, description, reference string, amount valueobject.Money) StatementLine {
	return StatementLine{
		ID:          uuid.New(),
		StatementID: s.ID,
		Type:        lineType,
		OccurredAt:  occurredAt,
		Description: description,
		Reference:   reference,
		Amount:      amount,
		CreatedAt:   time.Now(),
	}
}

func (s *Statement) validateLine(occurredAt time.Time, amount valueobject.Money) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Statement line amount cannot be negative")
	}
	if !amount.IsSameCurrency(s.OpeningBalance) {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Statement line currency must match the statement")
	}
	if occurredAt.Before(s.PeriodStart) || occurredAt.After(s.PeriodEnd) {
		return shared.NewDomainError("OUT_OF_PERIOD", "Statement line falls outside the statement period")
	}
	return nil
}

func (s *Statement) recalculate() {
	s.ClosingBalance = s.OpeningBalance.MustAdd(s.TotalEarnings).MustSubtract(s.TotalPayouts)
	s.UpdatedAt = time.Now()
}

// BalanceIdentityHolds verifies closing = opening + earnings - payouts.
// It exists for regeneration checks; the setters maintain it invariantly.
func (s *Statement) BalanceIdentityHolds() bool {
	expected := s.OpeningBalance.MustAdd(s.TotalEarnings).MustSubtract(s.TotalPayouts)
	return s.ClosingBalance.Equals(expected)
}
