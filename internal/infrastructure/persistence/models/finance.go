package models

import (
	"time"

	"github.com/consignhq/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutModel is the persistence model for the Payout aggregate.
type PayoutModel struct {
	OrgAggregateModel
	PayoutNumber     string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_payout_org_number,priority:2"`
	ConsignorID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	PeriodStart      time.Time            `gorm:"type:timestamptz;not null"`
	PeriodEnd        time.Time            `gorm:"type:timestamptz;not null"`
	TotalAmount      decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency         string               `gorm:"type:varchar(3);not null;default:'USD'"`
	TransactionCount int                  `gorm:"not null"`
	Method           string               `gorm:"type:varchar(100);not null"`
	Reference        string               `gorm:"type:varchar(200)"`
	Status           finance.PayoutStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ProcessedAt      *time.Time           `gorm:"type:timestamptz"`
	PaidAt           *time.Time           `gorm:"type:timestamptz;index"`
	CancelledAt      *time.Time           `gorm:"type:timestamptz"`
	CancelReason     string               `gorm:"type:varchar(500)"`
	SyncedToLedger   bool                 `gorm:"not null;default:false"`
	LedgerSyncRef    string               `gorm:"type:varchar(100)"`
	LedgerSyncedAt   *time.Time           `gorm:"type:timestamptz"`
	Notes            string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PayoutModel) TableName() string {
	return "payouts"
}

// ToDomain converts the persistence model to a domain Payout.
func (m *PayoutModel) ToDomain() *finance.Payout {
	return &finance.Payout{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		PayoutNumber:     m.PayoutNumber,
		ConsignorID:      m.ConsignorID,
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		TotalAmount:      money(m.TotalAmount, m.Currency),
		TransactionCount: m.TransactionCount,
		Method:           m.Method,
		Reference:        m.Reference,
		Status:           m.Status,
		ProcessedAt:      m.ProcessedAt,
		PaidAt:           m.PaidAt,
		CancelledAt:      m.CancelledAt,
		CancelReason:     m.CancelReason,
		SyncedToLedger:   m.SyncedToLedger,
		LedgerSyncRef:    m.LedgerSyncRef,
		LedgerSyncedAt:   m.LedgerSyncedAt,
		Notes:            m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Payout.
func (m *PayoutModel) FromDomain(p *finance.Payout) {
	m.FromDomainOrgAggregateRoot(p.OrgAggregateRoot)
	m.PayoutNumber = p.PayoutNumber
	m.ConsignorID = p.ConsignorID
	m.PeriodStart = p.PeriodStart
	m.PeriodEnd = p.PeriodEnd
	m.TotalAmount = p.TotalAmount.Amount()
	m.Currency = string(p.TotalAmount.Currency())
	m.TransactionCount = p.TransactionCount
	m.Method = p.Method
	m.Reference = p.Reference
	m.Status = p.Status
	m.ProcessedAt = p.ProcessedAt
	m.PaidAt = p.PaidAt
	m.CancelledAt = p.CancelledAt
	m.CancelReason = p.CancelReason
	m.SyncedToLedger = p.SyncedToLedger
	m.LedgerSyncRef = p.LedgerSyncRef
	m.LedgerSyncedAt = p.LedgerSyncedAt
	m.Notes = p.Notes
}

// PayoutModelFromDomain creates a persistence model from a domain Payout.
func PayoutModelFromDomain(p *finance.Payout) *PayoutModel {
	m := &PayoutModel{}
	m.FromDomain(p)
	return m
}

// StatementModel is the persistence model for the Statement aggregate.
// Lines are stored in their own table and loaded with the statement.
type StatementModel struct {
	OrgAggregateModel
	ConsignorID    uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_stmt_org_consignor_period,priority:2"`
	PeriodStart    time.Time            `gorm:"type:timestamptz;not null;uniqueIndex:idx_stmt_org_consignor_period,priority:3"`
	PeriodEnd      time.Time            `gorm:"type:timestamptz;not null;uniqueIndex:idx_stmt_org_consignor_period,priority:4"`
	OpeningBalance decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TotalSales     decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TotalEarnings  decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TotalPayouts   decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	ClosingBalance decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency       string               `gorm:"type:varchar(3);not null;default:'USD'"`
	GeneratedAt    time.Time            `gorm:"type:timestamptz;not null"`
	Lines          []StatementLineModel `gorm:"foreignKey:StatementID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (StatementModel) TableName() string {
	return "statements"
}

// StatementLineModel is the persistence model for one statement line.
type StatementLineModel struct {
	ID          uuid.UUID                 `gorm:"type:uuid;primary_key"`
	StatementID uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Type        finance.StatementLineType `gorm:"type:varchar(20);not null"`
	OccurredAt  time.Time                 `gorm:"type:timestamptz;not null"`
	Description string                    `gorm:"type:varchar(500);not null"`
	Reference   string                    `gorm:"type:varchar(50)"`
	Amount      decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	Currency    string                    `gorm:"type:varchar(3);not null;default:'USD'"`
	CreatedAt   time.Time                 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StatementLineModel) TableName() string {
	return "statement_lines"
}

// ToDomain converts the persistence model to a domain Statement with its lines.
func (m *StatementModel) ToDomain() *finance.Statement {
	lines := make([]finance.StatementLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = finance.StatementLine{
			ID:          l.ID,
			StatementID: l.StatementID,
			Type:        l.Type,
			OccurredAt:  l.OccurredAt,
			Description: l.Description,
			Reference:   l.Reference,
			Amount:      money(l.Amount, l.Currency),
			CreatedAt:   l.CreatedAt,
		}
	}

	return &finance.Statement{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		ConsignorID:      m.ConsignorID,
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		OpeningBalance:   money(m.OpeningBalance, m.Currency),
		TotalSales:       money(m.TotalSales, m.Currency),
		TotalEarnings:    money(m.TotalEarnings, m.Currency),
		TotalPayouts:     money(m.TotalPayouts, m.Currency),
		ClosingBalance:   money(m.ClosingBalance, m.Currency),
		Lines:            lines,
		GeneratedAt:      m.GeneratedAt,
	}
}

// FromDomain populates the persistence model from a domain Statement.
func (m *StatementModel) FromDomain(s *finance.Statement) {
	m.FromDomainOrgAggregateRoot(s.OrgAggregateRoot)
	m.ConsignorID = s.ConsignorID
	m.PeriodStart = s.PeriodStart
	m.PeriodEnd = s.PeriodEnd
	m.OpeningBalance = s.OpeningBalance.Amount()
	m.TotalSales = s.TotalSales.Amount()
	m.TotalEarnings = s.TotalEarnings.Amount()
	m.TotalPayouts = s.TotalPayouts.Amount()
	m.ClosingBalance = s.ClosingBalance.Amount()
	m.Currency = string(s.OpeningBalance.Currency())
	m.GeneratedAt = s.GeneratedAt

	m.Lines = make([]StatementLineModel, len(s.Lines))
	for i, l := range s.Lines {
		m.Lines[i] = StatementLineModel{
			ID:          l.ID,
			StatementID: l.StatementID,
			Type:        l.Type,
			OccurredAt:  l.OccurredAt,
			Description: l.Description,
			Reference:   l.Reference,
			Amount:      l.Amount.Amount(),
			Currency:    string(l.Amount.Currency()),
			CreatedAt:   l.CreatedAt,
		}
	}
}

// StatementModelFromDomain creates a persistence model from a domain Statement.
func StatementModelFromDomain(s *finance.Statement) *StatementModel {
	m := &StatementModel{}
	m.FromDomain(s)
	return m
}
