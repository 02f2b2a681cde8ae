package models

import (
	"time"

	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for the sale Transaction aggregate.
type TransactionModel struct {
	OrgAggregateModel
	TransactionNumber string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_txn_org_number,priority:2"`
	ItemID            uuid.UUID           `gorm:"type:uuid;not null;index"`
	ConsignorID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	ItemSKU           string              `gorm:"type:varchar(50);not null"`
	ItemTitle         string              `gorm:"type:varchar(200);not null"`
	SalePrice         decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	SalesTax          decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	SplitPct          decimal.Decimal     `gorm:"type:decimal(5,2);not null"`
	ConsignorAmount   decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	ShopAmount        decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Currency          string              `gorm:"type:varchar(3);not null;default:'USD'"`
	PaymentMethod     trade.PaymentMethod `gorm:"type:varchar(20);not null"`
	ClerkID           uuid.UUID           `gorm:"type:uuid;not null"`
	PayoutID          *uuid.UUID          `gorm:"type:uuid;index"`
	SoldAt            time.Time           `gorm:"type:timestamptz;not null;index"`
	Notes             string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *TransactionModel) ToDomain() *trade.Transaction {
	return &trade.Transaction{
		OrgAggregateRoot:  m.ToDomainOrgAggregateRoot(),
		TransactionNumber: m.TransactionNumber,
		ItemID:            m.ItemID,
		ConsignorID:       m.ConsignorID,
		ItemSKU:           m.ItemSKU,
		ItemTitle:         m.ItemTitle,
		SalePrice:         money(m.SalePrice, m.Currency),
		SalesTax:          money(m.SalesTax, m.Currency),
		SplitPct:          m.SplitPct,
		ConsignorAmount:   money(m.ConsignorAmount, m.Currency),
		ShopAmount:        money(m.ShopAmount, m.Currency),
		PaymentMethod:     m.PaymentMethod,
		ClerkID:           m.ClerkID,
		PayoutID:          m.PayoutID,
		SoldAt:            m.SoldAt,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Transaction.
func (m *TransactionModel) FromDomain(t *trade.Transaction) {
	m.FromDomainOrgAggregateRoot(t.OrgAggregateRoot)
	m.TransactionNumber = t.TransactionNumber
	m.ItemID = t.ItemID
	m.ConsignorID = t.ConsignorID
	m.ItemSKU = t.ItemSKU
	m.ItemTitle = t.ItemTitle
	m.SalePrice = t.SalePrice.Amount()
	m.SalesTax = t.SalesTax.Amount()
	m.SplitPct = t.SplitPct
	m.ConsignorAmount = t.ConsignorAmount.Amount()
	m.ShopAmount = t.ShopAmount.Amount()
	m.Currency = string(t.SalePrice.Currency())
	m.PaymentMethod = t.PaymentMethod
	m.ClerkID = t.ClerkID
	m.PayoutID = t.PayoutID
	m.SoldAt = t.SoldAt
	m.Notes = t.Notes
}

// TransactionModelFromDomain creates a persistence model from a domain Transaction.
func TransactionModelFromDomain(t *trade.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}
