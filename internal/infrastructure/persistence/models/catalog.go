package models

import (
	"time"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemModel is the persistence model for the Item aggregate.
type ItemModel struct {
	OrgAggregateModel
	ConsignorID uuid.UUID             `gorm:"type:uuid;not null;index"`
	SKU         string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_item_org_sku,priority:2"`
	Title       string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Category    string                `gorm:"type:varchar(100);index"`
	Brand       string                `gorm:"type:varchar(100)"`
	Condition   catalog.ItemCondition `gorm:"type:varchar(20);not null"`
	Price       decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Currency    string                `gorm:"type:varchar(3);not null;default:'USD'"`
	SplitPct    decimal.Decimal       `gorm:"type:decimal(5,2);not null"`
	Status      catalog.ItemStatus    `gorm:"type:varchar(20);not null;default:'available';index"`
	ListedAt    time.Time             `gorm:"type:timestamptz;not null"`
	SoldAt      *time.Time            `gorm:"type:timestamptz"`
	RemovedAt   *time.Time            `gorm:"type:timestamptz"`
	ImageURL    string                `gorm:"type:varchar(500)"`
	Notes       string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		ConsignorID:      m.ConsignorID,
		SKU:              m.SKU,
		Title:            m.Title,
		Description:      m.Description,
		Category:         m.Category,
		Brand:            m.Brand,
		Condition:        m.Condition,
		Price:            money(m.Price, m.Currency),
		SplitPct:         m.SplitPct,
		Status:           m.Status,
		ListedAt:         m.ListedAt,
		SoldAt:           m.SoldAt,
		RemovedAt:        m.RemovedAt,
		ImageURL:         m.ImageURL,
		Notes:            m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Item.
func (m *ItemModel) FromDomain(i *catalog.Item) {
	m.FromDomainOrgAggregateRoot(i.OrgAggregateRoot)
	m.ConsignorID = i.ConsignorID
	m.SKU = i.SKU
	m.Title = i.Title
	m.Description = i.Description
	m.Category = i.Category
	m.Brand = i.Brand
	m.Condition = i.Condition
	m.Price = i.Price.Amount()
	m.Currency = string(i.Price.Currency())
	m.SplitPct = i.SplitPct
	m.Status = i.Status
	m.ListedAt = i.ListedAt
	m.SoldAt = i.SoldAt
	m.RemovedAt = i.RemovedAt
	m.ImageURL = i.ImageURL
	m.Notes = i.Notes
}

// ItemModelFromDomain creates a persistence model from a domain Item.
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}
