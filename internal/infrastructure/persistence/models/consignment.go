package models

import (
	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/shopspring/decimal"
)

// ConsignorModel is the persistence model for the Consignor aggregate.
type ConsignorModel struct {
	OrgAggregateModel
	Code            string                      `gorm:"type:varchar(20);not null;uniqueIndex:idx_consignor_org_code,priority:2"`
	FirstName       string                      `gorm:"type:varchar(100);not null"`
	LastName        string                      `gorm:"type:varchar(100);not null"`
	Email           string                      `gorm:"type:varchar(200);index"`
	Phone           string                      `gorm:"type:varchar(50)"`
	Address         string                      `gorm:"type:text"`
	Status          consignment.ConsignorStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	DefaultSplitPct decimal.Decimal             `gorm:"type:decimal(5,2);not null"`
	PayoutMethod    string                      `gorm:"type:varchar(100)"`
	TaxID           string                      `gorm:"type:varchar(50)"`
	Notes           string                      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ConsignorModel) TableName() string {
	return "consignors"
}

// ToDomain converts the persistence model to a domain Consignor.
func (m *ConsignorModel) ToDomain() *consignment.Consignor {
	return &consignment.Consignor{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Code:             m.Code,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            m.Phone,
		Address:          m.Address,
		Status:           m.Status,
		DefaultSplitPct:  m.DefaultSplitPct,
		PayoutMethod:     m.PayoutMethod,
		TaxID:            m.TaxID,
		Notes:            m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Consignor.
func (m *ConsignorModel) FromDomain(c *consignment.Consignor) {
	m.FromDomainOrgAggregateRoot(c.OrgAggregateRoot)
	m.Code = c.Code
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.Status = c.Status
	m.DefaultSplitPct = c.DefaultSplitPct
	m.PayoutMethod = c.PayoutMethod
	m.TaxID = c.TaxID
	m.Notes = c.Notes
}

// ConsignorModelFromDomain creates a persistence model from a domain Consignor.
func ConsignorModelFromDomain(c *consignment.Consignor) *ConsignorModel {
	m := &ConsignorModel{}
	m.FromDomain(c)
	return m
}
