package models

import (
	"time"

	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// OrganizationModel is the persistence model for the Organization aggregate.
type OrganizationModel struct {
	AggregateModel
	Name                 string                      `gorm:"type:varchar(200);not null"`
	Slug                 string                      `gorm:"type:varchar(100);not null;uniqueIndex:idx_org_slug"`
	ContactEmail         string                      `gorm:"type:varchar(200)"`
	ContactPhone         string                      `gorm:"type:varchar(50)"`
	SubscriptionStatus   identity.SubscriptionStatus `gorm:"type:varchar(20);not null;default:'trial'"`
	SubscriptionTier     identity.SubscriptionTier   `gorm:"type:varchar(20);not null;default:'basic'"`
	TrialEndsAt          *time.Time                  `gorm:"type:timestamptz"`
	StripeCustomerID     string                      `gorm:"type:varchar(100);index"`
	StripeSubscriptionID string                      `gorm:"type:varchar(100)"`
	Notes                string                      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts the persistence model to a domain Organization.
func (m *OrganizationModel) ToDomain() *identity.Organization {
	return &identity.Organization{
		AggregateRoot:        m.ToDomainAggregateRoot(),
		Name:                 m.Name,
		Slug:                 m.Slug,
		ContactEmail:         m.ContactEmail,
		ContactPhone:         m.ContactPhone,
		SubscriptionStatus:   m.SubscriptionStatus,
		SubscriptionTier:     m.SubscriptionTier,
		TrialEndsAt:          m.TrialEndsAt,
		StripeCustomerID:     m.StripeCustomerID,
		StripeSubscriptionID: m.StripeSubscriptionID,
		Notes:                m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Organization.
func (m *OrganizationModel) FromDomain(o *identity.Organization) {
	m.FromDomainAggregateRoot(o.AggregateRoot)
	m.Name = o.Name
	m.Slug = o.Slug
	m.ContactEmail = o.ContactEmail
	m.ContactPhone = o.ContactPhone
	m.SubscriptionStatus = o.SubscriptionStatus
	m.SubscriptionTier = o.SubscriptionTier
	m.TrialEndsAt = o.TrialEndsAt
	m.StripeCustomerID = o.StripeCustomerID
	m.StripeSubscriptionID = o.StripeSubscriptionID
	m.Notes = o.Notes
}

// OrganizationModelFromDomain creates a persistence model from a domain Organization.
func OrganizationModelFromDomain(o *identity.Organization) *OrganizationModel {
	m := &OrganizationModel{}
	m.FromDomain(o)
	return m
}

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	OrgAggregateModel
	Email          string              `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_org_email,priority:2"`
	PasswordHash   string              `gorm:"type:varchar(100);not null"`
	DisplayName    string              `gorm:"type:varchar(100)"`
	Role           identity.UserRole   `gorm:"type:varchar(20);not null"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ConsignorID    *uuid.UUID          `gorm:"type:uuid;index"`
	LastLoginAt    *time.Time          `gorm:"type:timestamptz"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time          `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		DisplayName:      m.DisplayName,
		Role:             m.Role,
		Status:           m.Status,
		ConsignorID:      m.ConsignorID,
		LastLoginAt:      m.LastLoginAt,
		FailedAttempts:   m.FailedAttempts,
		LockedUntil:      m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainOrgAggregateRoot(u.OrgAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Role = u.Role
	m.Status = u.Status
	m.ConsignorID = u.ConsignorID
	m.LastLoginAt = u.LastLoginAt
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
