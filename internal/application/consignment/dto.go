package consignment

import (
	"time"

	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateConsignorRequest registers a new consignor application
type CreateConsignorRequest struct {
	Code            string          `json:"code" binding:"required,min=1,max=20"`
	FirstName       string          `json:"first_name" binding:"required,min=1,max=100"`
	LastName        string          `json:"last_name" binding:"required,min=1,max=100"`
	Email           string          `json:"email" binding:"omitempty,email,max=200"`
	Phone           string          `json:"phone" binding:"max=50"`
	Address         string          `json:"address" binding:"max=500"`
	DefaultSplitPct decimal.Decimal `json:"default_split_pct" binding:"required"`
	PayoutMethod    string          `json:"payout_method" binding:"max=50"`
	TaxID           string          `json:"tax_id" binding:"max=50"`
	Notes           string          `json:"notes"`
}

// UpdateConsignorRequest updates a consignor's profile
type UpdateConsignorRequest struct {
	FirstName       *string          `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName        *string          `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email           *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone           *string          `json:"phone" binding:"omitempty,max=50"`
	Address         *string          `json:"address" binding:"omitempty,max=500"`
	DefaultSplitPct *decimal.Decimal `json:"default_split_pct"`
	PayoutMethod    *string          `json:"payout_method" binding:"omitempty,max=50"`
	TaxID           *string          `json:"tax_id" binding:"omitempty,max=50"`
	Notes           *string          `json:"notes"`
}

// RejectConsignorRequest carries the optional rejection note
type RejectConsignorRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ConsignorResponse represents a consignor in API responses
type ConsignorResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrgID           uuid.UUID       `json:"org_id"`
	Code            string          `json:"code"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Address         string          `json:"address,omitempty"`
	Status          string          `json:"status"`
	DefaultSplitPct decimal.Decimal `json:"default_split_pct"`
	PayoutMethod    string          `json:"payout_method,omitempty"`
	TaxID           string          `json:"tax_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// ToConsignorResponse maps a consignor to its response shape
func ToConsignorResponse(c *consignment.Consignor) ConsignorResponse {
	return ConsignorResponse{
		ID:              c.ID,
		OrgID:           c.OrganizationID,
		Code:            c.Code,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		FullName:        c.FullName(),
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		Status:          string(c.Status),
		DefaultSplitPct: c.DefaultSplitPct,
		PayoutMethod:    c.PayoutMethod,
		TaxID:           c.TaxID,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}
