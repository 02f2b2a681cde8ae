package consignment

import (
	"strings"
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsignorStatus represents the status of a consignor
type ConsignorStatus string

const (
	ConsignorStatusPending     ConsignorStatus = "pending"     // Applied, awaiting approval
	ConsignorStatusActive      ConsignorStatus = "active"      // May consign items
	ConsignorStatusInactive    ConsignorStatus = "inactive"    // Temporarily not consigning
	ConsignorStatusDeactivated ConsignorStatus = "deactivated" // Closed out, balance settled
	ConsignorStatusRejected    ConsignorStatus = "rejected"    // Application rejected
)

// IsValid checks if the status is a known ConsignorStatus
func (s ConsignorStatus) IsValid() bool {
	switch s {
	case ConsignorStatusPending, ConsignorStatusActive, ConsignorStatusInactive,
		ConsignorStatusDeactivated, ConsignorStatusRejected:
		return true
	}
	return false
}

// Consignor represents a person who places items with the shop for sale.
// It is the aggregate root for consignor-related operations.
type Consignor struct {
	shared.OrgAggregateRoot
	Code            string // Unique per organization, printed on tags
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Address         string
	Status          ConsignorStatus
	DefaultSplitPct decimal.Decimal // Consignor share of sale price, 0-100
	PayoutMethod    string          // Free-form: check, cash, store credit, ...
	TaxID           string
	Notes           string
}

// NewConsignor creates a new consignor in pending status
func NewConsignor(orgID uuid.UUID, code, firstName, lastName string, defaultSplitPct decimal.Decimal) (*Consignor, error) {
	if err := validateConsignorCode(code); err != nil {
		return nil, err
	}
	if err := validateConsignorName(firstName, lastName); err != nil {
		return nil, err
	}
	if err := validateSplitPct(defaultSplitPct); err != nil {
		return nil, err
	}

	return &Consignor{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Code:             strings.ToUpper(code),
		FirstName:        strings.TrimSpace(firstName),
		LastName:         strings.TrimSpace(lastName),
		Status:           ConsignorStatusPending,
		DefaultSplitPct:  defaultSplitPct,
	}, nil
}

// FullName returns the consignor's display name
func (c *Consignor) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Update updates the consignor's basic information
func (c *Consignor) Update(firstName, lastName string) error {
	if err := validateConsignorName(firstName, lastName); err != nil {
		return err
	}

	c.FirstName = strings.TrimSpace(firstName)
	c.LastName = strings.TrimSpace(lastName)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the consignor's contact information
func (c *Consignor) SetContact(email, phone, address string) error {
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetDefaultSplit sets the consignor's default split percentage.
// Existing items keep the split they were listed with.
func (c *Consignor) SetDefaultSplit(pct decimal.Decimal) error {
	if err := validateSplitPct(pct); err != nil {
		return err
	}

	c.DefaultSplitPct = pct
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetPayoutMethod sets how the consignor prefers to be paid
func (c *Consignor) SetPayoutMethod(method string) error {
	if len(method) > 100 {
		return shared.NewDomainError("INVALID_PAYOUT_METHOD", "Payout method cannot exceed 100 characters")
	}

	c.PayoutMethod = strings.TrimSpace(method)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTaxID sets the consignor's tax identification number
func (c *Consignor) SetTaxID(taxID string) error {
	if len(taxID) > 50 {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 50 characters")
	}

	c.TaxID = strings.TrimSpace(taxID)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the consignor's notes
func (c *Consignor) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Approve moves a pending consignor to active
func (c *Consignor) Approve() error {
	if c.Status != ConsignorStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending consignors can be approved")
	}

	c.Status = ConsignorStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Reject rejects a pending application
func (c *Consignor) Reject() error {
	if c.Status != ConsignorStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending consignors can be rejected")
	}

	c.Status = ConsignorStatusRejected
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate reactivates an inactive consignor
func (c *Consignor) Activate() error {
	if c.Status == ConsignorStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Consignor is already active")
	}
	if c.Status != ConsignorStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Only inactive consignors can be reactivated")
	}

	c.Status = ConsignorStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate pauses an active consignor
func (c *Consignor) Deactivate() error {
	if c.Status != ConsignorStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active consignors can be deactivated")
	}

	c.Status = ConsignorStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Close permanently closes out a consignor relationship
func (c *Consignor) Close() error {
	if c.Status == ConsignorStatusDeactivated {
		return shared.NewDomainError("INVALID_STATE", "Consignor is already closed")
	}
	if c.Status == ConsignorStatusPending || c.Status == ConsignorStatusRejected {
		return shared.NewDomainError("INVALID_STATE", "Consignor was never active")
	}

	c.Status = ConsignorStatusDeactivated
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// CanConsign returns true if the consignor may have items listed
func (c *Consignor) CanConsign() bool {
	return c.Status == ConsignorStatusActive
}

// Validation functions

func validateConsignorCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Consignor code cannot be empty")
	}
	if len(code) > 20 {
		return shared.NewDomainError("INVALID_CODE", "Consignor code cannot exceed 20 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Consignor code can only contain letters, numbers, and hyphens")
		}
	}
	return nil
}

func validateConsignorName(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

func validateSplitPct(pct decimal.Decimal) error {
	if pct.IsNegative() {
		return shared.NewDomainError("INVALID_SPLIT", "Split percentage cannot be negative")
	}
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_SPLIT", "Split percentage cannot exceed 100")
	}
	return nil
}
