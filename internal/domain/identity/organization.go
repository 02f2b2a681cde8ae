package identity

import (
	"strings"
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
)

// Organization represents a consignment shop tenant. It is the root
// aggregate: consignors, items, transactions, payouts and statements
// all carry its ID and are scoped to it.
type Organization struct {
	shared.AggregateRoot
	Name                 string
	Slug                 string // unique, used for the public storefront URL
	ContactEmail         string
	ContactPhone         string
	SubscriptionStatus   SubscriptionStatus
	SubscriptionTier     SubscriptionTier
	TrialEndsAt          *time.Time
	StripeCustomerID     string // set by the billing webhook, empty until first checkout
	StripeSubscriptionID string
	Notes                string
}

// NewOrganization creates a new organization on the Basic tier in
// trial status with the given trial length in days.
func NewOrganization(name, slug string, trialDays int) (*Organization, error) {
	if err := validateOrganizationName(name); err != nil {
		return nil, err
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if trialDays <= 0 {
		return nil, shared.NewDomainError("INVALID_TRIAL_DAYS", "Trial days must be positive")
	}

	trialEnds := time.Now().AddDate(0, 0, trialDays)
	return &Organization{
		AggregateRoot:      shared.NewAggregateRoot(),
		Name:               name,
		Slug:               strings.ToLower(slug),
		SubscriptionStatus: SubscriptionStatusTrial,
		SubscriptionTier:   TierBasic,
		TrialEndsAt:        &trialEnds,
	}, nil
}

// Update updates the organization's basic information
func (o *Organization) Update(name string) error {
	if err := validateOrganizationName(name); err != nil {
		return err
	}
	o.Name = name
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// SetContact sets the organization's contact information
func (o *Organization) SetContact(email, phone string) error {
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	o.ContactEmail = email
	o.ContactPhone = phone
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// ChangeTier moves the organization to a new subscription tier.
// Upgrading a trial organization converts it to active.
func (o *Organization) ChangeTier(tier SubscriptionTier) error {
	if !tier.IsValid() {
		return shared.NewDomainError("INVALID_TIER", "Invalid subscription tier")
	}
	o.SubscriptionTier = tier
	if o.SubscriptionStatus == SubscriptionStatusTrial {
		o.SubscriptionStatus = SubscriptionStatusActive
		o.TrialEndsAt = nil
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// SetSubscriptionStatus directly sets the subscription status.
// Used by the billing webhook when the payment provider reports a
// subscription lifecycle change.
func (o *Organization) SetSubscriptionStatus(status SubscriptionStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid subscription status")
	}
	o.SubscriptionStatus = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// LinkStripe records the payment-provider identifiers for this
// organization so inbound webhooks can be correlated.
func (o *Organization) LinkStripe(customerID, subscriptionID string) {
	o.StripeCustomerID = customerID
	o.StripeSubscriptionID = subscriptionID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// MarkPastDue flags the organization after a failed renewal payment
func (o *Organization) MarkPastDue() error {
	if o.SubscriptionStatus == SubscriptionStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled organization cannot become past due")
	}
	return o.SetSubscriptionStatus(SubscriptionStatusPastDue)
}

// Suspend suspends the organization (abuse, chargebacks)
func (o *Organization) Suspend() error {
	if o.SubscriptionStatus == SubscriptionStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Organization is already suspended")
	}
	return o.SetSubscriptionStatus(SubscriptionStatusSuspended)
}

// Cancel cancels the organization's subscription
func (o *Organization) Cancel() error {
	if o.SubscriptionStatus == SubscriptionStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Subscription is already cancelled")
	}
	return o.SetSubscriptionStatus(SubscriptionStatusCancelled)
}

// Reactivate restores an organization to active standing after
// payment is recovered.
func (o *Organization) Reactivate() error {
	return o.SetSubscriptionStatus(SubscriptionStatusActive)
}

// IsTrialExpired returns true if the organization is in trial and the
// trial window has passed.
func (o *Organization) IsTrialExpired() bool {
	if o.SubscriptionStatus != SubscriptionStatusTrial || o.TrialEndsAt == nil {
		return false
	}
	return time.Now().After(*o.TrialEndsAt)
}

// CheckAccess evaluates this organization against a tier requirement
func (o *Organization) CheckAccess(required SubscriptionTier) AccessDecision {
	return EvaluateAccess(o.SubscriptionStatus, o.SubscriptionTier, required)
}

func validateOrganizationName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	return nil
}

// ValidateSlug checks that a storefront slug is well formed: lowercase
// letters, digits and hyphens, 3-60 characters, no leading or trailing
// hyphen.
func ValidateSlug(slug string) error {
	if len(slug) < 3 || len(slug) > 60 {
		return shared.NewDomainError("INVALID_SLUG", "Slug must be between 3 and 60 characters")
	}
	slug = strings.ToLower(slug)
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot start or end with a hyphen")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Slug can only contain lowercase letters, numbers, and hyphens")
		}
	}
	return nil
}
