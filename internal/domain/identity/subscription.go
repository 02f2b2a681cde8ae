package identity

// SubscriptionStatus represents the billing standing of an organization
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusSuspended SubscriptionStatus = "suspended"
)

// IsValid checks if the status is a known SubscriptionStatus
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusTrial, SubscriptionStatusActive, SubscriptionStatusPastDue,
		SubscriptionStatusCancelled, SubscriptionStatusSuspended:
		return true
	}
	return false
}

// InGoodStanding returns true if the status grants access to gated
// features. Only Trial and Active qualify; PastDue, Cancelled and
// Suspended all deny.
func (s SubscriptionStatus) InGoodStanding() bool {
	return s == SubscriptionStatusTrial || s == SubscriptionStatusActive
}

// SubscriptionTier represents the purchased plan level.
// The order Basic < Pro < Enterprise is fixed; comparison goes through
// rank, never through a mutable lookup table.
type SubscriptionTier string

const (
	TierBasic      SubscriptionTier = "basic"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// IsValid checks if the tier is a known SubscriptionTier
func (t SubscriptionTier) IsValid() bool {
	switch t {
	case TierBasic, TierPro, TierEnterprise:
		return true
	}
	return false
}

// rank returns the position of the tier in the total order.
// Unknown tiers rank below Basic so they never satisfy a requirement.
func (t SubscriptionTier) rank() int {
	switch t {
	case TierBasic:
		return 1
	case TierPro:
		return 2
	case TierEnterprise:
		return 3
	}
	return 0
}

// Meets returns true if this tier satisfies the required tier
func (t SubscriptionTier) Meets(required SubscriptionTier) bool {
	return t.rank() >= required.rank()
}

// AccessDecision is the outcome of evaluating an organization's
// subscription against a gated endpoint's requirement.
type AccessDecision struct {
	Allowed         bool
	UpgradeRequired bool             // true when the tier is the blocker, not the status
	RequiredTier    SubscriptionTier // the tier the endpoint demands
}

// EvaluateAccess decides whether an organization in the given
// subscription state may use a feature gated at requiredTier.
// Status is checked first: an organization not in good standing is
// denied regardless of how its tier compares.
func EvaluateAccess(status SubscriptionStatus, tier, requiredTier SubscriptionTier) AccessDecision {
	decision := AccessDecision{RequiredTier: requiredTier}
	if !status.InGoodStanding() {
		return decision
	}
	if !tier.Meets(requiredTier) {
		decision.UpgradeRequired = true
		return decision
	}
	decision.Allowed = true
	return decision
}
