package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Returns DESC if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// columns. Returns defaultField if the input is empty or not allowed.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ConsignorSortFields contains allowed sort columns for consignors
var ConsignorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"first_name": true,
	"last_name":  true,
	"status":     true,
}

// ItemSortFields contains allowed sort columns for items
var ItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"title":      true,
	"category":   true,
	"brand":      true,
	"price":      true,
	"status":     true,
	"listed_at":  true,
	"sold_at":    true,
}

// TransactionSortFields contains allowed sort columns for sale transactions
var TransactionSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"transaction_number": true,
	"sale_price":         true,
	"payment_method":     true,
	"sold_at":            true,
}

// PayoutSortFields contains allowed sort columns for payouts
var PayoutSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"payout_number": true,
	"total_amount":  true,
	"status":        true,
	"paid_at":       true,
}

// StatementSortFields contains allowed sort columns for statements
var StatementSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"period_start": true,
	"period_end":   true,
	"generated_at": true,
}

// UserSortFields contains allowed sort columns for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// OrganizationSortFields contains allowed sort columns for organizations
var OrganizationSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"name":                true,
	"slug":                true,
	"subscription_status": true,
	"subscription_tier":   true,
}
