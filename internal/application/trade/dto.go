package trade

import (
	"time"

	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordSaleRequest rings up one consigned item at the register
type RecordSaleRequest struct {
	ItemID        uuid.UUID        `json:"item_id" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=cash card store_credit other"`
	SalePrice     *decimal.Decimal `json:"sale_price"` // Defaults to the listed price when omitted
	SalesTax      *decimal.Decimal `json:"sales_tax"`  // Collected tax, excluded from the split
	SoldAt        *time.Time       `json:"sold_at"`    // Defaults to now
	Notes         string           `json:"notes"`
}

// TransactionResponse represents a sale transaction in API responses
type TransactionResponse struct {
	ID                uuid.UUID         `json:"id"`
	OrgID             uuid.UUID         `json:"org_id"`
	TransactionNumber string            `json:"transaction_number"`
	ItemID            uuid.UUID         `json:"item_id"`
	ConsignorID       uuid.UUID         `json:"consignor_id"`
	ItemSKU           string            `json:"item_sku"`
	ItemTitle         string            `json:"item_title"`
	SalePrice         valueobject.Money `json:"sale_price"`
	SalesTax          valueobject.Money `json:"sales_tax"`
	SplitPct          decimal.Decimal   `json:"split_pct"`
	ConsignorAmount   valueobject.Money `json:"consignor_amount"`
	ShopAmount        valueobject.Money `json:"shop_amount"`
	PaymentMethod     string            `json:"payment_method"`
	ClerkID           uuid.UUID         `json:"clerk_id"`
	PayoutID          *uuid.UUID        `json:"payout_id,omitempty"`
	SoldAt            time.Time         `json:"sold_at"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

// ToTransactionResponse maps a transaction to its response shape
func ToTransactionResponse(txn *trade.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                txn.ID,
		OrgID:             txn.OrganizationID,
		TransactionNumber: txn.TransactionNumber,
		ItemID:            txn.ItemID,
		ConsignorID:       txn.ConsignorID,
		ItemSKU:           txn.ItemSKU,
		ItemTitle:         txn.ItemTitle,
		SalePrice:         txn.SalePrice,
		SalesTax:          txn.SalesTax,
		SplitPct:          txn.SplitPct,
		ConsignorAmount:   txn.ConsignorAmount,
		ShopAmount:        txn.ShopAmount,
		PaymentMethod:     string(txn.PaymentMethod),
		ClerkID:           txn.ClerkID,
		PayoutID:          txn.PayoutID,
		SoldAt:            txn.SoldAt,
		Notes:             txn.Notes,
		CreatedAt:         txn.CreatedAt,
	}
}
