package catalog

import (
	"time"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest lists a new item for a consignor
type CreateItemRequest struct {
	ConsignorID uuid.UUID        `json:"consignor_id" binding:"required"`
	SKU         string           `json:"sku" binding:"required,min=1,max=40"`
	Title       string           `json:"title" binding:"required,min=1,max=300"`
	Description string           `json:"description" binding:"max=2000"`
	Category    string           `json:"category" binding:"max=100"`
	Brand       string           `json:"brand" binding:"max=100"`
	Condition   string           `json:"condition" binding:"required,oneof=new like_new good fair poor"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Currency    string           `json:"currency" binding:"omitempty,len=3"`
	SplitPct    *decimal.Decimal `json:"split_pct"` // Defaults to the consignor's split when omitted
	ImageURL    string           `json:"image_url" binding:"omitempty,url,max=500"`
	Notes       string           `json:"notes"`
}

// UpdateItemRequest updates a listing's details
type UpdateItemRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=300"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Brand       *string          `json:"brand" binding:"omitempty,max=100"`
	Condition   *string          `json:"condition" binding:"omitempty,oneof=new like_new good fair poor"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,url,max=500"`
	Notes       *string          `json:"notes"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	OrgID       uuid.UUID         `json:"org_id"`
	ConsignorID uuid.UUID         `json:"consignor_id"`
	SKU         string            `json:"sku"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Brand       string            `json:"brand,omitempty"`
	Condition   string            `json:"condition"`
	Price       valueobject.Money `json:"price"`
	SplitPct    decimal.Decimal   `json:"split_pct"`
	Status      string            `json:"status"`
	ListedAt    time.Time         `json:"listed_at"`
	SoldAt      *time.Time        `json:"sold_at,omitempty"`
	RemovedAt   *time.Time        `json:"removed_at,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Version     int               `json:"version"`
}

// ToItemResponse maps an item to its response shape
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		OrgID:       item.OrganizationID,
		ConsignorID: item.ConsignorID,
		SKU:         item.SKU,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Brand:       item.Brand,
		Condition:   string(item.Condition),
		Price:       item.Price,
		SplitPct:    item.SplitPct,
		Status:      string(item.Status),
		ListedAt:    item.ListedAt,
		SoldAt:      item.SoldAt,
		RemovedAt:   item.RemovedAt,
		ImageURL:    item.ImageURL,
		Notes:       item.Notes,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		Version:     item.Version,
	}
}
