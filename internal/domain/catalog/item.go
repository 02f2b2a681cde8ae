package catalog

import (
	"strings"
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus represents where an item is in its consignment lifecycle
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available" // On the floor, for sale
	ItemStatusSold      ItemStatus = "sold"      // Sold, awaiting or past payout
	ItemStatusRemoved   ItemStatus = "removed"   // Returned to consignor or discarded
)

// IsValid checks if the status is a known ItemStatus
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusAvailable, ItemStatusSold, ItemStatusRemoved:
		return true
	}
	return false
}

// ItemCondition grades the physical state of an item
type ItemCondition string

const (
	ConditionNew     ItemCondition = "new"
	ConditionLikeNew ItemCondition = "like_new"
	ConditionGood    ItemCondition = "good"
	ConditionFair    ItemCondition = "fair"
	ConditionPoor    ItemCondition = "poor"
)

// IsValid checks if the condition is a known ItemCondition
func (c ItemCondition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Item represents a single consigned good.
// The split percentage is snapshotted at listing time so later changes to
// the consignor's default split never move an already listed item.
type Item struct {
	shared.OrgAggregateRoot
	ConsignorID uuid.UUID
	SKU         string // Unique per organization
	Title       string
	Description string
	Category    string
	Brand       string
	Condition   ItemCondition
	Price       valueobject.Money
	SplitPct    decimal.Decimal // Consignor share, fixed at listing
	Status      ItemStatus
	ListedAt    time.Time
	SoldAt      *time.Time
	RemovedAt   *time.Time
	ImageURL    string
	Notes       string
}

// NewItem lists a new available item
func NewItem(orgID, consignorID uuid.UUID, sku, title string, price valueobject.Money, condition ItemCondition, splitPct decimal.Decimal) (*Item, error) {
	if consignorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONSIGNOR_ID", "Consignor ID cannot be empty")
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if !condition.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONDITION", "Unknown item condition")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	if splitPct.IsNegative() || splitPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_SPLIT", "Split percentage must be between 0 and 100")
	}

	return &Item{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		ConsignorID:      consignorID,
		SKU:              strings.ToUpper(strings.TrimSpace(sku)),
		Title:            strings.TrimSpace(title),
		Condition:        condition,
		Price:            price,
		SplitPct:         splitPct,
		Status:           ItemStatusAvailable,
		ListedAt:         time.Now(),
	}, nil
}

// Update updates the item's listing details. Sold items are immutable.
func (i *Item) Update(title, description, category, brand string) error {
	if err := i.ensureMutable(); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	if len(brand) > 100 {
		return shared.NewDomainError("INVALID_BRAND", "Brand cannot exceed 100 characters")
	}

	i.Title = strings.TrimSpace(title)
	i.Description = description
	i.Category = strings.TrimSpace(category)
	i.Brand = strings.TrimSpace(brand)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetPrice reprices an available item
func (i *Item) SetPrice(price valueobject.Money) error {
	if err := i.ensureMutable(); err != nil {
		return err
	}
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	if !price.IsSameCurrency(i.Price) {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Cannot change an item's currency")
	}

	i.Price = price
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetCondition regrades an available item
func (i *Item) SetCondition(condition ItemCondition) error {
	if err := i.ensureMutable(); err != nil {
		return err
	}
	if !condition.IsValid() {
		return shared.NewDomainError("INVALID_CONDITION", "Unknown item condition")
	}

	i.Condition = condition
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetImageURL sets the item's photo
func (i *Item) SetImageURL(url string) error {
	if err := i.ensureMutable(); err != nil {
		return err
	}
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}

	i.ImageURL = url
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetNotes sets internal notes on the item
func (i *Item) SetNotes(notes string) {
	i.Notes = notes
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// MarkSold records the sale of an available item
func (i *Item) MarkSold(at time.Time) error {
	if i.Status == ItemStatusSold {
		return shared.NewDomainError("ALREADY_SOLD", "Item is already sold")
	}
	if i.Status != ItemStatusAvailable {
		return shared.NewDomainError("INVALID_STATE", "Only available items can be sold")
	}

	i.Status = ItemStatusSold
	i.SoldAt = &at
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Remove takes an available item off the floor
func (i *Item) Remove() error {
	if i.Status != ItemStatusAvailable {
		return shared.NewDomainError("INVALID_STATE", "Only available items can be removed")
	}

	now := time.Now()
	i.Status = ItemStatusRemoved
	i.RemovedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	return nil
}

// Relist puts a removed item back on the floor
func (i *Item) Relist() error {
	if i.Status != ItemStatusRemoved {
		return shared.NewDomainError("INVALID_STATE", "Only removed items can be relisted")
	}

	i.Status = ItemStatusAvailable
	i.RemovedAt = nil
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsAvailable returns true if the item is for sale
func (i *Item) IsAvailable() bool {
	return i.Status == ItemStatusAvailable
}

// IsSold returns true if the item has been sold
func (i *Item) IsSold() bool {
	return i.Status == ItemStatusSold
}

func (i *Item) ensureMutable() error {
	if i.Status == ItemStatusSold {
		return shared.NewDomainError("ITEM_SOLD", "Sold items cannot be modified")
	}
	return nil
}

// Validation functions

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}
