package storefront

import (
	"time"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ShopResponse is the public face of an organization
type ShopResponse struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// ToShopResponse maps an organization to its public shape
func ToShopResponse(org *identity.Organization) ShopResponse {
	return ShopResponse{
		Name:         org.Name,
		Slug:         org.Slug,
		ContactEmail: org.ContactEmail,
		ContactPhone: org.ContactPhone,
	}
}

// PublicItemResponse is an item as shown on the storefront. Consignor
// identity and split terms are never exposed publicly.
type PublicItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	SKU         string            `json:"sku"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Brand       string            `json:"brand,omitempty"`
	Condition   string            `json:"condition"`
	Price       valueobject.Money `json:"price"`
	ImageURL    string            `json:"image_url,omitempty"`
	ListedAt    time.Time         `json:"listed_at"`
}

// ToPublicItemResponse maps an item to its public shape
func ToPublicItemResponse(item *catalog.Item) PublicItemResponse {
	return PublicItemResponse{
		ID:          item.ID,
		SKU:         item.SKU,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Brand:       item.Brand,
		Condition:   string(item.Condition),
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		ListedAt:    item.ListedAt,
	}
}
