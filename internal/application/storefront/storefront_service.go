package storefront

import (
	"context"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StorefrontService serves the public shop pages. Everything here is
// unauthenticated and keyed by the organization's slug.
type StorefrontService struct {
	orgRepo  identity.OrganizationRepository
	itemRepo catalog.ItemRepository
	logger   *zap.Logger
}

// NewStorefrontService creates a new storefront service
func NewStorefrontService(orgRepo identity.OrganizationRepository, itemRepo catalog.ItemRepository, logger *zap.Logger) *StorefrontService {
	return &StorefrontService{
		orgRepo:  orgRepo,
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// GetShop resolves a storefront by slug. Shops whose subscription is
// not in good standing are hidden from the public.
func (s *StorefrontService) GetShop(ctx context.Context, slug string) (*ShopResponse, error) {
	org, err := s.resolveVisibleShop(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := ToShopResponse(org)
	return &resp, nil
}

// ListItems lists a shop's available items for public browsing
func (s *StorefrontService) ListItems(ctx context.Context, slug string, filter shared.Filter) (*shared.Paginated[PublicItemResponse], error) {
	org, err := s.resolveVisibleShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	result, err := s.itemRepo.FindAvailableForStorefront(ctx, org.ID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PublicItemResponse, len(result.Items))
	for i := range result.Items {
		items[i] = ToPublicItemResponse(&result.Items[i])
	}
	return &shared.Paginated[PublicItemResponse]{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// GetItem returns one available item on a shop's storefront
func (s *StorefrontService) GetItem(ctx context.Context, slug string, itemID uuid.UUID) (*PublicItemResponse, error) {
	org, err := s.resolveVisibleShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByID(ctx, org.ID, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable() {
		// Sold and removed items disappear from the storefront
		return nil, shared.ErrNotFound
	}

	resp := ToPublicItemResponse(item)
	return &resp, nil
}

func (s *StorefrontService) resolveVisibleShop(ctx context.Context, slug string) (*identity.Organization, error) {
	org, err := s.orgRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	switch org.SubscriptionStatus {
	case identity.SubscriptionStatusTrial, identity.SubscriptionStatusActive, identity.SubscriptionStatusPastDue:
		return org, nil
	default:
		s.logger.Debug("Storefront hidden for organization not in good standing",
			zap.String("slug", slug),
			zap.String("status", string(org.SubscriptionStatus)))
		return nil, shared.ErrNotFound
	}
}
