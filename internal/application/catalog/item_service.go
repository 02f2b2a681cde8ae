package catalog

import (
	"context"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItemService handles item listing and lifecycle
type ItemService struct {
	itemRepo      catalog.ItemRepository
	consignorRepo consignment.ConsignorRepository
	logger        *zap.Logger
}

// NewItemService creates a new item service
func NewItemService(itemRepo catalog.ItemRepository, consignorRepo consignment.ConsignorRepository, logger *zap.Logger) *ItemService {
	return &ItemService{
		itemRepo:      itemRepo,
		consignorRepo: consignorRepo,
		logger:        logger,
	}
}

// Create lists a new item. The split percentage defaults to the
// consignor's default split and is fixed on the item from then on.
func (s *ItemService) Create(ctx context.Context, orgID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	consignor, err := s.consignorRepo.FindByID(ctx, orgID, req.ConsignorID)
	if err != nil {
		return nil, err
	}
	if !consignor.CanConsign() {
		return nil, shared.NewDomainError("CONSIGNOR_NOT_ACTIVE", "Consignor is not active and cannot list items")
	}

	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = valueobject.USD
	}
	price, err := valueobject.NewMoney(req.Price, currency)
	if err != nil {
		return nil, err
	}

	splitPct := consignor.DefaultSplitPct
	if req.SplitPct != nil {
		splitPct = *req.SplitPct
	}

	item, err := catalog.NewItem(orgID, consignor.ID, req.SKU, req.Title, price, catalog.ItemCondition(req.Condition), splitPct)
	if err != nil {
		return nil, err
	}

	taken, err := s.itemRepo.ExistsBySKU(ctx, orgID, item.SKU)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("SKU_TAKEN", "SKU is already used by another item")
	}

	if req.Description != "" || req.Category != "" || req.Brand != "" {
		if err := item.Update(item.Title, req.Description, req.Category, req.Brand); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" {
		if err := item.SetImageURL(req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		item.SetNotes(req.Notes)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Item listed",
		zap.String("org_id", orgID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("sku", item.SKU),
		zap.String("consignor_id", consignor.ID.String()))

	resp := ToItemResponse(item)
	return &resp, nil
}

// Get returns an item by ID
func (s *ItemService) Get(ctx context.Context, orgID, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetBySKU returns an item by its tag SKU
func (s *ItemService) GetBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindBySKU(ctx, orgID, sku)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List lists items matching the filter
func (s *ItemService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	result, err := s.itemRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	return mapItemPage(result), nil
}

// ListByConsignor lists a consignor's items
func (s *ItemService) ListByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	result, err := s.itemRepo.FindByConsignor(ctx, orgID, consignorID, filter)
	if err != nil {
		return nil, err
	}
	return mapItemPage(result), nil
}

// ListByStatus lists items in a given status
func (s *ItemService) ListByStatus(ctx context.Context, orgID uuid.UUID, status catalog.ItemStatus, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown item status")
	}
	result, err := s.itemRepo.FindByStatus(ctx, orgID, status, filter)
	if err != nil {
		return nil, err
	}
	return mapItemPage(result), nil
}

// Update modifies a listing. Sold items cannot be edited.
func (s *ItemService) Update(ctx context.Context, orgID, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Description != nil || req.Category != nil || req.Brand != nil {
		title := item.Title
		description := item.Description
		category := item.Category
		brand := item.Brand
		if req.Title != nil {
			title = *req.Title
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Category != nil {
			category = *req.Category
		}
		if req.Brand != nil {
			brand = *req.Brand
		}
		if err := item.Update(title, description, category, brand); err != nil {
			return nil, err
		}
	}
	if req.Condition != nil {
		if err := item.SetCondition(catalog.ItemCondition(*req.Condition)); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		price, err := valueobject.NewMoney(*req.Price, item.Price.Currency())
		if err != nil {
			return nil, err
		}
		if err := item.SetPrice(price); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		if err := item.SetImageURL(*req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		item.SetNotes(*req.Notes)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// Remove pulls an item from sale
func (s *ItemService) Remove(ctx context.Context, orgID, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := item.Remove(); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Item removed from sale",
		zap.String("org_id", orgID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("sku", item.SKU))

	resp := ToItemResponse(item)
	return &resp, nil
}

// Relist returns a removed item to the sales floor
func (s *ItemService) Relist(ctx context.Context, orgID, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := item.Relist(); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

func mapItemPage(page *shared.Paginated[catalog.Item]) *shared.Paginated[ItemResponse] {
	items := make([]ItemResponse, len(page.Items))
	for i := range page.Items {
		items[i] = ToItemResponse(&page.Items[i])
	}
	return &shared.Paginated[ItemResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
