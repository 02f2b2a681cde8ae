package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by ID within an organization
func (r *GormItemRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds an item by SKU within an organization
func (r *GormItemRepository) FindBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND sku = ?", orgID, strings.ToUpper(sku)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	query := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("organization_id = ?", orgID)
	return r.paginate(query, filter)
}

// FindByConsignor lists a consignor's items
func (r *GormItemRepository) FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	query := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("organization_id = ? AND consignor_id = ?", orgID, consignorID)
	return r.paginate(query, filter)
}

// FindByStatus lists items in a given status
func (r *GormItemRepository) FindByStatus(ctx context.Context, orgID uuid.UUID, status catalog.ItemStatus, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	query := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("organization_id = ? AND status = ?", orgID, status)
	return r.paginate(query, filter)
}

// FindAvailableForStorefront lists available items for the public storefront
func (r *GormItemRepository) FindAvailableForStorefront(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	query := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("organization_id = ? AND status = ?", orgID, catalog.ItemStatusAvailable)
	return r.paginate(query, filter)
}

// ExistsBySKU checks whether a SKU is already used in an organization
func (r *GormItemRepository) ExistsBySKU(ctx context.Context, orgID uuid.UUID, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ItemModel{}).
		Where("organization_id = ? AND sku = ?", orgID, strings.ToUpper(sku)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	model := models.ItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an item
func (r *GormItemRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ItemModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormItemRepository) paginate(query *gorm.DB, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("sku ILIKE ? OR title ILIKE ? OR brand ILIKE ? OR category ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "listed_at")
	var itemModels []models.ItemModel
	if err := query.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]catalog.Item, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}

	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
