package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConsignorRepository implements consignment.ConsignorRepository using GORM
type GormConsignorRepository struct {
	db *gorm.DB
}

// NewGormConsignorRepository creates a new GormConsignorRepository
func NewGormConsignorRepository(db *gorm.DB) *GormConsignorRepository {
	return &GormConsignorRepository{db: db}
}

// FindByID finds a consignor by ID within an organization
func (r *GormConsignorRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*consignment.Consignor, error) {
	var model models.ConsignorModel
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

// FindByCode finds a consignor by code within an organization
func (r *GormConsignorRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*consignment.Consignor, error) {
	var model models.ConsignorModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND code = ?", orgID, strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists consignors matching the filter
func (r *GormConsignorRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[consignment.Consignor], error) {
	query := r.db.WithContext(ctx).Model(&models.ConsignorModel{}).
		Where("organization_id = ?", orgID)
	return r.paginate(query, filter)
}

// FindByStatus lists consignors in a given status
func (r *GormConsignorRepository) FindByStatus(ctx context.Context, orgID uuid.UUID, status consignment.ConsignorStatus, filter shared.Filter) (*shared.Paginated[consignment.Consignor], error) {
	query := r.db.WithContext(ctx).Model(&models.ConsignorModel{}).
		Where("organization_id = ? AND status = ?", orgID, status)
	return r.paginate(query, filter)
}

// ExistsByCode checks whether a code is already taken in an organization
func (r *GormConsignorRepository) ExistsByCode(ctx context.Context, orgID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ConsignorModel{}).
		Where("organization_id = ? AND code = ?", orgID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a consignor
func (r *GormConsignorRepository) Save(ctx context.Context, consignor *consignment.Consignor) error {
	model := models.ConsignorModelFromDomain(consignor)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a consignor
func (r *GormConsignorRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ConsignorModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// paginate runs the count plus page query and converts the rows to domain consignors
func (r *GormConsignorRepository) paginate(query *gorm.DB, filter shared.Filter) (*shared.Paginated[consignment.Consignor], error) {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ConsignorSortFields, "created_at")
	var consignorModels []models.ConsignorModel
	if err := query.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&consignorModels).Error; err != nil {
		return nil, err
	}

	consignors := make([]consignment.Consignor, len(consignorModels))
	for i, model := range consignorModels {
		consignors[i] = *model.ToDomain()
	}

	page := shared.NewPaginated(consignors, total, filter.Page, filter.Limit())
	return &page, nil
}

var _ consignment.ConsignorRepository = (*GormConsignorRepository)(nil)
