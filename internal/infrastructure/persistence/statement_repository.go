package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/consignhq/backend/internal/domain/finance"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStatementRepository implements finance.StatementRepository using GORM
type GormStatementRepository struct {
	db *gorm.DB
}

// NewGormStatementRepository creates a new GormStatementRepository
func NewGormStatementRepository(db *gorm.DB) *GormStatementRepository {
	return &GormStatementRepository{db: db}
}

// FindByID finds a statement with its lines
func (r *GormStatementRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*finance.Statement, error) {
	var model models.StatementModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC")
		}).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds the statement for a consignor and exact period
func (r *GormStatementRepository) FindByPeriod(ctx context.Context, orgID, consignorID uuid.UUID, periodStart, periodEnd time.Time) (*finance.Statement, error) {
	var model models.StatementModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC")
		}).
		Where("organization_id = ? AND consignor_id = ? AND period_start = ? AND period_end = ?",
			orgID, consignorID, periodStart, periodEnd).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestBefore finds the most recent statement for a consignor ending
// strictly before the given time
func (r *GormStatementRepository) FindLatestBefore(ctx context.Context, orgID, consignorID uuid.UUID, before time.Time) (*finance.Statement, error) {
	var model models.StatementModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND consignor_id = ? AND period_end < ?", orgID, consignorID, before).
		Order("period_end DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByConsignor lists a consignor's statements, newest first
func (r *GormStatementRepository) FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Statement], error) {
	query := r.db.WithContext(ctx).Model(&models.StatementModel{}).
		Where("organization_id = ? AND consignor_id = ?", orgID, consignorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, StatementSortFields, "period_end")
	var stmtModels []models.StatementModel
	if err := query.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&stmtModels).Error; err != nil {
		return nil, err
	}

	statements := make([]finance.Statement, len(stmtModels))
	for i, model := range stmtModels {
		statements[i] = *model.ToDomain()
	}

	page := shared.NewPaginated(statements, total, filter.Page, filter.Limit())
	return &page, nil
}

// Save upserts a statement and replaces its lines. An earlier statement for
// the same consignor and period is removed first so regeneration overwrites
// rather than duplicates.
func (r *GormStatementRepository) Save(ctx context.Context, statement *finance.Statement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.StatementModel
		err := tx.
			Where("organization_id = ? AND consignor_id = ? AND period_start = ? AND period_end = ?",
				statement.OrganizationID, statement.ConsignorID, statement.PeriodStart, statement.PeriodEnd).
			First(&existing).Error
		if err == nil && existing.ID != statement.ID {
			if err := tx.Delete(&models.StatementLineModel{}, "statement_id = ?", existing.ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.StatementModel{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Delete(&models.StatementLineModel{}, "statement_id = ?", statement.ID).Error; err != nil {
			return err
		}

		model := models.StatementModelFromDomain(statement)
		return tx.Save(model).Error
	})
}

// Delete removes a statement and its lines
func (r *GormStatementRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.StatementLineModel{}, "statement_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.StatementModel{}, "organization_id = ? AND id = ?", orgID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ finance.StatementRepository = (*GormStatementRepository)(nil)
