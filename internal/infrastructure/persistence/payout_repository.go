package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/consignhq/backend/internal/domain/finance"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPayoutRepository implements finance.PayoutRepository using GORM
type GormPayoutRepository struct {
	db *gorm.DB
}

// NewGormPayoutRepository creates a new GormPayoutRepository
func NewGormPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// FindByID finds a payout by ID within an organization
func (r *GormPayoutRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*finance.Payout, error) {
	var model models.PayoutModel
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

// FindByNumber finds a payout by its number
func (r *GormPayoutRepository) FindByNumber(ctx context.Context, orgID uuid.UUID, number string) (*finance.Payout, error) {
	var model models.PayoutModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND payout_number = ?", orgID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists payouts matching the filter
func (r *GormPayoutRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Payout], error) {
	query := r.db.WithContext(ctx).Model(&models.PayoutModel{}).
		Where("organization_id = ?", orgID)
	return r.paginate(query, filter)
}

// FindByConsignor lists a consignor's payouts
func (r *GormPayoutRepository) FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Payout], error) {
	query := r.db.WithContext(ctx).Model(&models.PayoutModel{}).
		Where("organization_id = ? AND consignor_id = ?", orgID, consignorID)
	return r.paginate(query, filter)
}

// FindPaidByConsignorInPeriod lists a consignor's payouts paid within [from, to]
func (r *GormPayoutRepository) FindPaidByConsignorInPeriod(ctx context.Context, orgID, consignorID uuid.UUID, from, to time.Time) ([]finance.Payout, error) {
	var payoutModels []models.PayoutModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND consignor_id = ? AND status = ? AND paid_at >= ? AND paid_at <= ?",
			orgID, consignorID, finance.PayoutStatusPaid, from, to).
		Order("paid_at ASC").
		Find(&payoutModels).Error; err != nil {
		return nil, err
	}

	payouts := make([]finance.Payout, len(payoutModels))
	for i, model := range payoutModels {
		payouts[i] = *model.ToDomain()
	}
	return payouts, nil
}

// NextPayoutNumber reserves the next sequential payout number
func (r *GormPayoutRepository) NextPayoutNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	var max int64
	err := r.db.WithContext(ctx).
		Model(&models.PayoutModel{}).
		Where("organization_id = ?", orgID).
		Select("COALESCE(MAX(CAST(SUBSTRING(payout_number FROM '[0-9]+$') AS BIGINT)), 0)").
		Scan(&max).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("P-%06d", max+1), nil
}

// CreateWithClaims persists the payout and stamps its ID onto the covered
// transactions atomically. The claim update only touches rows whose
// payout_id is still NULL; if any row was claimed in the meantime the
// affected count falls short and the whole transaction rolls back.
func (r *GormPayoutRepository) CreateWithClaims(ctx context.Context, payout *finance.Payout, transactionIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.TransactionModel{}).
			Where("organization_id = ? AND id IN ? AND payout_id IS NULL", payout.OrganizationID, transactionIDs).
			Updates(map[string]any{
				"payout_id":  payout.ID,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(transactionIDs)) {
			return shared.ErrAlreadyPaidOut
		}

		model := models.PayoutModelFromDomain(payout)
		return tx.Create(model).Error
	})
}

// CancelWithRelease saves the cancelled payout and clears the payout link
// on its transactions in one atomic unit.
func (r *GormPayoutRepository) CancelWithRelease(ctx context.Context, payout *finance.Payout) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TransactionModel{}).
			Where("organization_id = ? AND payout_id = ?", payout.OrganizationID, payout.ID).
			Updates(map[string]any{
				"payout_id":  nil,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		model := models.PayoutModelFromDomain(payout)
		return tx.Save(model).Error
	})
}

// Save creates or updates a payout
func (r *GormPayoutRepository) Save(ctx context.Context, payout *finance.Payout) error {
	model := models.PayoutModelFromDomain(payout)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormPayoutRepository) paginate(query *gorm.DB, filter shared.Filter) (*shared.Paginated[finance.Payout], error) {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("payout_number ILIKE ? OR reference ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, PayoutSortFields, "created_at")
	var payoutModels []models.PayoutModel
	if err := query.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&payoutModels).Error; err != nil {
		return nil, err
	}

	payouts := make([]finance.Payout, len(payoutModels))
	for i, model := range payoutModels {
		payouts[i] = *model.ToDomain()
	}

	page := shared.NewPaginated(payouts, total, filter.Page, filter.Limit())
	return &page, nil
}

var _ finance.PayoutRepository = (*GormPayoutRepository)(nil)
