package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/consignhq/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements trade.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by ID within an organization
func (r *GormTransactionRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*trade.Transaction, error) {
	var model models.TransactionModel
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

// FindByNumber finds a transaction by its receipt number
func (r *GormTransactionRepository) FindByNumber(ctx context.Context, orgID uuid.UUID, number string) (*trade.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND transaction_number = ?", orgID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Transaction], error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("organization_id = ?", orgID)
	return r.paginate(query, filter)
}

// FindByConsignor lists a consignor's transactions
func (r *GormTransactionRepository) FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Transaction], error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("organization_id = ? AND consignor_id = ?", orgID, consignorID)
	return r.paginate(query, filter)
}

// FindUnpaidByConsignor lists transactions not yet covered by any payout
func (r *GormTransactionRepository) FindUnpaidByConsignor(ctx context.Context, orgID, consignorID uuid.UUID) ([]trade.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND consignor_id = ? AND payout_id IS NULL", orgID, consignorID).
		Order("sold_at ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txnModels), nil
}

// FindByConsignorInPeriod lists a consignor's transactions sold within [from, to]
func (r *GormTransactionRepository) FindByConsignorInPeriod(ctx context.Context, orgID, consignorID uuid.UUID, from, to time.Time) ([]trade.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND consignor_id = ? AND sold_at >= ? AND sold_at <= ?", orgID, consignorID, from, to).
		Order("sold_at ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txnModels), nil
}

// FindByPayout lists the transactions included in a payout
func (r *GormTransactionRepository) FindByPayout(ctx context.Context, orgID, payoutID uuid.UUID) ([]trade.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND payout_id = ?", orgID, payoutID).
		Order("sold_at ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txnModels), nil
}

// NextTransactionNumber reserves the next sequential receipt number
func (r *GormTransactionRepository) NextTransactionNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	var max int64
	err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("organization_id = ?", orgID).
		Select("COALESCE(MAX(CAST(SUBSTRING(transaction_number FROM '[0-9]+$') AS BIGINT)), 0)").
		Scan(&max).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("S-%06d", max+1), nil
}

// CreateWithItemSold writes the sale transaction and marks its item sold
// atomically. The item update only touches the row while its status is
// still available; a concurrent sale leaves the count short and the
// whole transaction rolls back, so an item sells at most once.
func (r *GormTransactionRepository) CreateWithItemSold(ctx context.Context, txn *trade.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ItemModel{}).
			Where("organization_id = ? AND id = ? AND status = ?",
				txn.OrganizationID, txn.ItemID, catalog.ItemStatusAvailable).
			Updates(map[string]any{
				"status":     catalog.ItemStatusSold,
				"sold_at":    txn.SoldAt,
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return shared.NewDomainError("ITEM_NOT_AVAILABLE", "Item is not available for sale")
		}

		model := models.TransactionModelFromDomain(txn)
		return tx.Create(model).Error
	})
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, txn *trade.Transaction) error {
	model := models.TransactionModelFromDomain(txn)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormTransactionRepository) paginate(query *gorm.DB, filter shared.Filter) (*shared.Paginated[trade.Transaction], error) {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("transaction_number ILIKE ? OR item_sku ILIKE ? OR item_title ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "sold_at")
	var txnModels []models.TransactionModel
	if err := query.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&txnModels).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(toDomainTransactions(txnModels), total, filter.Page, filter.Limit())
	return &page, nil
}

func toDomainTransactions(txnModels []models.TransactionModel) []trade.Transaction {
	txns := make([]trade.Transaction, len(txnModels))
	for i, model := range txnModels {
		txns[i] = *model.ToDomain()
	}
	return txns
}

var _ trade.TransactionRepository = (*GormTransactionRepository)(nil)
