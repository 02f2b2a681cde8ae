package trade

import (
	"context"
	"time"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleService records sales at the register
type SaleService struct {
	txnRepo  trade.TransactionRepository
	itemRepo catalog.ItemRepository
	logger   *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(txnRepo trade.TransactionRepository, itemRepo catalog.ItemRepository, logger *zap.Logger) *SaleService {
	return &SaleService{
		txnRepo:  txnRepo,
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// RecordSale sells one item: marks it sold, snapshots its price and
// split, and writes the transaction with both computed shares.
func (s *SaleService) RecordSale(ctx context.Context, orgID, clerkID uuid.UUID, req RecordSaleRequest) (*TransactionResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, orgID, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable() {
		if item.IsSold() {
			return nil, shared.NewDomainError("ITEM_SOLD", "Item has already been sold")
		}
		return nil, shared.NewDomainError("ITEM_NOT_AVAILABLE", "Item is not available for sale")
	}

	salePrice := item.Price
	if req.SalePrice != nil {
		// Register override, e.g. a negotiated discount
		salePrice, err = valueobject.NewMoney(*req.SalePrice, item.Price.Currency())
		if err != nil {
			return nil, err
		}
		if !salePrice.IsPositive() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Sale price must be positive")
		}
	}

	salesTax := valueobject.Zero(salePrice.Currency())
	if req.SalesTax != nil {
		salesTax, err = valueobject.NewMoney(*req.SalesTax, salePrice.Currency())
		if err != nil {
			return nil, err
		}
	}

	soldAt := time.Now()
	if req.SoldAt != nil {
		soldAt = *req.SoldAt
	}

	number, err := s.txnRepo.NextTransactionNumber(ctx, orgID)
	if err != nil {
		return nil, err
	}

	txn, err := trade.NewTransaction(orgID, number, item.ID, item.ConsignorID, clerkID,
		item.SKU, item.Title, salePrice, salesTax, item.SplitPct, trade.PaymentMethod(req.PaymentMethod), soldAt)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		txn.SetNotes(req.Notes)
	}

	if err := item.MarkSold(soldAt); err != nil {
		return nil, err
	}

	// One atomic write: the transaction row and the item's sold status
	// commit or roll back together, and the store rejects a concurrent
	// sale of the same item.
	if err := s.txnRepo.CreateWithItemSold(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("Sale recorded",
		zap.String("org_id", orgID.String()),
		zap.String("transaction_number", txn.TransactionNumber),
		zap.String("sku", txn.ItemSKU),
		zap.String("sale_price", txn.SalePrice.String()),
		zap.String("consignor_amount", txn.ConsignorAmount.String()),
		zap.String("shop_amount", txn.ShopAmount.String()))

	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// Get returns a transaction by ID
func (s *SaleService) Get(ctx context.Context, orgID, id uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// GetByNumber returns a transaction by its receipt number
func (s *SaleService) GetByNumber(ctx context.Context, orgID uuid.UUID, number string) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByNumber(ctx, orgID, number)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// List lists transactions matching the filter
func (s *SaleService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	result, err := s.txnRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	return mapTransactionPage(result), nil
}

// ListByConsignor lists a consignor's sales
func (s *SaleService) ListByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	result, err := s.txnRepo.FindByConsignor(ctx, orgID, consignorID, filter)
	if err != nil {
		return nil, err
	}
	return mapTransactionPage(result), nil
}

// ListUnpaidByConsignor lists sales whose consignor share is still owed
func (s *SaleService) ListUnpaidByConsignor(ctx context.Context, orgID, consignorID uuid.UUID) ([]TransactionResponse, error) {
	txns, err := s.txnRepo.FindUnpaidByConsignor(ctx, orgID, consignorID)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses, nil
}

func mapTransactionPage(page *shared.Paginated[trade.Transaction]) *shared.Paginated[TransactionResponse] {
	items := make([]TransactionResponse, len(page.Items))
	for i := range page.Items {
		items[i] = ToTransactionResponse(&page.Items[i])
	}
	return &shared.Paginated[TransactionResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
