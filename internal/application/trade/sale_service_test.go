package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTransactionRepository is a mock implementation of trade.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*trade.Transaction, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByNumber(ctx context.Context, orgID uuid.UUID, number string) (*trade.Transaction, error) {
	args := m.Called(ctx, orgID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Transaction], error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[trade.Transaction]), args.Error(1)
}

func (m *MockTransactionRepository) FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Transaction], error) {
	args := m.Called(ctx, orgID, consignorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[trade.Transaction]), args.Error(1)
}

func (m *MockTransactionRepository) FindUnpaidByConsignor(ctx context.Context, orgID, consignorID uuid.UUID) ([]trade.Transaction, error) {
	args := m.Called(ctx, orgID, consignorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByConsignorInPeriod(ctx context.Context, orgID, consignorID uuid.UUID, from, to time.Time) ([]trade.Transaction, error) {
	args := m.Called(ctx, orgID, consignorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByPayout(ctx context.Context, orgID, payoutID uuid.UUID) ([]trade.Transaction, error) {
	args := m.Called(ctx, orgID, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) NextTransactionNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	args := m.Called(ctx, orgID)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionRepository) CreateWithItemSold(ctx context.Context, txn *trade.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Save(ctx context.Context, txn *trade.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*catalog.Item, error) {
	args := m.Called(ctx, orgID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(*shared.Paginated[catalog.Item]), args.Error(1)
}

func (m *MockItemRepository) FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	args := m.Called(ctx, orgID, consignorID, filter)
	return args.Get(0).(*shared.Paginated[catalog.Item]), args.Error(1)
}

func (m *MockItemRepository) FindByStatus(ctx context.Context, orgID uuid.UUID, status catalog.ItemStatus, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	args := m.Called(ctx, orgID, status, filter)
	return args.Get(0).(*shared.Paginated[catalog.Item]), args.Error(1)
}

func (m *MockItemRepository) FindAvailableForStorefront(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(*shared.Paginated[catalog.Item]), args.Error(1)
}

func (m *MockItemRepository) ExistsBySKU(ctx context.Context, orgID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, orgID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func newAvailableItem(t *testing.T, orgID uuid.UUID, price string, splitPct int64) *catalog.Item {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(price, valueobject.USD)
	require.NoError(t, err)
	item, err := catalog.NewItem(orgID, uuid.New(), "BLUE-JACKET-1", "Vintage Denim Jacket",
		money, catalog.ConditionGood, decimal.NewFromInt(splitPct))
	require.NoError(t, err)
	return item
}

func TestSaleService_RecordSale(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	clerkID := uuid.New()

	t.Run("records a sale and splits the price", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		itemRepo := new(MockItemRepository)
		service := NewSaleService(txnRepo, itemRepo, zap.NewNop())
		item := newAvailableItem(t, orgID, "45.00", 60)

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)
		txnRepo.On("NextTransactionNumber", ctx, orgID).Return("TXN-000001", nil)
		txnRepo.On("CreateWithItemSold", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		result, err := service.RecordSale(ctx, orgID, clerkID, RecordSaleRequest{
			ItemID:        item.ID,
			PaymentMethod: "card",
		})

		require.NoError(t, err)
		assert.Equal(t, "TXN-000001", result.TransactionNumber)
		assert.Equal(t, "27.00", result.ConsignorAmount.StringFixed(2))
		assert.Equal(t, "18.00", result.ShopAmount.StringFixed(2))
		assert.Equal(t, "45.00", result.SalePrice.StringFixed(2))
		assert.True(t, item.IsSold())
		txnRepo.AssertExpectations(t)
		itemRepo.AssertExpectations(t)
	})

	t.Run("collected tax stays outside the split", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		itemRepo := new(MockItemRepository)
		service := NewSaleService(txnRepo, itemRepo, zap.NewNop())
		item := newAvailableItem(t, orgID, "45.00", 60)

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)
		txnRepo.On("NextTransactionNumber", ctx, orgID).Return("TXN-000001", nil)
		txnRepo.On("CreateWithItemSold", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		tax := decimal.RequireFromString("3.71")
		result, err := service.RecordSale(ctx, orgID, clerkID, RecordSaleRequest{
			ItemID:        item.ID,
			PaymentMethod: "card",
			SalesTax:      &tax,
		})

		require.NoError(t, err)
		assert.Equal(t, "3.71", result.SalesTax.StringFixed(2))
		assert.Equal(t, "27.00", result.ConsignorAmount.StringFixed(2))
		assert.Equal(t, "18.00", result.ShopAmount.StringFixed(2))
	})

	t.Run("share rounding never loses a cent", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		itemRepo := new(MockItemRepository)
		service := NewSaleService(txnRepo, itemRepo, zap.NewNop())
		item := newAvailableItem(t, orgID, "33.33", 33)

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)
		txnRepo.On("NextTransactionNumber", ctx, orgID).Return("TXN-000002", nil)
		txnRepo.On("CreateWithItemSold", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		result, err := service.RecordSale(ctx, orgID, clerkID, RecordSaleRequest{
			ItemID:        item.ID,
			PaymentMethod: "cash",
		})

		require.NoError(t, err)
		total := result.ConsignorAmount.MustAdd(result.ShopAmount)
		assert.True(t, total.Equals(result.SalePrice))
	})

	t.Run("price override is split with the snapshotted percentage", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		itemRepo := new(MockItemRepository)
		service := NewSaleService(txnRepo, itemRepo, zap.NewNop())
		item := newAvailableItem(t, orgID, "45.00", 60)

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)
		txnRepo.On("NextTransactionNumber", ctx, orgID).Return("TXN-000003", nil)
		txnRepo.On("CreateWithItemSold", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		discounted := decimal.RequireFromString("40.00")
		result, err := service.RecordSale(ctx, orgID, clerkID, RecordSaleRequest{
			ItemID:        item.ID,
			PaymentMethod: "cash",
			SalePrice:     &discounted,
		})

		require.NoError(t, err)
		assert.Equal(t, "40.00", result.SalePrice.StringFixed(2))
		assert.Equal(t, "24.00", result.ConsignorAmount.StringFixed(2))
		assert.Equal(t, "16.00", result.ShopAmount.StringFixed(2))
	})

	t.Run("failed write leaves no partial sale", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		itemRepo := new(MockItemRepository)
		service := NewSaleService(txnRepo, itemRepo, zap.NewNop())
		item := newAvailableItem(t, orgID, "45.00", 60)

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)
		txnRepo.On("NextTransactionNumber", ctx, orgID).Return("TXN-000004", nil)
		txnRepo.On("CreateWithItemSold", ctx, mock.AnythingOfType("*trade.Transaction")).
			Return(errors.New("connection reset"))

		_, err := service.RecordSale(ctx, orgID, clerkID, RecordSaleRequest{
			ItemID:        item.ID,
			PaymentMethod: "card",
		})

		require.Error(t, err)
		itemRepo.AssertNotCalled(t, "Save")
	})

	t.Run("item claimed by a concurrent sale is rejected", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		itemRepo := new(MockItemRepository)
		service := NewSaleService(txnRepo, itemRepo, zap.NewNop())
		item := newAvailableItem(t, orgID, "45.00", 60)

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)
		txnRepo.On("NextTransactionNumber", ctx, orgID).Return("TXN-000005", nil)
		txnRepo.On("CreateWithItemSold", ctx, mock.AnythingOfType("*trade.Transaction")).
			Return(shared.NewDomainError("ITEM_NOT_AVAILABLE", "Item is not available for sale"))

		_, err := service.RecordSale(ctx, orgID, clerkID, RecordSaleRequest{
			ItemID:        item.ID,
			PaymentMethod: "card",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_NOT_AVAILABLE", domainErr.Code)
	})

	t.Run("sold item cannot be sold again", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		itemRepo := new(MockItemRepository)
		service := NewSaleService(txnRepo, itemRepo, zap.NewNop())
		item := newAvailableItem(t, orgID, "45.00", 60)
		require.NoError(t, item.MarkSold(time.Now()))

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)

		_, err := service.RecordSale(ctx, orgID, clerkID, RecordSaleRequest{
			ItemID:        item.ID,
			PaymentMethod: "cash",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_SOLD", domainErr.Code)
		txnRepo.AssertNotCalled(t, "CreateWithItemSold")
	})

	t.Run("removed item cannot be sold", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		itemRepo := new(MockItemRepository)
		service := NewSaleService(txnRepo, itemRepo, zap.NewNop())
		item := newAvailableItem(t, orgID, "45.00", 60)
		require.NoError(t, item.Remove())

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)

		_, err := service.RecordSale(ctx, orgID, clerkID, RecordSaleRequest{
			ItemID:        item.ID,
			PaymentMethod: "cash",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_NOT_AVAILABLE", domainErr.Code)
	})
}
