package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Item]), args.Error(1)
}

func (m *MockItemRepository) FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	args := m.Called(ctx, orgID, consignorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Item]), args.Error(1)
}

func (m *MockItemRepository) FindByStatus(ctx context.Context, orgID uuid.UUID, status catalog.ItemStatus, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	args := m.Called(ctx, orgID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Item]), args.Error(1)
}

func (m *MockItemRepository) FindAvailableForStorefront(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Item], error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockConsignorRepository is a mock implementation of consignment.ConsignorRepository
type MockConsignorRepository struct {
	mock.Mock
}

func (m *MockConsignorRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*consignment.Consignor, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consignment.Consignor), args.Error(1)
}

func (m *MockConsignorRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*consignment.Consignor, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consignment.Consignor), args.Error(1)
}

func (m *MockConsignorRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[consignment.Consignor], error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[consignment.Consignor]), args.Error(1)
}

func (m *MockConsignorRepository) FindByStatus(ctx context.Context, orgID uuid.UUID, status consignment.ConsignorStatus, filter shared.Filter) (*shared.Paginated[consignment.Consignor], error) {
	args := m.Called(ctx, orgID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[consignment.Consignor]), args.Error(1)
}

func (m *MockConsignorRepository) ExistsByCode(ctx context.Context, orgID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, orgID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsignorRepository) Save(ctx context.Context, consignor *consignment.Consignor) error {
	args := m.Called(ctx, consignor)
	return args.Error(0)
}

func (m *MockConsignorRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func newActiveConsignor(t *testing.T, orgID uuid.UUID) *consignment.Consignor {
	t.Helper()
	consignor, err := consignment.NewConsignor(orgID, "MC-100", "Marge", "Culver", decimal.NewFromInt(60))
	require.NoError(t, err)
	require.NoError(t, consignor.Approve())
	return consignor
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("snapshots the consignor default split", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		consignorRepo := new(MockConsignorRepository)
		service := NewItemService(itemRepo, consignorRepo, zap.NewNop())
		consignor := newActiveConsignor(t, orgID)

		consignorRepo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		itemRepo.On("ExistsBySKU", ctx, orgID, "BLUE-JACKET-1").Return(false, nil)
		itemRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Item")).Return(nil)

		result, err := service.Create(ctx, orgID, CreateItemRequest{
			ConsignorID: consignor.ID,
			SKU:         "blue-jacket-1",
			Title:       "Vintage Denim Jacket",
			Condition:   "good",
			Price:       decimal.RequireFromString("45.00"),
		})

		require.NoError(t, err)
		assert.Equal(t, "BLUE-JACKET-1", result.SKU)
		assert.True(t, result.SplitPct.Equal(decimal.NewFromInt(60)))
		assert.Equal(t, string(catalog.ItemStatusAvailable), result.Status)
		assert.Equal(t, valueobject.USD, result.Price.Currency())
		itemRepo.AssertExpectations(t)
	})

	t.Run("explicit split overrides the consignor default", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		consignorRepo := new(MockConsignorRepository)
		service := NewItemService(itemRepo, consignorRepo, zap.NewNop())
		consignor := newActiveConsignor(t, orgID)

		consignorRepo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		itemRepo.On("ExistsBySKU", ctx, orgID, mock.Anything).Return(false, nil)
		itemRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Item")).Return(nil)

		split := decimal.NewFromInt(75)
		result, err := service.Create(ctx, orgID, CreateItemRequest{
			ConsignorID: consignor.ID,
			SKU:         "BLUE-JACKET-2",
			Title:       "Vintage Denim Jacket",
			Condition:   "good",
			Price:       decimal.RequireFromString("45.00"),
			SplitPct:    &split,
		})

		require.NoError(t, err)
		assert.True(t, result.SplitPct.Equal(split))
	})

	t.Run("inactive consignor cannot list", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		consignorRepo := new(MockConsignorRepository)
		service := NewItemService(itemRepo, consignorRepo, zap.NewNop())

		consignor, err := consignment.NewConsignor(orgID, "MC-100", "Marge", "Culver", decimal.NewFromInt(60))
		require.NoError(t, err)

		consignorRepo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)

		_, err = service.Create(ctx, orgID, CreateItemRequest{
			ConsignorID: consignor.ID,
			SKU:         "BLUE-JACKET-1",
			Title:       "Vintage Denim Jacket",
			Condition:   "good",
			Price:       decimal.RequireFromString("45.00"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONSIGNOR_NOT_ACTIVE", domainErr.Code)
		itemRepo.AssertNotCalled(t, "Save")
	})

	t.Run("duplicate SKU is rejected", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		consignorRepo := new(MockConsignorRepository)
		service := NewItemService(itemRepo, consignorRepo, zap.NewNop())
		consignor := newActiveConsignor(t, orgID)

		consignorRepo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		itemRepo.On("ExistsBySKU", ctx, orgID, "BLUE-JACKET-1").Return(true, nil)

		_, err := service.Create(ctx, orgID, CreateItemRequest{
			ConsignorID: consignor.ID,
			SKU:         "BLUE-JACKET-1",
			Title:       "Vintage Denim Jacket",
			Condition:   "good",
			Price:       decimal.RequireFromString("45.00"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SKU_TAKEN", domainErr.Code)
	})
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	newTestItem := func(t *testing.T) *catalog.Item {
		t.Helper()
		item, err := catalog.NewItem(orgID, uuid.New(), "BLUE-JACKET-1", "Vintage Denim Jacket",
			valueobject.NewMoneyUSDFromFloat(45), catalog.ConditionGood, decimal.NewFromInt(60))
		require.NoError(t, err)
		return item
	}

	t.Run("price change keeps the listing currency", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		consignorRepo := new(MockConsignorRepository)
		service := NewItemService(itemRepo, consignorRepo, zap.NewNop())
		item := newTestItem(t)

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)

		newPrice := decimal.RequireFromString("39.99")
		result, err := service.Update(ctx, orgID, item.ID, UpdateItemRequest{Price: &newPrice})

		require.NoError(t, err)
		assert.True(t, result.Price.Amount().Equal(newPrice))
		assert.Equal(t, valueobject.USD, result.Price.Currency())
	})

	t.Run("sold item cannot be edited", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		consignorRepo := new(MockConsignorRepository)
		service := NewItemService(itemRepo, consignorRepo, zap.NewNop())
		item := newTestItem(t)
		require.NoError(t, item.MarkSold(time.Now()))

		itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)

		title := "New Title"
		_, err := service.Update(ctx, orgID, item.ID, UpdateItemRequest{Title: &title})

		require.Error(t, err)
		itemRepo.AssertNotCalled(t, "Save")
	})
}

func TestItemService_RemoveAndRelist(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	itemRepo := new(MockItemRepository)
	consignorRepo := new(MockConsignorRepository)
	service := NewItemService(itemRepo, consignorRepo, zap.NewNop())

	item, err := catalog.NewItem(orgID, uuid.New(), "BLUE-JACKET-1", "Vintage Denim Jacket",
		valueobject.NewMoneyUSDFromFloat(45), catalog.ConditionGood, decimal.NewFromInt(60))
	require.NoError(t, err)

	itemRepo.On("FindByID", ctx, orgID, item.ID).Return(item, nil)
	itemRepo.On("Save", ctx, item).Return(nil)

	removed, err := service.Remove(ctx, orgID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, string(catalog.ItemStatusRemoved), removed.Status)

	relisted, err := service.Relist(ctx, orgID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, string(catalog.ItemStatusAvailable), relisted.Status)
	assert.Nil(t, relisted.RemovedAt)
}
