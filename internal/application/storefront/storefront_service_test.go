package storefront

import (
	"context"
	"testing"

	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrganizationRepository is a mock implementation of identity.OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*identity.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*identity.Organization, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Organization, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
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

func newStorefrontOrg(t *testing.T) *identity.Organization {
	t.Helper()
	org, err := identity.NewOrganization("Second Chance Finds", "second-chance", 30)
	require.NoError(t, err)
	return org
}

func newStorefrontItem(t *testing.T, orgID uuid.UUID) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(orgID, uuid.New(), "BLUE-JACKET-1", "Vintage Denim Jacket",
		valueobject.NewMoneyUSDFromFloat(45), catalog.ConditionGood, decimal.NewFromInt(60))
	require.NoError(t, err)
	return item
}

func TestStorefrontService_GetShop(t *testing.T) {
	ctx := context.Background()

	t.Run("trial shop is visible", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		itemRepo := new(MockItemRepository)
		service := NewStorefrontService(orgRepo, itemRepo, zap.NewNop())
		org := newStorefrontOrg(t)

		orgRepo.On("FindBySlug", ctx, "second-chance").Return(org, nil)

		shop, err := service.GetShop(ctx, "second-chance")

		require.NoError(t, err)
		assert.Equal(t, "Second Chance Finds", shop.Name)
		assert.Equal(t, "second-chance", shop.Slug)
	})

	t.Run("suspended shop is hidden", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		itemRepo := new(MockItemRepository)
		service := NewStorefrontService(orgRepo, itemRepo, zap.NewNop())
		org := newStorefrontOrg(t)
		require.NoError(t, org.Suspend())

		orgRepo.On("FindBySlug", ctx, "second-chance").Return(org, nil)

		_, err := service.GetShop(ctx, "second-chance")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("past due shop stays visible", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		itemRepo := new(MockItemRepository)
		service := NewStorefrontService(orgRepo, itemRepo, zap.NewNop())
		org := newStorefrontOrg(t)
		require.NoError(t, org.MarkPastDue())

		orgRepo.On("FindBySlug", ctx, "second-chance").Return(org, nil)

		_, err := service.GetShop(ctx, "second-chance")

		assert.NoError(t, err)
	})
}

func TestStorefrontService_Items(t *testing.T) {
	ctx := context.Background()

	t.Run("public listing omits consignor terms", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		itemRepo := new(MockItemRepository)
		service := NewStorefrontService(orgRepo, itemRepo, zap.NewNop())
		org := newStorefrontOrg(t)
		item := newStorefrontItem(t, org.ID)

		page := shared.NewPaginated([]catalog.Item{*item}, 1, 1, 20)
		orgRepo.On("FindBySlug", ctx, "second-chance").Return(org, nil)
		itemRepo.On("FindAvailableForStorefront", ctx, org.ID, mock.Anything).Return(&page, nil)

		result, err := service.ListItems(ctx, "second-chance", shared.DefaultFilter())

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "BLUE-JACKET-1", result.Items[0].SKU)
		assert.Equal(t, "45.00", result.Items[0].Price.StringFixed(2))
	})

	t.Run("sold item is not served individually", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		itemRepo := new(MockItemRepository)
		service := NewStorefrontService(orgRepo, itemRepo, zap.NewNop())
		org := newStorefrontOrg(t)
		item := newStorefrontItem(t, org.ID)
		require.NoError(t, item.MarkSold(item.ListedAt))

		orgRepo.On("FindBySlug", ctx, "second-chance").Return(org, nil)
		itemRepo.On("FindByID", ctx, org.ID, item.ID).Return(item, nil)

		_, err := service.GetItem(ctx, "second-chance", item.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
