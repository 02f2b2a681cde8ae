package identity

import (
	"context"
	"testing"

	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

func newTestOrganizationService(orgRepo *MockOrganizationRepository, userRepo *MockUserRepository) *OrganizationService {
	return NewOrganizationService(orgRepo, userRepo, 30, zap.NewNop())
}

func TestOrganizationService_Register(t *testing.T) {
	ctx := context.Background()

	validRequest := RegisterOrganizationRequest{
		Name:          "Second Chance Finds",
		Slug:          "second-chance",
		OwnerEmail:    "owner@shop.test",
		OwnerPassword: "owner-password1",
	}

	t.Run("creates organization with owner account on trial", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)

		orgRepo.On("ExistsBySlug", ctx, "second-chance").Return(false, nil)
		orgRepo.On("Save", ctx, mock.AnythingOfType("*identity.Organization")).Return(nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := service.Register(ctx, validRequest)

		require.NoError(t, err)
		assert.Equal(t, "Second Chance Finds", result.Name)
		assert.Equal(t, "second-chance", result.Slug)
		assert.Equal(t, string(identity.SubscriptionStatusTrial), result.SubscriptionStatus)
		assert.Equal(t, string(identity.TierBasic), result.SubscriptionTier)
		assert.NotNil(t, result.TrialEndsAt)

		savedUser := userRepo.Calls[0].Arguments.Get(1).(*identity.User)
		assert.Equal(t, identity.RoleOwner, savedUser.Role)
		assert.Equal(t, result.ID, savedUser.OrganizationID)
		orgRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects taken slug", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)

		orgRepo.On("ExistsBySlug", ctx, "second-chance").Return(true, nil)

		_, err := service.Register(ctx, validRequest)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SLUG_TAKEN", domainErr.Code)
		orgRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects invalid slug before hitting the repository", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)

		req := validRequest
		req.Slug = "Not A Slug!"

		_, err := service.Register(ctx, req)

		require.Error(t, err)
		orgRepo.AssertNotCalled(t, "ExistsBySlug")
	})

	t.Run("rolls back organization when owner save fails", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)

		orgRepo.On("ExistsBySlug", ctx, "second-chance").Return(false, nil)
		orgRepo.On("Save", ctx, mock.AnythingOfType("*identity.Organization")).Return(nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(assert.AnError)
		orgRepo.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

		_, err := service.Register(ctx, validRequest)

		require.Error(t, err)
		orgRepo.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("uuid.UUID"))
	})
}

func TestOrganizationService_ChangeTier(t *testing.T) {
	ctx := context.Background()

	t.Run("upgrading a trial activates the subscription", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)

		org, err := identity.NewOrganization("Second Chance Finds", "second-chance", 30)
		require.NoError(t, err)

		orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)
		orgRepo.On("Save", ctx, org).Return(nil)

		result, err := service.ChangeTier(ctx, org.ID, ChangeTierRequest{Tier: "pro"})

		require.NoError(t, err)
		assert.Equal(t, string(identity.TierPro), result.SubscriptionTier)
		assert.Equal(t, string(identity.SubscriptionStatusActive), result.SubscriptionStatus)
	})
}

func TestOrganizationService_CreateUser(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("creates a clerk account", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)

		userRepo.On("ExistsByEmail", ctx, orgID, "clerk@shop.test").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := service.CreateUser(ctx, orgID, CreateUserRequest{
			Email:       "clerk@shop.test",
			Password:    "clerk-password1",
			DisplayName: "Front Desk",
			Role:        "clerk",
		})

		require.NoError(t, err)
		assert.Equal(t, "clerk", result.Role)
		assert.Equal(t, "Front Desk", result.DisplayName)
		assert.Equal(t, orgID, result.OrgID)
	})

	t.Run("provider account requires a consignor link", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)

		_, err := service.CreateUser(ctx, orgID, CreateUserRequest{
			Email:    "provider@shop.test",
			Password: "provider-pass1",
			Role:     "provider",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONSIGNOR_REQUIRED", domainErr.Code)
	})

	t.Run("provider account carries the consignor link", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)
		consignorID := uuid.New()

		userRepo.On("ExistsByEmail", ctx, orgID, "provider@shop.test").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := service.CreateUser(ctx, orgID, CreateUserRequest{
			Email:       "provider@shop.test",
			Password:    "provider-pass1",
			Role:        "provider",
			ConsignorID: &consignorID,
		})

		require.NoError(t, err)
		require.NotNil(t, result.ConsignorID)
		assert.Equal(t, consignorID, *result.ConsignorID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		userRepo := new(MockUserRepository)
		service := newTestOrganizationService(orgRepo, userRepo)

		userRepo.On("ExistsByEmail", ctx, orgID, "clerk@shop.test").Return(true, nil)

		_, err := service.CreateUser(ctx, orgID, CreateUserRequest{
			Email:    "clerk@shop.test",
			Password: "clerk-password1",
			Role:     "clerk",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})
}
