package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrganizationRepository struct {
	mock.Mock
}

func (m *mockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*identity.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*identity.Organization, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Organization, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTierTestRouter(orgRepo identity.OrganizationRepository, orgID uuid.UUID, required identity.SubscriptionTier) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(JWTOrgIDKey, orgID.String())
		c.Next()
	})
	router.Use(RequireTier(orgRepo, required, nil))
	router.GET("/gated", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRequireTier_Allowed(t *testing.T) {
	org, err := identity.NewOrganization("Second Chance Finds", "second-chance", 14)
	require.NoError(t, err)
	require.NoError(t, org.ChangeTier(identity.TierPro))

	repo := new(mockOrganizationRepository)
	repo.On("FindByID", mock.Anything, org.ID).Return(org, nil)

	router := newTierTestRouter(repo, org.ID, identity.TierPro)
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireTier_UpgradeRequired(t *testing.T) {
	org, err := identity.NewOrganization("Second Chance Finds", "second-chance", 14)
	require.NoError(t, err)
	// Default tier is basic

	repo := new(mockOrganizationRepository)
	repo.On("FindByID", mock.Anything, org.ID).Return(org, nil)

	router := newTierTestRouter(repo, org.ID, identity.TierPro)
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	var body struct {
		Error struct {
			Code            string `json:"code"`
			RequiredTier    string `json:"required_tier"`
			UpgradeRequired bool   `json:"upgrade_required"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, shared.ErrPaymentRequired.Code, body.Error.Code)
	assert.Equal(t, "pro", body.Error.RequiredTier)
	assert.True(t, body.Error.UpgradeRequired)
}

func TestRequireTier_SuspendedDenied(t *testing.T) {
	org, err := identity.NewOrganization("Second Chance Finds", "second-chance", 14)
	require.NoError(t, err)
	require.NoError(t, org.ChangeTier(identity.TierEnterprise))
	require.NoError(t, org.Suspend())

	repo := new(mockOrganizationRepository)
	repo.On("FindByID", mock.Anything, org.ID).Return(org, nil)

	router := newTierTestRouter(repo, org.ID, identity.TierBasic)
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	// Suspension is not a tier shortfall; no upgrade prompt.
	var body struct {
		Error struct {
			UpgradeRequired bool `json:"upgrade_required"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Error.UpgradeRequired)
}

func TestRequireTier_MissingClaims(t *testing.T) {
	repo := new(mockOrganizationRepository)

	router := gin.New()
	router.Use(RequireTier(repo, identity.TierPro, nil))
	router.GET("/gated", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	repo.AssertNotCalled(t, "FindByID")
}

func TestRequireRoles(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(JWTRoleKey, c.GetHeader("X-Test-Role"))
		c.Next()
	})
	router.Use(RequireStaff())
	router.GET("/staff", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for role, want := range map[string]int{
		"owner":    http.StatusOK,
		"clerk":    http.StatusOK,
		"provider": http.StatusForbidden,
		"customer": http.StatusForbidden,
		"":         http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("X-Test-Role", role)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "role %q", role)
	}
}
