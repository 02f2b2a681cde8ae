package consignment

import (
	"context"
	"testing"
	"time"

	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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
	return args.Get(0).(*shared.Paginated[trade.Transaction]), args.Error(1)
}

func (m *MockTransactionRepository) FindByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Transaction], error) {
	args := m.Called(ctx, orgID, consignorID, filter)
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

func newTestConsignor(t *testing.T, orgID uuid.UUID) *consignment.Consignor {
	t.Helper()
	consignor, err := consignment.NewConsignor(orgID, "MC-100", "Marge", "Culver", decimal.NewFromInt(60))
	require.NoError(t, err)
	return consignor
}

func TestConsignorService_Create(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("creates a pending consignor with uppercased code", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		service := NewConsignorService(repo, new(MockTransactionRepository), zap.NewNop())

		repo.On("ExistsByCode", ctx, orgID, "MC-100").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*consignment.Consignor")).Return(nil)

		result, err := service.Create(ctx, orgID, CreateConsignorRequest{
			Code:            "mc-100",
			FirstName:       "Marge",
			LastName:        "Culver",
			Email:           "marge@example.test",
			DefaultSplitPct: decimal.NewFromInt(60),
			PayoutMethod:    "check",
		})

		require.NoError(t, err)
		assert.Equal(t, "MC-100", result.Code)
		assert.Equal(t, "Marge Culver", result.FullName)
		assert.Equal(t, string(consignment.ConsignorStatusPending), result.Status)
		assert.True(t, result.DefaultSplitPct.Equal(decimal.NewFromInt(60)))
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		service := NewConsignorService(repo, new(MockTransactionRepository), zap.NewNop())

		repo.On("ExistsByCode", ctx, orgID, "MC-100").Return(true, nil)

		_, err := service.Create(ctx, orgID, CreateConsignorRequest{
			Code:            "MC-100",
			FirstName:       "Marge",
			LastName:        "Culver",
			DefaultSplitPct: decimal.NewFromInt(60),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CODE_TAKEN", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects split percentage above 100", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		service := NewConsignorService(repo, new(MockTransactionRepository), zap.NewNop())

		_, err := service.Create(ctx, orgID, CreateConsignorRequest{
			Code:            "MC-100",
			FirstName:       "Marge",
			LastName:        "Culver",
			DefaultSplitPct: decimal.NewFromInt(120),
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "ExistsByCode")
	})
}

func TestConsignorService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("approve moves pending to active", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		service := NewConsignorService(repo, new(MockTransactionRepository), zap.NewNop())
		consignor := newTestConsignor(t, orgID)

		repo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		repo.On("Save", ctx, consignor).Return(nil)

		result, err := service.Approve(ctx, orgID, consignor.ID)

		require.NoError(t, err)
		assert.Equal(t, string(consignment.ConsignorStatusActive), result.Status)
		assert.True(t, consignor.CanConsign())
	})

	t.Run("reject records the reason in notes", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		service := NewConsignorService(repo, new(MockTransactionRepository), zap.NewNop())
		consignor := newTestConsignor(t, orgID)

		repo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		repo.On("Save", ctx, consignor).Return(nil)

		result, err := service.Reject(ctx, orgID, consignor.ID, RejectConsignorRequest{Reason: "incomplete application"})

		require.NoError(t, err)
		assert.Equal(t, string(consignment.ConsignorStatusRejected), result.Status)
		assert.Equal(t, "incomplete application", result.Notes)
	})

	t.Run("approve on an already active consignor fails", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		service := NewConsignorService(repo, new(MockTransactionRepository), zap.NewNop())
		consignor := newTestConsignor(t, orgID)
		require.NoError(t, consignor.Approve())

		repo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)

		_, err := service.Approve(ctx, orgID, consignor.ID)

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("close is terminal", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		service := NewConsignorService(repo, new(MockTransactionRepository), zap.NewNop())
		consignor := newTestConsignor(t, orgID)
		require.NoError(t, consignor.Approve())

		repo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		repo.On("Save", ctx, consignor).Return(nil)

		result, err := service.Close(ctx, orgID, consignor.ID)

		require.NoError(t, err)
		assert.Equal(t, string(consignment.ConsignorStatusDeactivated), result.Status)
		assert.False(t, consignor.CanConsign())
	})
}

func TestConsignorService_Update(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		service := NewConsignorService(repo, new(MockTransactionRepository), zap.NewNop())
		consignor := newTestConsignor(t, orgID)
		require.NoError(t, consignor.SetContact("marge@example.test", "555-0100", ""))

		repo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		repo.On("Save", ctx, consignor).Return(nil)

		newSplit := decimal.NewFromInt(55)
		result, err := service.Update(ctx, orgID, consignor.ID, UpdateConsignorRequest{
			DefaultSplitPct: &newSplit,
		})

		require.NoError(t, err)
		assert.True(t, result.DefaultSplitPct.Equal(newSplit))
		assert.Equal(t, "marge@example.test", result.Email)
		assert.Equal(t, "555-0100", result.Phone)
	})
}

func TestConsignorService_Delete(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("deletes when nothing is owed", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		txnRepo := new(MockTransactionRepository)
		service := NewConsignorService(repo, txnRepo, zap.NewNop())
		consignor := newTestConsignor(t, orgID)

		repo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		txnRepo.On("FindUnpaidByConsignor", ctx, orgID, consignor.ID).Return([]trade.Transaction{}, nil)
		repo.On("Delete", ctx, orgID, consignor.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, orgID, consignor.ID))
		repo.AssertExpectations(t)
	})

	t.Run("blocked while unpaid sales remain", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		txnRepo := new(MockTransactionRepository)
		service := NewConsignorService(repo, txnRepo, zap.NewNop())
		consignor := newTestConsignor(t, orgID)

		repo.On("FindByID", ctx, orgID, consignor.ID).Return(consignor, nil)
		txnRepo.On("FindUnpaidByConsignor", ctx, orgID, consignor.ID).Return([]trade.Transaction{{}}, nil)

		err := service.Delete(ctx, orgID, consignor.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_UNPAID_SALES", domainErr.Code)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("unknown consignor", func(t *testing.T) {
		repo := new(MockConsignorRepository)
		txnRepo := new(MockTransactionRepository)
		service := NewConsignorService(repo, txnRepo, zap.NewNop())
		id := uuid.New()

		repo.On("FindByID", ctx, orgID, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, orgID, id)

		require.ErrorIs(t, err, shared.ErrNotFound)
		txnRepo.AssertNotCalled(t, "FindUnpaidByConsignor")
	})
}
