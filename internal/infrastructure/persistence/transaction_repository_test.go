package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockTransactionRepository(t *testing.T) (*GormTransactionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTransactionRepository(gormDB), mock, mockDB
}

func newSoldTransaction(t *testing.T, orgID uuid.UUID) *trade.Transaction {
	t.Helper()
	txn, err := trade.NewTransaction(orgID, "TXN-000001", uuid.New(), uuid.New(), uuid.New(),
		"BLUE-JACKET-1", "Vintage Denim Jacket",
		valueobject.NewMoneyUSDFromFloat(45), valueobject.ZeroUSD(),
		decimal.NewFromInt(60), trade.PaymentCard, time.Now())
	require.NoError(t, err)
	return txn
}

func TestGormTransactionRepository_CreateWithItemSold(t *testing.T) {
	t.Run("rolls back when the item is no longer available", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()
		txn := newSoldTransaction(t, orgID)

		// The item row was claimed by another sale, so the guarded update
		// touches nothing and no transaction row may be written.
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateWithItemSold(context.Background(), txn)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_NOT_AVAILABLE", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commits the sale and the item status together", func(t *testing.T) {
		repo, mock, mockDB := newMockTransactionRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()
		txn := newSoldTransaction(t, orgID)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "transactions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithItemSold(context.Background(), txn)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
