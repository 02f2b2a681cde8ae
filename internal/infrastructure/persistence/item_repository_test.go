package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/consignhq/backend/internal/domain/catalog"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockItemRepository(t *testing.T) (*GormItemRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormItemRepository(gormDB), mock, mockDB
}

func TestGormItemRepository_FindByID(t *testing.T) {
	t.Run("rebuilds price from amount and currency", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		orgID := uuid.New()
		consignorID := uuid.New()
		listedAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "organization_id", "consignor_id", "sku", "title", "condition", "price", "currency", "split_pct", "status", "listed_at"}).
			AddRow(itemID, orgID, consignorID, "JKT-001", "Vintage Denim Jacket", "good", decimal.NewFromFloat(45), "USD", decimal.NewFromInt(60), "available", listedAt)

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(orgID, itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), orgID, itemID)

		require.NoError(t, err)
		assert.Equal(t, "JKT-001", item.SKU)
		assert.Equal(t, catalog.ItemStatusAvailable, item.Status)
		assert.Equal(t, "45.00", item.Price.StringFixed(2))
		assert.Equal(t, "USD", string(item.Price.Currency()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()
		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(orgID, itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), orgID, itemID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_ExistsBySKU(t *testing.T) {
	t.Run("uppercases the SKU before matching", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "items" WHERE organization_id = \$1 AND sku = \$2`).
			WithArgs(orgID, "JKT-001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySKU(context.Background(), orgID, "jkt-001")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_FindAvailableForStorefront(t *testing.T) {
	repo, mock, mockDB := newMockItemRepository(t)
	defer mockDB.Close()

	orgID := uuid.New()
	listedAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "items" WHERE organization_id = \$1 AND status = \$2`).
		WithArgs(orgID, string(catalog.ItemStatusAvailable)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "organization_id", "consignor_id", "sku", "title", "condition", "price", "currency", "split_pct", "status", "listed_at"}).
		AddRow(uuid.New(), orgID, uuid.New(), "JKT-001", "Vintage Denim Jacket", "good", decimal.NewFromFloat(45), "USD", decimal.NewFromInt(60), "available", listedAt)

	mock.ExpectQuery(`SELECT \* FROM "items" WHERE organization_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT .*`).
		WithArgs(orgID, string(catalog.ItemStatusAvailable), 20).
		WillReturnRows(rows)

	page, err := repo.FindAvailableForStorefront(context.Background(), orgID, shared.DefaultFilter())

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "JKT-001", page.Items[0].SKU)
	assert.NoError(t, mock.ExpectationsWereMet())
}
