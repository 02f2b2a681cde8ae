package trade

import (
	"testing"
	"time"

	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(t *testing.T) *Transaction {
	t.Helper()
	txn, err := NewTransaction(
		uuid.New(), "TXN-000123",
		uuid.New(), uuid.New(), uuid.New(),
		"SKU-001", "Leather Jacket",
		valueobject.NewMoneyUSDFromFloat(45.00),
		valueobject.NewMoneyUSDFromFloat(3.71),
		decimal.NewFromInt(60),
		PaymentCard,
		time.Now(),
	)
	require.NoError(t, err)
	return txn
}

func TestNewTransaction(t *testing.T) {
	t.Run("snapshots the split at sale time", func(t *testing.T) {
		txn := newTestTransaction(t)

		assert.Equal(t, "27.00", txn.ConsignorAmount.StringFixed(2))
		assert.Equal(t, "18.00", txn.ShopAmount.StringFixed(2))
		sum := txn.ConsignorAmount.MustAdd(txn.ShopAmount)
		assert.True(t, sum.Equals(txn.SalePrice))
	})

	t.Run("tax is tracked outside the split", func(t *testing.T) {
		txn := newTestTransaction(t)

		assert.Equal(t, "3.71", txn.SalesTax.StringFixed(2))
		sum := txn.ConsignorAmount.MustAdd(txn.ShopAmount)
		assert.True(t, sum.Equals(txn.SalePrice), "tax never enters the split")
	})

	t.Run("rejects zero sale price", func(t *testing.T) {
		_, err := NewTransaction(uuid.New(), "TXN-1", uuid.New(), uuid.New(), uuid.New(), "S", "T",
			valueobject.ZeroUSD(), valueobject.ZeroUSD(), decimal.NewFromInt(50), PaymentCash, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects negative tax", func(t *testing.T) {
		_, err := NewTransaction(uuid.New(), "TXN-1", uuid.New(), uuid.New(), uuid.New(), "S", "T",
			valueobject.NewMoneyUSDFromFloat(10), valueobject.NewMoneyUSDFromFloat(-1), decimal.NewFromInt(50), PaymentCash, time.Now())
		assert.Error(t, err)
	})

	t.Run("starts unpaid", func(t *testing.T) {
		txn := newTestTransaction(t)

		assert.False(t, txn.IsPaidOut())
		assert.Nil(t, txn.PayoutID)
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewTransaction(uuid.New(), "", uuid.New(), uuid.New(), uuid.New(), "S", "T",
			valueobject.NewMoneyUSDFromFloat(10), valueobject.ZeroUSD(), decimal.NewFromInt(50), PaymentCash, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewTransaction(uuid.New(), "TXN-1", uuid.New(), uuid.New(), uuid.New(), "S", "T",
			valueobject.NewMoneyUSDFromFloat(10), valueobject.ZeroUSD(), decimal.NewFromInt(50), PaymentMethod("barter"), time.Now())
		assert.Error(t, err)
	})

	t.Run("defaults zero sold time to now", func(t *testing.T) {
		txn, err := NewTransaction(uuid.New(), "TXN-1", uuid.New(), uuid.New(), uuid.New(), "S", "T",
			valueobject.NewMoneyUSDFromFloat(10), valueobject.ZeroUSD(), decimal.NewFromInt(50), PaymentCash, time.Time{})
		require.NoError(t, err)
		assert.False(t, txn.SoldAt.IsZero())
	})
}

func TestTransaction_AssignPayout(t *testing.T) {
	t.Run("assigns once", func(t *testing.T) {
		txn := newTestTransaction(t)
		payoutID := uuid.New()

		require.NoError(t, txn.AssignPayout(payoutID))
		assert.True(t, txn.IsPaidOut())
		assert.Equal(t, payoutID, *txn.PayoutID)
	})

	t.Run("second assignment fails with already paid out", func(t *testing.T) {
		txn := newTestTransaction(t)
		require.NoError(t, txn.AssignPayout(uuid.New()))

		err := txn.AssignPayout(uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyPaidOut)
	})

	t.Run("release makes it claimable again", func(t *testing.T) {
		txn := newTestTransaction(t)
		require.NoError(t, txn.AssignPayout(uuid.New()))

		txn.ReleasePayout()
		assert.False(t, txn.IsPaidOut())
		assert.NoError(t, txn.AssignPayout(uuid.New()))
	})
}
