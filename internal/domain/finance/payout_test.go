package finance

import (
	"testing"
	"time"

	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriod(t *testing.T) valueobject.Period {
	t.Helper()
	period, err := valueobject.NewPeriod(time.Now().Add(-30*24*time.Hour), time.Now())
	require.NoError(t, err)
	return period
}

func newTestPayout(t *testing.T) *Payout {
	t.Helper()
	p, err := NewPayout(uuid.New(), "PAY-000042", uuid.New(), testPeriod(t), valueobject.NewMoneyUSDFromFloat(127.50), 5, "check")
	require.NoError(t, err)
	return p
}

func TestNewPayout(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		p := newTestPayout(t)

		assert.Equal(t, PayoutStatusPending, p.Status)
		assert.Equal(t, 5, p.TransactionCount)
		assert.False(t, p.SyncedToLedger)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		_, err := NewPayout(uuid.New(), "PAY-1", uuid.New(), testPeriod(t), valueobject.ZeroUSD(), 0, "check")
		assert.Error(t, err)
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := NewPayout(uuid.New(), "PAY-1", uuid.New(), testPeriod(t), valueobject.NewMoneyUSDFromFloat(-1), 1, "check")
		assert.Error(t, err)
	})
}

func TestPayout_Lifecycle(t *testing.T) {
	t.Run("pending to processing to paid", func(t *testing.T) {
		p := newTestPayout(t)

		require.NoError(t, p.StartProcessing())
		assert.Equal(t, PayoutStatusProcessing, p.Status)
		assert.NotNil(t, p.ProcessedAt)

		require.NoError(t, p.MarkPaid("CHK-1031"))
		assert.Equal(t, PayoutStatusPaid, p.Status)
		assert.Equal(t, "CHK-1031", p.Reference)
		assert.NotNil(t, p.PaidAt)
		assert.True(t, p.IsTerminal())
	})

	t.Run("cannot pay directly from pending", func(t *testing.T) {
		p := newTestPayout(t)
		assert.Error(t, p.MarkPaid("CHK-1"))
	})

	t.Run("cancel from pending", func(t *testing.T) {
		p := newTestPayout(t)

		require.NoError(t, p.Cancel("consignor requested store credit instead"))
		assert.Equal(t, PayoutStatusCancelled, p.Status)
		assert.True(t, p.IsTerminal())
	})

	t.Run("paid payouts cannot be cancelled", func(t *testing.T) {
		p := newTestPayout(t)
		require.NoError(t, p.StartProcessing())
		require.NoError(t, p.MarkPaid(""))

		assert.Error(t, p.Cancel("too late"))
	})
}

func TestPayout_LedgerSync(t *testing.T) {
	t.Run("only paid payouts sync", func(t *testing.T) {
		p := newTestPayout(t)
		assert.Error(t, p.MarkSyncedToLedger("QB-778"))

		require.NoError(t, p.StartProcessing())
		require.NoError(t, p.MarkPaid("CHK-2"))

		require.NoError(t, p.MarkSyncedToLedger("QB-778"))
		assert.True(t, p.SyncedToLedger)
		assert.Equal(t, "QB-778", p.LedgerSyncRef)
		assert.NotNil(t, p.LedgerSyncedAt)
	})

	t.Run("sync is idempotent-guarded", func(t *testing.T) {
		p := newTestPayout(t)
		require.NoError(t, p.StartProcessing())
		require.NoError(t, p.MarkPaid(""))
		require.NoError(t, p.MarkSyncedToLedger("QB-1"))

		assert.Error(t, p.MarkSyncedToLedger("QB-2"))
		assert.Equal(t, "QB-1", p.LedgerSyncRef)
	})
}
