package consignment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsignor(t *testing.T) *Consignor {
	t.Helper()
	c, err := NewConsignor(uuid.New(), "c-101", "Maria", "Lopez", decimal.NewFromInt(60))
	require.NoError(t, err)
	return c
}

func TestNewConsignor(t *testing.T) {
	t.Run("creates pending consignor with uppercased code", func(t *testing.T) {
		c := newTestConsignor(t)

		assert.Equal(t, "C-101", c.Code)
		assert.Equal(t, ConsignorStatusPending, c.Status)
		assert.Equal(t, "Maria Lopez", c.FullName())
		assert.True(t, c.DefaultSplitPct.Equal(decimal.NewFromInt(60)))
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewConsignor(uuid.New(), "", "Maria", "Lopez", decimal.NewFromInt(60))
		assert.Error(t, err)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewConsignor(uuid.New(), "c 101!", "Maria", "Lopez", decimal.NewFromInt(60))
		assert.Error(t, err)
	})

	t.Run("rejects split over 100", func(t *testing.T) {
		_, err := NewConsignor(uuid.New(), "C-102", "Maria", "Lopez", decimal.NewFromInt(101))
		assert.Error(t, err)
	})

	t.Run("rejects negative split", func(t *testing.T) {
		_, err := NewConsignor(uuid.New(), "C-102", "Maria", "Lopez", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("allows boundary splits", func(t *testing.T) {
		_, err := NewConsignor(uuid.New(), "C-102", "Maria", "Lopez", decimal.Zero)
		assert.NoError(t, err)
		_, err = NewConsignor(uuid.New(), "C-103", "Maria", "Lopez", decimal.NewFromInt(100))
		assert.NoError(t, err)
	})
}

func TestConsignor_StatusTransitions(t *testing.T) {
	t.Run("approve pending", func(t *testing.T) {
		c := newTestConsignor(t)

		require.NoError(t, c.Approve())
		assert.Equal(t, ConsignorStatusActive, c.Status)
		assert.True(t, c.CanConsign())
	})

	t.Run("reject pending", func(t *testing.T) {
		c := newTestConsignor(t)

		require.NoError(t, c.Reject())
		assert.Equal(t, ConsignorStatusRejected, c.Status)
		assert.False(t, c.CanConsign())
	})

	t.Run("cannot approve twice", func(t *testing.T) {
		c := newTestConsignor(t)
		require.NoError(t, c.Approve())

		assert.Error(t, c.Approve())
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		c := newTestConsignor(t)
		require.NoError(t, c.Approve())

		require.NoError(t, c.Deactivate())
		assert.False(t, c.CanConsign())

		require.NoError(t, c.Activate())
		assert.True(t, c.CanConsign())
	})

	t.Run("close requires a settled relationship", func(t *testing.T) {
		c := newTestConsignor(t)
		assert.Error(t, c.Close(), "pending consignor was never active")

		require.NoError(t, c.Approve())
		require.NoError(t, c.Close())
		assert.Equal(t, ConsignorStatusDeactivated, c.Status)
		assert.Error(t, c.Close())
	})
}

func TestConsignor_SetDefaultSplit(t *testing.T) {
	c := newTestConsignor(t)
	initialVersion := c.Version

	require.NoError(t, c.SetDefaultSplit(decimal.NewFromFloat(42.5)))
	assert.True(t, c.DefaultSplitPct.Equal(decimal.NewFromFloat(42.5)))
	assert.Greater(t, c.Version, initialVersion)

	assert.Error(t, c.SetDefaultSplit(decimal.NewFromFloat(100.01)))
}

func TestConsignor_SetContact(t *testing.T) {
	c := newTestConsignor(t)

	require.NoError(t, c.SetContact("Maria@Example.COM", " 555-0142 ", "12 Main St"))
	assert.Equal(t, "maria@example.com", c.Email)
	assert.Equal(t, "555-0142", c.Phone)
}
