// End-to-end business flow test covering the full consignment cycle:
// a consignor is onboarded, items are listed and sold at the register,
// the consignor shares are paid out, and statements reconcile the
// balance across periods.
package integration

import (
	"context"
	"testing"
	"time"

	catalogapp "github.com/consignhq/backend/internal/application/catalog"
	consignmentapp "github.com/consignhq/backend/internal/application/consignment"
	financeapp "github.com/consignhq/backend/internal/application/finance"
	tradeapp "github.com/consignhq/backend/internal/application/trade"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConsignmentBusinessFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()
	log := zap.NewNop()

	orgID := uuid.New()
	clerkID := uuid.New()
	testDB.CreateTestOrganization(orgID, "pro")

	consignorRepo := persistence.NewGormConsignorRepository(testDB.DB)
	itemRepo := persistence.NewGormItemRepository(testDB.DB)
	txnRepo := persistence.NewGormTransactionRepository(testDB.DB)
	payoutRepo := persistence.NewGormPayoutRepository(testDB.DB)
	statementRepo := persistence.NewGormStatementRepository(testDB.DB)

	consignorService := consignmentapp.NewConsignorService(consignorRepo, txnRepo, log)
	itemService := catalogapp.NewItemService(itemRepo, consignorRepo, log)
	saleService := tradeapp.NewSaleService(txnRepo, itemRepo, log)
	payoutService := financeapp.NewPayoutService(payoutRepo, txnRepo, consignorRepo, log)
	statementService := financeapp.NewStatementService(statementRepo, payoutRepo, txnRepo, consignorRepo, log)

	now := time.Now()

	// Onboard a consignor with a 60% split and approve them.
	consignor, err := consignorService.Create(ctx, orgID, consignmentapp.CreateConsignorRequest{
		Code:            "FLOW-001",
		FirstName:       "Grace",
		LastName:        "Hall",
		DefaultSplitPct: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	_, err = consignorService.Approve(ctx, orgID, consignor.ID)
	require.NoError(t, err)

	// List two items; the split defaults to the consignor's percentage.
	jacket, err := itemService.Create(ctx, orgID, catalogapp.CreateItemRequest{
		ConsignorID: consignor.ID,
		SKU:         "FLOW-JACKET",
		Title:       "Vintage Leather Jacket",
		Condition:   "good",
		Price:       decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	lamp, err := itemService.Create(ctx, orgID, catalogapp.CreateItemRequest{
		ConsignorID: consignor.ID,
		SKU:         "FLOW-LAMP",
		Title:       "Brass Desk Lamp",
		Condition:   "fair",
		Price:       decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// Ring both sales, backdated so they fall in the first statement period.
	soldAt1 := now.Add(-20 * time.Hour)
	sale1, err := saleService.RecordSale(ctx, orgID, clerkID, tradeapp.RecordSaleRequest{
		ItemID:        jacket.ID,
		PaymentMethod: "cash",
		SoldAt:        &soldAt1,
	})
	require.NoError(t, err)
	assert.True(t, sale1.ConsignorAmount.Amount().Equal(decimal.NewFromInt(60)))
	assert.True(t, sale1.ShopAmount.Amount().Equal(decimal.NewFromInt(40)))

	soldAt2 := now.Add(-18 * time.Hour)
	sale2, err := saleService.RecordSale(ctx, orgID, clerkID, tradeapp.RecordSaleRequest{
		ItemID:        lamp.ID,
		PaymentMethod: "card",
		SoldAt:        &soldAt2,
	})
	require.NoError(t, err)
	assert.True(t, sale2.ConsignorAmount.Amount().Equal(decimal.NewFromInt(30)))

	// A sold item cannot be sold again.
	_, err = saleService.RecordSale(ctx, orgID, clerkID, tradeapp.RecordSaleRequest{
		ItemID:        jacket.ID,
		PaymentMethod: "cash",
	})
	require.Error(t, err)

	// Pay out everything owed. Omitting transaction IDs claims every unpaid
	// sale inside the period.
	payout, err := payoutService.Create(ctx, orgID, financeapp.CreatePayoutRequest{
		ConsignorID: consignor.ID,
		PeriodStart: now.Add(-24 * time.Hour),
		PeriodEnd:   now.Add(time.Hour),
		Method:      "check",
	})
	require.NoError(t, err)
	assert.True(t, payout.TotalAmount.Amount().Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 2, payout.TransactionCount)

	_, err = payoutService.StartProcessing(ctx, orgID, payout.ID)
	require.NoError(t, err)
	paid, err := payoutService.MarkPaid(ctx, orgID, payout.ID, financeapp.MarkPaidRequest{Reference: "CHK-1042"})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)

	// Nothing is owed now, so a second payout has nothing to claim.
	_, err = payoutService.Create(ctx, orgID, financeapp.CreatePayoutRequest{
		ConsignorID: consignor.ID,
		PeriodStart: now.Add(-24 * time.Hour),
		PeriodEnd:   now.Add(time.Hour),
		Method:      "check",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOTHING_TO_PAY", domainErr.Code)

	// First statement period covers the sales but ends before the payout.
	stmt1, err := statementService.Generate(ctx, orgID, financeapp.GenerateStatementRequest{
		ConsignorID: consignor.ID,
		PeriodStart: now.Add(-24 * time.Hour),
		PeriodEnd:   now.Add(-12 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, stmt1.OpeningBalance.IsZero())
	assert.True(t, stmt1.TotalSales.Amount().Equal(decimal.NewFromInt(150)))
	assert.True(t, stmt1.TotalEarnings.Amount().Equal(decimal.NewFromInt(90)))
	assert.True(t, stmt1.TotalPayouts.IsZero())
	assert.True(t, stmt1.ClosingBalance.Amount().Equal(decimal.NewFromInt(90)))
	assert.Len(t, stmt1.Lines, 2)

	// Second period opens with the prior closing balance and absorbs the payout.
	// Periods are inclusive on both ends, so the next one starts just after.
	stmt2, err := statementService.Generate(ctx, orgID, financeapp.GenerateStatementRequest{
		ConsignorID: consignor.ID,
		PeriodStart: now.Add(-12*time.Hour + time.Second),
		PeriodEnd:   now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, stmt2.OpeningBalance.Amount().Equal(decimal.NewFromInt(90)))
	assert.True(t, stmt2.TotalEarnings.IsZero())
	assert.True(t, stmt2.TotalPayouts.Amount().Equal(decimal.NewFromInt(90)))
	assert.True(t, stmt2.ClosingBalance.IsZero())

	// Closing balance equals opening plus earnings minus payouts.
	expected := stmt2.OpeningBalance.MustAdd(stmt2.TotalEarnings).MustSubtract(stmt2.TotalPayouts)
	assert.True(t, stmt2.ClosingBalance.Equals(expected))
}
