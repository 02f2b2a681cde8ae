package finance

import (
	"time"

	"github.com/consignhq/backend/internal/domain/finance"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CreatePayoutRequest builds a payout batch for a consignor. When
// TransactionIDs is empty the batch covers every unpaid sale.
type CreatePayoutRequest struct {
	ConsignorID    uuid.UUID   `json:"consignor_id" binding:"required"`
	PeriodStart    time.Time   `json:"period_start" binding:"required"`
	PeriodEnd      time.Time   `json:"period_end" binding:"required"`
	TransactionIDs []uuid.UUID `json:"transaction_ids"` // Empty claims everything unpaid in the period
	Method         string      `json:"method" binding:"required,max=100"`
	Notes          string      `json:"notes"`
}

// MarkPaidRequest records the handover of funds
type MarkPaidRequest struct {
	Reference string `json:"reference" binding:"max=100"`
}

// CancelPayoutRequest abandons a payout before payment
type CancelPayoutRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// LedgerSyncRequest records the accounting-ledger entry for a paid payout
type LedgerSyncRequest struct {
	Reference string `json:"reference" binding:"required,max=100"`
}

// PayoutResponse represents a payout in API responses
type PayoutResponse struct {
	ID               uuid.UUID         `json:"id"`
	OrgID            uuid.UUID         `json:"org_id"`
	PayoutNumber     string            `json:"payout_number"`
	ConsignorID      uuid.UUID         `json:"consignor_id"`
	PeriodStart      time.Time         `json:"period_start"`
	PeriodEnd        time.Time         `json:"period_end"`
	TotalAmount      valueobject.Money `json:"total_amount"`
	TransactionCount int               `json:"transaction_count"`
	Method           string            `json:"method"`
	Reference        string            `json:"reference,omitempty"`
	Status           string            `json:"status"`
	ProcessedAt      *time.Time        `json:"processed_at,omitempty"`
	PaidAt           *time.Time        `json:"paid_at,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
	CancelReason     string            `json:"cancel_reason,omitempty"`
	SyncedToLedger   bool              `json:"synced_to_ledger"`
	LedgerSyncRef    string            `json:"ledger_sync_ref,omitempty"`
	LedgerSyncedAt   *time.Time        `json:"ledger_synced_at,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ToPayoutResponse maps a payout to its response shape
func ToPayoutResponse(p *finance.Payout) PayoutResponse {
	return PayoutResponse{
		ID:               p.ID,
		OrgID:            p.OrganizationID,
		PayoutNumber:     p.PayoutNumber,
		ConsignorID:      p.ConsignorID,
		PeriodStart:      p.PeriodStart,
		PeriodEnd:        p.PeriodEnd,
		TotalAmount:      p.TotalAmount,
		TransactionCount: p.TransactionCount,
		Method:           p.Method,
		Reference:        p.Reference,
		Status:           string(p.Status),
		ProcessedAt:      p.ProcessedAt,
		PaidAt:           p.PaidAt,
		CancelledAt:      p.CancelledAt,
		CancelReason:     p.CancelReason,
		SyncedToLedger:   p.SyncedToLedger,
		LedgerSyncRef:    p.LedgerSyncRef,
		LedgerSyncedAt:   p.LedgerSyncedAt,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
	}
}

// GenerateStatementRequest asks for a statement over a period
type GenerateStatementRequest struct {
	ConsignorID uuid.UUID `json:"consignor_id" binding:"required"`
	PeriodStart time.Time `json:"period_start" binding:"required"`
	PeriodEnd   time.Time `json:"period_end" binding:"required"`
}

// StatementLineResponse is one dated entry on a statement
type StatementLineResponse struct {
	Type        string            `json:"type"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Description string            `json:"description"`
	Reference   string            `json:"reference"`
	Amount      valueobject.Money `json:"amount"`
}

// StatementResponse represents a consignor statement in API responses
type StatementResponse struct {
	ID             uuid.UUID               `json:"id"`
	OrgID          uuid.UUID               `json:"org_id"`
	ConsignorID    uuid.UUID               `json:"consignor_id"`
	PeriodStart    time.Time               `json:"period_start"`
	PeriodEnd      time.Time               `json:"period_end"`
	OpeningBalance valueobject.Money       `json:"opening_balance"`
	TotalSales     valueobject.Money       `json:"total_sales"`
	TotalEarnings  valueobject.Money       `json:"total_earnings"`
	TotalPayouts   valueobject.Money       `json:"total_payouts"`
	ClosingBalance valueobject.Money       `json:"closing_balance"`
	Lines          []StatementLineResponse `json:"lines"`
	GeneratedAt    time.Time               `json:"generated_at"`
}

// ToStatementResponse maps a statement to its response shape
func ToStatementResponse(s *finance.Statement) StatementResponse {
	lines := make([]StatementLineResponse, len(s.Lines))
	for i, line := range s.Lines {
		lines[i] = StatementLineResponse{
			Type:        string(line.Type),
			OccurredAt:  line.OccurredAt,
			Description: line.Description,
			Reference:   line.Reference,
			Amount:      line.Amount,
		}
	}
	return StatementResponse{
		ID:             s.ID,
		OrgID:          s.OrganizationID,
		ConsignorID:    s.ConsignorID,
		PeriodStart:    s.PeriodStart,
		PeriodEnd:      s.PeriodEnd,
		OpeningBalance: s.OpeningBalance,
		TotalSales:     s.TotalSales,
		TotalEarnings:  s.TotalEarnings,
		TotalPayouts:   s.TotalPayouts,
		ClosingBalance: s.ClosingBalance,
		Lines:          lines,
		GeneratedAt:    s.GeneratedAt,
	}
}
