package finance

import (
	"context"
	"strings"

	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/consignhq/backend/internal/domain/finance"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayoutService builds and settles consignor payout batches
type PayoutService struct {
	payoutRepo    finance.PayoutRepository
	txnRepo       trade.TransactionRepository
	consignorRepo consignment.ConsignorRepository
	logger        *zap.Logger
}

// NewPayoutService creates a new payout service
func NewPayoutService(
	payoutRepo finance.PayoutRepository,
	txnRepo trade.TransactionRepository,
	consignorRepo consignment.ConsignorRepository,
	logger *zap.Logger,
) *PayoutService {
	return &PayoutService{
		payoutRepo:    payoutRepo,
		txnRepo:       txnRepo,
		consignorRepo: consignorRepo,
		logger:        logger,
	}
}

// Create builds a pending payout covering the requested transactions, or
// every unpaid in-period transaction of the consignor when none are
// named. Selected transactions must belong to the consignor, fall inside
// the period, and be unclaimed. The payout row and the claims on its
// transactions are written atomically: a transaction already claimed by
// another payout fails the whole batch.
func (s *PayoutService) Create(ctx context.Context, orgID uuid.UUID, req CreatePayoutRequest) (*PayoutResponse, error) {
	if _, err := s.consignorRepo.FindByID(ctx, orgID, req.ConsignorID); err != nil {
		return nil, err
	}

	period, err := valueobject.NewPeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", err.Error())
	}

	var candidates []trade.Transaction
	if len(req.TransactionIDs) == 0 {
		unpaid, err := s.txnRepo.FindUnpaidByConsignor(ctx, orgID, req.ConsignorID)
		if err != nil {
			return nil, err
		}
		for _, txn := range unpaid {
			if period.Contains(txn.SoldAt) {
				candidates = append(candidates, txn)
			}
		}
	} else {
		for _, id := range req.TransactionIDs {
			txn, err := s.txnRepo.FindByID(ctx, orgID, id)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, *txn)
		}
	}

	if len(candidates) == 0 {
		return nil, shared.NewDomainError("NOTHING_TO_PAY", "Consignor has no unpaid transactions in the period")
	}

	// The whole batch is rejected when any transaction fails a check; the
	// error names the offending transactions.
	var wrongConsignor, outOfPeriod, alreadyPaid []string
	total := candidates[0].ConsignorAmount
	for i, txn := range candidates {
		if txn.ConsignorID != req.ConsignorID {
			wrongConsignor = append(wrongConsignor, txn.ID.String())
		}
		if !period.Contains(txn.SoldAt) {
			outOfPeriod = append(outOfPeriod, txn.ID.String())
		}
		if txn.IsPaidOut() {
			alreadyPaid = append(alreadyPaid, txn.ID.String())
		}
		if i > 0 {
			var err error
			total, err = total.Add(txn.ConsignorAmount)
			if err != nil {
				return nil, err
			}
		}
	}
	if len(wrongConsignor) > 0 {
		return nil, shared.NewDomainError("WRONG_CONSIGNOR", "Transactions belong to another consignor: "+strings.Join(wrongConsignor, ", "))
	}
	if len(outOfPeriod) > 0 {
		return nil, shared.NewDomainError("OUT_OF_PERIOD", "Transactions fall outside the payout period: "+strings.Join(outOfPeriod, ", "))
	}
	if len(alreadyPaid) > 0 {
		return nil, shared.NewDomainError("ALREADY_PAID_OUT", "Transactions are already linked to a payout: "+strings.Join(alreadyPaid, ", "))
	}

	number, err := s.payoutRepo.NextPayoutNumber(ctx, orgID)
	if err != nil {
		return nil, err
	}

	payout, err := finance.NewPayout(orgID, number, req.ConsignorID, period, total, len(candidates), req.Method)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		payout.SetNotes(req.Notes)
	}

	transactionIDs := make([]uuid.UUID, len(candidates))
	for i := range candidates {
		transactionIDs[i] = candidates[i].ID
	}

	if err := s.payoutRepo.CreateWithClaims(ctx, payout, transactionIDs); err != nil {
		return nil, err
	}

	s.logger.Info("Payout created",
		zap.String("org_id", orgID.String()),
		zap.String("payout_number", payout.PayoutNumber),
		zap.String("consignor_id", req.ConsignorID.String()),
		zap.String("total", payout.TotalAmount.String()),
		zap.Int("transactions", payout.TransactionCount))

	resp := ToPayoutResponse(payout)
	return &resp, nil
}

// Get returns a payout by ID
func (s *PayoutService) Get(ctx context.Context, orgID, id uuid.UUID) (*PayoutResponse, error) {
	payout, err := s.payoutRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPayoutResponse(payout)
	return &resp, nil
}

// GetByNumber returns a payout by its number
func (s *PayoutService) GetByNumber(ctx context.Context, orgID uuid.UUID, number string) (*PayoutResponse, error) {
	payout, err := s.payoutRepo.FindByNumber(ctx, orgID, number)
	if err != nil {
		return nil, err
	}
	resp := ToPayoutResponse(payout)
	return &resp, nil
}

// List lists payouts matching the filter
func (s *PayoutService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[PayoutResponse], error) {
	result, err := s.payoutRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	return mapPayoutPage(result), nil
}

// ListByConsignor lists a consignor's payouts
func (s *PayoutService) ListByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[PayoutResponse], error) {
	result, err := s.payoutRepo.FindByConsignor(ctx, orgID, consignorID, filter)
	if err != nil {
		return nil, err
	}
	return mapPayoutPage(result), nil
}

// ListTransactions lists the transactions claimed by a payout
func (s *PayoutService) ListTransactions(ctx context.Context, orgID, payoutID uuid.UUID) ([]trade.Transaction, error) {
	if _, err := s.payoutRepo.FindByID(ctx, orgID, payoutID); err != nil {
		return nil, err
	}
	return s.txnRepo.FindByPayout(ctx, orgID, payoutID)
}

// StartProcessing moves a pending payout into processing
func (s *PayoutService) StartProcessing(ctx context.Context, orgID, id uuid.UUID) (*PayoutResponse, error) {
	payout, err := s.payoutRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := payout.StartProcessing(); err != nil {
		return nil, err
	}
	if err := s.payoutRepo.Save(ctx, payout); err != nil {
		return nil, err
	}
	resp := ToPayoutResponse(payout)
	return &resp, nil
}

// MarkPaid records the handover of funds
func (s *PayoutService) MarkPaid(ctx context.Context, orgID, id uuid.UUID, req MarkPaidRequest) (*PayoutResponse, error) {
	payout, err := s.payoutRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := payout.MarkPaid(req.Reference); err != nil {
		return nil, err
	}
	if err := s.payoutRepo.Save(ctx, payout); err != nil {
		return nil, err
	}

	s.logger.Info("Payout paid",
		zap.String("org_id", orgID.String()),
		zap.String("payout_number", payout.PayoutNumber),
		zap.String("total", payout.TotalAmount.String()))

	resp := ToPayoutResponse(payout)
	return &resp, nil
}

// Cancel abandons a payout and releases its transactions so their
// shares can be claimed by a future payout.
func (s *PayoutService) Cancel(ctx context.Context, orgID, id uuid.UUID, req CancelPayoutRequest) (*PayoutResponse, error) {
	payout, err := s.payoutRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := payout.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.payoutRepo.CancelWithRelease(ctx, payout); err != nil {
		return nil, err
	}

	s.logger.Info("Payout cancelled",
		zap.String("org_id", orgID.String()),
		zap.String("payout_number", payout.PayoutNumber),
		zap.String("reason", req.Reason))

	resp := ToPayoutResponse(payout)
	return &resp, nil
}

// MarkSyncedToLedger records that a paid payout has been mirrored into
// the external accounting ledger.
func (s *PayoutService) MarkSyncedToLedger(ctx context.Context, orgID, id uuid.UUID, req LedgerSyncRequest) (*PayoutResponse, error) {
	payout, err := s.payoutRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := payout.MarkSyncedToLedger(req.Reference); err != nil {
		return nil, err
	}
	if err := s.payoutRepo.Save(ctx, payout); err != nil {
		return nil, err
	}

	resp := ToPayoutResponse(payout)
	return &resp, nil
}

func mapPayoutPage(page *shared.Paginated[finance.Payout]) *shared.Paginated[PayoutResponse] {
	items := make([]PayoutResponse, len(page.Items))
	for i := range page.Items {
		items[i] = ToPayoutResponse(&page.Items[i])
	}
	return &shared.Paginated[PayoutResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
