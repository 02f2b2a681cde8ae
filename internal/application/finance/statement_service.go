package finance

import (
	"context"

	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/consignhq/backend/internal/domain/finance"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/shared/valueobject"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatementService assembles consignor account statements
type StatementService struct {
	statementRepo finance.StatementRepository
	payoutRepo    finance.PayoutRepository
	txnRepo       trade.TransactionRepository
	consignorRepo consignment.ConsignorRepository
	logger        *zap.Logger
}

// NewStatementService creates a new statement service
func NewStatementService(
	statementRepo finance.StatementRepository,
	payoutRepo finance.PayoutRepository,
	txnRepo trade.TransactionRepository,
	consignorRepo consignment.ConsignorRepository,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		statementRepo: statementRepo,
		payoutRepo:    payoutRepo,
		txnRepo:       txnRepo,
		consignorRepo: consignorRepo,
		logger:        logger,
	}
}

// Generate builds the statement for a consignor over a period. The
// opening balance is the closing balance of the most recent prior
// statement, so balances chain across periods. Regenerating an existing
// period replaces the stored statement and its lines.
func (s *StatementService) Generate(ctx context.Context, orgID uuid.UUID, req GenerateStatementRequest) (*StatementResponse, error) {
	if _, err := s.consignorRepo.FindByID(ctx, orgID, req.ConsignorID); err != nil {
		return nil, err
	}

	period, err := valueobject.NewPeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	opening := valueobject.ZeroUSD()
	prior, err := s.statementRepo.FindLatestBefore(ctx, orgID, req.ConsignorID, period.Start())
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if prior != nil {
		opening = prior.ClosingBalance
	}

	statement, err := finance.NewStatement(orgID, req.ConsignorID, period, opening)
	if err != nil {
		return nil, err
	}

	sales, err := s.txnRepo.FindByConsignorInPeriod(ctx, orgID, req.ConsignorID, period.Start(), period.End())
	if err != nil {
		return nil, err
	}
	for _, txn := range sales {
		if err := statement.AddSaleLine(txn.SoldAt, "Sale of "+txn.ItemTitle, txn.TransactionNumber, txn.SalePrice, txn.ConsignorAmount); err != nil {
			return nil, err
		}
	}

	payouts, err := s.payoutRepo.FindPaidByConsignorInPeriod(ctx, orgID, req.ConsignorID, period.Start(), period.End())
	if err != nil {
		return nil, err
	}
	for _, payout := range payouts {
		if err := statement.AddPayoutLine(*payout.PaidAt, "Payout by "+payout.Method, payout.PayoutNumber, payout.TotalAmount); err != nil {
			return nil, err
		}
	}

	if err := s.statementRepo.Save(ctx, statement); err != nil {
		return nil, err
	}

	s.logger.Info("Statement generated",
		zap.String("org_id", orgID.String()),
		zap.String("consignor_id", req.ConsignorID.String()),
		zap.String("period", period.String()),
		zap.String("opening", statement.OpeningBalance.String()),
		zap.String("closing", statement.ClosingBalance.String()))

	resp := ToStatementResponse(statement)
	return &resp, nil
}

// Get returns a statement by ID
func (s *StatementService) Get(ctx context.Context, orgID, id uuid.UUID) (*StatementResponse, error) {
	statement, err := s.statementRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToStatementResponse(statement)
	return &resp, nil
}

// GetByPeriod returns the stored statement for an exact period
func (s *StatementService) GetByPeriod(ctx context.Context, orgID uuid.UUID, req GenerateStatementRequest) (*StatementResponse, error) {
	statement, err := s.statementRepo.FindByPeriod(ctx, orgID, req.ConsignorID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	resp := ToStatementResponse(statement)
	return &resp, nil
}

// ListByConsignor lists a consignor's stored statements
func (s *StatementService) ListByConsignor(ctx context.Context, orgID, consignorID uuid.UUID, filter shared.Filter) (*shared.Paginated[StatementResponse], error) {
	result, err := s.statementRepo.FindByConsignor(ctx, orgID, consignorID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StatementResponse, len(result.Items))
	for i := range result.Items {
		items[i] = ToStatementResponse(&result.Items[i])
	}
	return &shared.Paginated[StatementResponse]{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}
