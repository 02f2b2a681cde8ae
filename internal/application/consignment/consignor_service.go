package consignment

import (
	"context"

	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/consignhq/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConsignorService handles consignor management
type ConsignorService struct {
	consignorRepo consignment.ConsignorRepository
	txnRepo       trade.TransactionRepository
	logger        *zap.Logger
}

// NewConsignorService creates a new consignor service
func NewConsignorService(consignorRepo consignment.ConsignorRepository, txnRepo trade.TransactionRepository, logger *zap.Logger) *ConsignorService {
	return &ConsignorService{
		consignorRepo: consignorRepo,
		txnRepo:       txnRepo,
		logger:        logger,
	}
}

// Create registers a new consignor in pending status
func (s *ConsignorService) Create(ctx context.Context, orgID uuid.UUID, req CreateConsignorRequest) (*ConsignorResponse, error) {
	consignor, err := consignment.NewConsignor(orgID, req.Code, req.FirstName, req.LastName, req.DefaultSplitPct)
	if err != nil {
		return nil, err
	}

	taken, err := s.consignorRepo.ExistsByCode(ctx, orgID, consignor.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("CODE_TAKEN", "Consignor code is already in use")
	}

	if req.Email != "" || req.Phone != "" || req.Address != "" {
		if err := consignor.SetContact(req.Email, req.Phone, req.Address); err != nil {
			return nil, err
		}
	}
	if req.PayoutMethod != "" {
		if err := consignor.SetPayoutMethod(req.PayoutMethod); err != nil {
			return nil, err
		}
	}
	if req.TaxID != "" {
		if err := consignor.SetTaxID(req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		consignor.SetNotes(req.Notes)
	}

	if err := s.consignorRepo.Save(ctx, consignor); err != nil {
		return nil, err
	}

	s.logger.Info("Consignor created",
		zap.String("org_id", orgID.String()),
		zap.String("consignor_id", consignor.ID.String()),
		zap.String("code", consignor.Code))

	resp := ToConsignorResponse(consignor)
	return &resp, nil
}

// Get returns a consignor by ID
func (s *ConsignorService) Get(ctx context.Context, orgID, id uuid.UUID) (*ConsignorResponse, error) {
	consignor, err := s.consignorRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToConsignorResponse(consignor)
	return &resp, nil
}

// GetByCode returns a consignor by its tag code
func (s *ConsignorService) GetByCode(ctx context.Context, orgID uuid.UUID, code string) (*ConsignorResponse, error) {
	consignor, err := s.consignorRepo.FindByCode(ctx, orgID, code)
	if err != nil {
		return nil, err
	}
	resp := ToConsignorResponse(consignor)
	return &resp, nil
}

// List lists consignors matching the filter
func (s *ConsignorService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[ConsignorResponse], error) {
	result, err := s.consignorRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	return mapPage(result), nil
}

// ListByStatus lists consignors in a given status
func (s *ConsignorService) ListByStatus(ctx context.Context, orgID uuid.UUID, status consignment.ConsignorStatus, filter shared.Filter) (*shared.Paginated[ConsignorResponse], error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid consignor status")
	}
	result, err := s.consignorRepo.FindByStatus(ctx, orgID, status, filter)
	if err != nil {
		return nil, err
	}
	return mapPage(result), nil
}

// Update modifies a consignor's profile
func (s *ConsignorService) Update(ctx context.Context, orgID, id uuid.UUID, req UpdateConsignorRequest) (*ConsignorResponse, error) {
	consignor, err := s.consignorRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := consignor.FirstName
		lastName := consignor.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := consignor.Update(firstName, lastName); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Phone != nil || req.Address != nil {
		email := consignor.Email
		phone := consignor.Phone
		address := consignor.Address
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := consignor.SetContact(email, phone, address); err != nil {
			return nil, err
		}
	}
	if req.DefaultSplitPct != nil {
		if err := consignor.SetDefaultSplit(*req.DefaultSplitPct); err != nil {
			return nil, err
		}
	}
	if req.PayoutMethod != nil {
		if err := consignor.SetPayoutMethod(*req.PayoutMethod); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil {
		if err := consignor.SetTaxID(*req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		consignor.SetNotes(*req.Notes)
	}

	if err := s.consignorRepo.Save(ctx, consignor); err != nil {
		return nil, err
	}

	resp := ToConsignorResponse(consignor)
	return &resp, nil
}

// Approve accepts a pending consignor application
func (s *ConsignorService) Approve(ctx context.Context, orgID, id uuid.UUID) (*ConsignorResponse, error) {
	return s.transition(ctx, orgID, id, "approved", func(c *consignment.Consignor) error {
		return c.Approve()
	})
}

// Reject declines a pending consignor application
func (s *ConsignorService) Reject(ctx context.Context, orgID, id uuid.UUID, req RejectConsignorRequest) (*ConsignorResponse, error) {
	return s.transition(ctx, orgID, id, "rejected", func(c *consignment.Consignor) error {
		if err := c.Reject(); err != nil {
			return err
		}
		if req.Reason != "" {
			c.SetNotes(req.Reason)
		}
		return nil
	})
}

// Activate returns an inactive consignor to active status
func (s *ConsignorService) Activate(ctx context.Context, orgID, id uuid.UUID) (*ConsignorResponse, error) {
	return s.transition(ctx, orgID, id, "activated", func(c *consignment.Consignor) error {
		return c.Activate()
	})
}

// Deactivate pauses an active consignor
func (s *ConsignorService) Deactivate(ctx context.Context, orgID, id uuid.UUID) (*ConsignorResponse, error) {
	return s.transition(ctx, orgID, id, "deactivated", func(c *consignment.Consignor) error {
		return c.Deactivate()
	})
}

// Close permanently closes out a consignor relationship
func (s *ConsignorService) Close(ctx context.Context, orgID, id uuid.UUID) (*ConsignorResponse, error) {
	return s.transition(ctx, orgID, id, "closed", func(c *consignment.Consignor) error {
		return c.Close()
	})
}

// Delete removes a consignor record. Deletion is blocked while the
// consignor still has unpaid sale transactions.
func (s *ConsignorService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.consignorRepo.FindByID(ctx, orgID, id); err != nil {
		return err
	}

	unpaid, err := s.txnRepo.FindUnpaidByConsignor(ctx, orgID, id)
	if err != nil {
		return err
	}
	if len(unpaid) > 0 {
		return shared.NewDomainError("HAS_UNPAID_SALES", "Consignor still has unpaid sale transactions")
	}

	if err := s.consignorRepo.Delete(ctx, orgID, id); err != nil {
		return err
	}

	s.logger.Info("Consignor deleted",
		zap.String("org_id", orgID.String()),
		zap.String("consignor_id", id.String()))

	return nil
}

func (s *ConsignorService) transition(ctx context.Context, orgID, id uuid.UUID, action string, apply func(*consignment.Consignor) error) (*ConsignorResponse, error) {
	consignor, err := s.consignorRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(consignor); err != nil {
		return nil, err
	}
	if err := s.consignorRepo.Save(ctx, consignor); err != nil {
		return nil, err
	}

	s.logger.Info("Consignor status changed",
		zap.String("org_id", orgID.String()),
		zap.String("consignor_id", id.String()),
		zap.String("action", action),
		zap.String("status", string(consignor.Status)))

	resp := ToConsignorResponse(consignor)
	return &resp, nil
}

func mapPage(page *shared.Paginated[consignment.Consignor]) *shared.Paginated[ConsignorResponse] {
	items := make([]ConsignorResponse, len(page.Items))
	for i := range page.Items {
		items[i] = ToConsignorResponse(&page.Items[i])
	}
	return &shared.Paginated[ConsignorResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
