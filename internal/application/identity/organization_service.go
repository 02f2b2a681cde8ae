package identity

import (
	"context"

	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrganizationService handles organization and user management
type OrganizationService struct {
	orgRepo   identity.OrganizationRepository
	userRepo  identity.UserRepository
	trialDays int
	logger    *zap.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo identity.OrganizationRepository,
	userRepo identity.UserRepository,
	trialDays int,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:   orgRepo,
		userRepo:  userRepo,
		trialDays: trialDays,
		logger:    logger,
	}
}

// Register creates a new organization with its owner account.
// The organization starts on the basic tier in trial status.
func (s *OrganizationService) Register(ctx context.Context, req RegisterOrganizationRequest) (*OrganizationResponse, error) {
	if err := identity.ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	taken, err := s.orgRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("SLUG_TAKEN", "Storefront slug is already in use")
	}

	org, err := identity.NewOrganization(req.Name, req.Slug, s.trialDays)
	if err != nil {
		return nil, err
	}
	if err := org.SetContact(req.OwnerEmail, req.ContactPhone); err != nil {
		return nil, err
	}

	owner, err := identity.NewUser(org.ID, req.OwnerEmail, req.OwnerPassword, identity.RoleOwner)
	if err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("Failed to save organization", zap.Error(err))
		return nil, err
	}
	if err := s.userRepo.Save(ctx, owner); err != nil {
		s.logger.Error("Failed to save owner account, rolling back organization",
			zap.String("org_id", org.ID.String()), zap.Error(err))
		if delErr := s.orgRepo.Delete(ctx, org.ID); delErr != nil {
			s.logger.Error("Failed to roll back organization", zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("Organization registered",
		zap.String("org_id", org.ID.String()),
		zap.String("slug", org.Slug),
		zap.String("owner_email", owner.Email))

	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// Get returns an organization by ID
func (s *OrganizationService) Get(ctx context.Context, orgID uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// Update modifies an organization's profile
func (s *OrganizationService) Update(ctx context.Context, orgID uuid.UUID, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := org.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactEmail != nil || req.ContactPhone != nil {
		email := org.ContactEmail
		phone := org.ContactPhone
		if req.ContactEmail != nil {
			email = *req.ContactEmail
		}
		if req.ContactPhone != nil {
			phone = *req.ContactPhone
		}
		if err := org.SetContact(email, phone); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		org.Notes = *req.Notes
		org.IncrementVersion()
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}

	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// ChangeTier moves an organization to a different subscription tier
func (s *OrganizationService) ChangeTier(ctx context.Context, orgID uuid.UUID, req ChangeTierRequest) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if err := org.ChangeTier(identity.SubscriptionTier(req.Tier)); err != nil {
		return nil, err
	}
	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("Subscription tier changed",
		zap.String("org_id", org.ID.String()),
		zap.String("tier", req.Tier))

	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// CreateUser adds a staff or provider account to an organization
func (s *OrganizationService) CreateUser(ctx context.Context, orgID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	role := identity.UserRole(req.Role)
	if role == identity.RoleProvider && req.ConsignorID == nil {
		return nil, shared.NewDomainError("CONSIGNOR_REQUIRED", "Provider accounts must be linked to a consignor")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, orgID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered in this organization")
	}

	user, err := identity.NewUser(orgID, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.ConsignorID != nil {
		if err := user.LinkConsignor(*req.ConsignorID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("org_id", orgID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", req.Role))

	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers lists users in an organization
func (s *OrganizationService) ListUsers(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

// DeactivateUser disables a user account and keeps its history
func (s *OrganizationService) DeactivateUser(ctx context.Context, orgID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}
