package identity

import (
	"time"

	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// =============================================================================
// Auth DTOs
// =============================================================================

// LoginInput contains credentials for a login attempt
type LoginInput struct {
	Email    string
	Password string
}

// UserInfo describes the authenticated user in login responses
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       uuid.UUID  `json:"org_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	ConsignorID *uuid.UUID `json:"consignor_id,omitempty"`
}

// LoginResult is returned on a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput contains the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult is returned on a successful token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	OrgID  uuid.UUID
	UserID uuid.UUID
	JTI    string
	TTL    time.Duration // Remaining lifetime of the access token
}

// ChangePasswordInput contains old and new passwords
type ChangePasswordInput struct {
	OrgID       uuid.UUID
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// =============================================================================
// Organization DTOs
// =============================================================================

// RegisterOrganizationRequest signs up a new shop with its owner account
type RegisterOrganizationRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Slug          string `json:"slug" binding:"required,min=3,max=60"`
	OwnerEmail    string `json:"owner_email" binding:"required,email,max=200"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8,max=128"`
	ContactPhone  string `json:"contact_phone" binding:"max=50"`
}

// UpdateOrganizationRequest updates an organization's profile
type UpdateOrganizationRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=200"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
	Notes        *string `json:"notes"`
}

// ChangeTierRequest moves the organization to a different plan
type ChangeTierRequest struct {
	Tier string `json:"tier" binding:"required,oneof=basic pro enterprise"`
}

// OrganizationResponse represents an organization in API responses
type OrganizationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	ContactEmail       string     `json:"contact_email"`
	ContactPhone       string     `json:"contact_phone"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionTier   string     `json:"subscription_tier"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Version            int        `json:"version"`
}

// ToOrganizationResponse maps an organization to its response shape
func ToOrganizationResponse(org *identity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:                 org.ID,
		Name:               org.Name,
		Slug:               org.Slug,
		ContactEmail:       org.ContactEmail,
		ContactPhone:       org.ContactPhone,
		SubscriptionStatus: string(org.SubscriptionStatus),
		SubscriptionTier:   string(org.SubscriptionTier),
		TrialEndsAt:        org.TrialEndsAt,
		Notes:              org.Notes,
		CreatedAt:          org.CreatedAt,
		UpdatedAt:          org.UpdatedAt,
		Version:            org.Version,
	}
}

// =============================================================================
// User DTOs
// =============================================================================

// CreateUserRequest adds a staff or provider account to an organization
type CreateUserRequest struct {
	Email       string     `json:"email" binding:"required,email,max=200"`
	Password    string     `json:"password" binding:"required,min=8,max=128"`
	DisplayName string     `json:"display_name" binding:"max=200"`
	Role        string     `json:"role" binding:"required,oneof=owner clerk provider customer"`
	ConsignorID *uuid.UUID `json:"consignor_id"` // Required for provider accounts
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       uuid.UUID  `json:"org_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	ConsignorID *uuid.UUID `json:"consignor_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse maps a user to its response shape
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		OrgID:       user.OrganizationID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		Status:      string(user.Status),
		ConsignorID: user.ConsignorID,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
