package handler

import (
	identityapp "github.com/consignhq/backend/internal/application/identity"
	"github.com/consignhq/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles organization and staff management endpoints
type OrganizationHandler struct {
	BaseHandler
	orgService *identityapp.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgService *identityapp.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// Register godoc
// @ID           registerOrganization
// @Summary      Register a new organization
// @Description  Sign up a new shop with its owner account and start the free trial
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RegisterOrganizationRequest true "Organization registration request"
// @Success      201 {object} APIResponse[identityapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /organizations [post]
func (h *OrganizationHandler) Register(c *gin.Context) {
	var req identityapp.RegisterOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	org, err := h.orgService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, org)
}

// GetCurrent godoc
// @ID           getOrganization
// @Summary      Get the current organization
// @Description  Return the authenticated user's organization
// @Tags         organizations
// @Produce      json
// @Success      200 {object} APIResponse[identityapp.OrganizationResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organization [get]
func (h *OrganizationHandler) GetCurrent(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	org, err := h.orgService.Get(c.Request.Context(), orgID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, org)
}

// Update godoc
// @ID           updateOrganization
// @Summary      Update the current organization
// @Description  Update the organization's name and contact details
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UpdateOrganizationRequest true "Organization update request"
// @Success      200 {object} APIResponse[identityapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organization [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, org)
}

// ChangeTier godoc
// @ID           changeSubscriptionTier
// @Summary      Change subscription tier
// @Description  Move the organization to a different plan
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        request body identityapp.ChangeTierRequest true "New tier"
// @Success      200 {object} APIResponse[identityapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organization/subscription [put]
func (h *OrganizationHandler) ChangeTier(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangeTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	org, err := h.orgService.ChangeTier(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, org)
}

// CreateUser godoc
// @ID           createUser
// @Summary      Create a user
// @Description  Add a staff or provider account to the organization
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateUserRequest true "User creation request"
// @Success      201 {object} APIResponse[identityapp.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [post]
func (h *OrganizationHandler) CreateUser(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.orgService.CreateUser(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, user)
}

// ListUsers godoc
// @ID           listUsers
// @Summary      List users
// @Description  List the organization's user accounts
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by email or display name"
// @Success      200 {object} APIResponse[[]identityapp.UserResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [get]
func (h *OrganizationHandler) ListUsers(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	users, err := h.orgService.ListUsers(c.Request.Context(), orgID, req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, users)
}

// DeactivateUser godoc
// @ID           deactivateUser
// @Summary      Deactivate a user
// @Description  Deactivate a user account so it can no longer log in
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *OrganizationHandler) DeactivateUser(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.orgService.DeactivateUser(c.Request.Context(), orgID, userID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
