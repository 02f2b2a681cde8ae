package handler

import (
	"context"

	consignmentapp "github.com/consignhq/backend/internal/application/consignment"
	"github.com/consignhq/backend/internal/domain/consignment"
	"github.com/consignhq/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConsignorHandler handles consignor management endpoints
type ConsignorHandler struct {
	BaseHandler
	consignorService *consignmentapp.ConsignorService
}

// NewConsignorHandler creates a new ConsignorHandler
func NewConsignorHandler(consignorService *consignmentapp.ConsignorService) *ConsignorHandler {
	return &ConsignorHandler{consignorService: consignorService}
}

// Create godoc
// @ID           createConsignor
// @Summary      Create a consignor
// @Description  Register a new consignor application
// @Tags         consignors
// @Accept       json
// @Produce      json
// @Param        request body consignmentapp.CreateConsignorRequest true "Consignor creation request"
// @Success      201 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors [post]
func (h *ConsignorHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req consignmentapp.CreateConsignorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	consignor, err := h.consignorService.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, consignor)
}

// GetByID godoc
// @ID           getConsignorById
// @Summary      Get consignor by ID
// @Tags         consignors
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Success      200 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id} [get]
func (h *ConsignorHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignor ID format")
		return
	}

	consignor, err := h.consignorService.Get(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, consignor)
}

// GetByCode godoc
// @ID           getConsignorByCode
// @Summary      Get consignor by code
// @Tags         consignors
// @Produce      json
// @Param        code path string true "Consignor code"
// @Success      200 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/code/{code} [get]
func (h *ConsignorHandler) GetByCode(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Consignor code is required")
		return
	}

	consignor, err := h.consignorService.GetByCode(c.Request.Context(), orgID, code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, consignor)
}

// List godoc
// @ID           listConsignors
// @Summary      List consignors
// @Description  List consignors, optionally filtered by status
// @Tags         consignors
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by code, name or email"
// @Param        status query string false "Filter by status" Enums(pending, active, inactive, closed)
// @Success      200 {object} APIResponse[[]consignmentapp.ConsignorResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors [get]
func (h *ConsignorHandler) List(c *gin.Context) {
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

	if status := c.Query("status"); status != "" {
		result, err := h.consignorService.ListByStatus(c.Request.Context(), orgID, consignment.ConsignorStatus(status), req.ToFilter())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
		return
	}

	result, err := h.consignorService.List(c.Request.Context(), orgID, req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateConsignor
// @Summary      Update a consignor
// @Tags         consignors
// @Accept       json
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Param        request body consignmentapp.UpdateConsignorRequest true "Consignor update request"
// @Success      200 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id} [put]
func (h *ConsignorHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignor ID format")
		return
	}

	var req consignmentapp.UpdateConsignorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	consignor, err := h.consignorService.Update(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, consignor)
}

// Approve godoc
// @ID           approveConsignor
// @Summary      Approve a pending consignor
// @Tags         consignors
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Success      200 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/approve [post]
func (h *ConsignorHandler) Approve(c *gin.Context) {
	h.transition(c, h.consignorService.Approve)
}

// Reject godoc
// @ID           rejectConsignor
// @Summary      Reject a pending consignor
// @Tags         consignors
// @Accept       json
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Param        request body consignmentapp.RejectConsignorRequest false "Rejection reason"
// @Success      200 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/reject [post]
func (h *ConsignorHandler) Reject(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignor ID format")
		return
	}

	var req consignmentapp.RejectConsignorRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	consignor, err := h.consignorService.Reject(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, consignor)
}

// Activate godoc
// @ID           activateConsignor
// @Summary      Reactivate a consignor
// @Tags         consignors
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Success      200 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/activate [post]
func (h *ConsignorHandler) Activate(c *gin.Context) {
	h.transition(c, h.consignorService.Activate)
}

// Deactivate godoc
// @ID           deactivateConsignor
// @Summary      Deactivate a consignor
// @Tags         consignors
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Success      200 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/deactivate [post]
func (h *ConsignorHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.consignorService.Deactivate)
}

// Close godoc
// @ID           closeConsignor
// @Summary      Close a consignor relationship
// @Tags         consignors
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Success      200 {object} APIResponse[consignmentapp.ConsignorResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/close [post]
func (h *ConsignorHandler) Close(c *gin.Context) {
	h.transition(c, h.consignorService.Close)
}

// Delete godoc
// @ID           deleteConsignor
// @Summary      Delete a consignor
// @Description  Remove a consignor record. Blocked while unpaid sale transactions exist.
// @Tags         consignors
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id} [delete]
func (h *ConsignorHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignor ID format")
		return
	}

	if err := h.consignorService.Delete(c.Request.Context(), orgID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

type consignorTransition func(ctx context.Context, orgID, id uuid.UUID) (*consignmentapp.ConsignorResponse, error)

func (h *ConsignorHandler) transition(c *gin.Context, fn consignorTransition) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignor ID format")
		return
	}

	consignor, err := fn(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, consignor)
}
