package handler

import (
	"time"

	financeapp "github.com/consignhq/backend/internal/application/finance"
	"github.com/consignhq/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// StatementHandler handles consignor statement endpoints
type StatementHandler struct {
	BaseHandler
	statementService *financeapp.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *financeapp.StatementService) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// generateStatementBody is the request body for statement generation.
// The consignor comes from the path.
type generateStatementBody struct {
	PeriodStart time.Time `json:"period_start" binding:"required"`
	PeriodEnd   time.Time `json:"period_end" binding:"required"`
}

// Generate godoc
// @ID           generateStatement
// @Summary      Generate a statement
// @Description  Build an activity statement for a consignor covering the given period. Regenerating the same period replaces the stored statement.
// @Tags         statements
// @Accept       json
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Param        request body generateStatementBody true "Statement period"
// @Success      201 {object} APIResponse[financeapp.StatementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/statements [post]
func (h *StatementHandler) Generate(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	consignorID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignor ID format")
		return
	}

	var body generateStatementBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.statementService.Generate(c.Request.Context(), orgID, financeapp.GenerateStatementRequest{
		ConsignorID: consignorID,
		PeriodStart: body.PeriodStart,
		PeriodEnd:   body.PeriodEnd,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, statement)
}

// GetByID godoc
// @ID           getStatementById
// @Summary      Get statement by ID
// @Tags         statements
// @Produce      json
// @Param        id path string true "Statement ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.StatementResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /statements/{id} [get]
func (h *StatementHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid statement ID format")
		return
	}

	statement, err := h.statementService.Get(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}

// GetByPeriod godoc
// @ID           getStatementByPeriod
// @Summary      Get statement by period
// @Description  Look up a previously generated statement by consignor and period bounds
// @Tags         statements
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Param        period_start query string true "Period start (RFC 3339)"
// @Param        period_end query string true "Period end (RFC 3339)"
// @Success      200 {object} APIResponse[financeapp.StatementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/statements/period [get]
func (h *StatementHandler) GetByPeriod(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	consignorID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignor ID format")
		return
	}

	periodStart, err := time.Parse(time.RFC3339, c.Query("period_start"))
	if err != nil {
		h.BadRequest(c, "Invalid period_start, expected RFC 3339 timestamp")
		return
	}
	periodEnd, err := time.Parse(time.RFC3339, c.Query("period_end"))
	if err != nil {
		h.BadRequest(c, "Invalid period_end, expected RFC 3339 timestamp")
		return
	}

	statement, err := h.statementService.GetByPeriod(c.Request.Context(), orgID, financeapp.GenerateStatementRequest{
		ConsignorID: consignorID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}

// ListByConsignor godoc
// @ID           listConsignorStatements
// @Summary      List statements for a consignor
// @Tags         statements
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]financeapp.StatementResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/statements [get]
func (h *StatementHandler) ListByConsignor(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	consignorID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consignor ID format")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.statementService.ListByConsignor(c.Request.Context(), orgID, consignorID, req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
