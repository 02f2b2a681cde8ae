package handler

import (
	tradeapp "github.com/consignhq/backend/internal/application/trade"
	"github.com/consignhq/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler handles point-of-sale transaction endpoints
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RecordSale godoc
// @ID           recordSale
// @Summary      Record a sale
// @Description  Ring up an available item, computing the consignor and shop split at the moment of sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.RecordSaleRequest true "Sale request"
// @Success      201 {object} APIResponse[tradeapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) RecordSale(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clerkID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transaction, err := h.saleService.RecordSale(c.Request.Context(), orgID, clerkID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, transaction)
}

// GetByID godoc
// @ID           getSaleById
// @Summary      Get sale by ID
// @Tags         sales
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	transaction, err := h.saleService.Get(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transaction)
}

// GetByNumber godoc
// @ID           getSaleByNumber
// @Summary      Get sale by transaction number
// @Tags         sales
// @Produce      json
// @Param        number path string true "Transaction number"
// @Success      200 {object} APIResponse[tradeapp.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/number/{number} [get]
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Transaction number is required")
		return
	}

	transaction, err := h.saleService.GetByNumber(c.Request.Context(), orgID, number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transaction)
}

// List godoc
// @ID           listSales
// @Summary      List sales
// @Description  List sale transactions, optionally filtered by consignor
// @Tags         sales
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        consignor_id query string false "Filter by consignor" format(uuid)
// @Success      200 {object} APIResponse[[]tradeapp.TransactionResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
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

	if raw := c.Query("consignor_id"); raw != "" {
		consignorID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid consignor ID format")
			return
		}
		result, err := h.saleService.ListByConsignor(c.Request.Context(), orgID, consignorID, req.ToFilter())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
		return
	}

	result, err := h.saleService.List(c.Request.Context(), orgID, req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListUnpaid godoc
// @ID           listUnpaidSales
// @Summary      List unpaid sales for a consignor
// @Description  List completed sales whose consignor share has not yet been claimed by a payout
// @Tags         sales
// @Produce      json
// @Param        id path string true "Consignor ID" format(uuid)
// @Success      200 {object} APIResponse[[]tradeapp.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /consignors/{id}/unpaid-sales [get]
func (h *SaleHandler) ListUnpaid(c *gin.Context) {
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

	transactions, err := h.saleService.ListUnpaidByConsignor(c.Request.Context(), orgID, consignorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transactions)
}
