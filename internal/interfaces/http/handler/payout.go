package handler

import (
	financeapp "github.com/consignhq/backend/internal/application/finance"
	"github.com/consignhq/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PayoutHandler handles consignor payout endpoints
type PayoutHandler struct {
	BaseHandler
	payoutService *financeapp.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(payoutService *financeapp.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// Create godoc
// @ID           createPayout
// @Summary      Create a payout
// @Description  Claim a consignor's unpaid sales within the period into a pending payout. Each sale can be claimed by at most one non-cancelled payout.
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreatePayoutRequest true "Payout creation request"
// @Success      201 {object} APIResponse[financeapp.PayoutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts [post]
func (h *PayoutHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payout, err := h.payoutService.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payout)
}

// GetByID godoc
// @ID           getPayoutById
// @Summary      Get payout by ID
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.PayoutResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts/{id} [get]
func (h *PayoutHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payout ID format")
		return
	}

	payout, err := h.payoutService.Get(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payout)
}

// GetByNumber godoc
// @ID           getPayoutByNumber
// @Summary      Get payout by number
// @Tags         payouts
// @Produce      json
// @Param        number path string true "Payout number"
// @Success      200 {object} APIResponse[financeapp.PayoutResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts/number/{number} [get]
func (h *PayoutHandler) GetByNumber(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Payout number is required")
		return
	}

	payout, err := h.payoutService.GetByNumber(c.Request.Context(), orgID, number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payout)
}

// List godoc
// @ID           listPayouts
// @Summary      List payouts
// @Description  List payouts, optionally filtered by consignor
// @Tags         payouts
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        consignor_id query string false "Filter by consignor" format(uuid)
// @Success      200 {object} APIResponse[[]financeapp.PayoutResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts [get]
func (h *PayoutHandler) List(c *gin.Context) {
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
		result, err := h.payoutService.ListByConsignor(c.Request.Context(), orgID, consignorID, req.ToFilter())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
		return
	}

	result, err := h.payoutService.List(c.Request.Context(), orgID, req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListTransactions godoc
// @ID           listPayoutTransactions
// @Summary      List transactions claimed by a payout
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Success      200 {object} APIResponse[[]trade.Transaction]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts/{id}/transactions [get]
func (h *PayoutHandler) ListTransactions(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payout ID format")
		return
	}

	transactions, err := h.payoutService.ListTransactions(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transactions)
}

// StartProcessing godoc
// @ID           startPayoutProcessing
// @Summary      Start processing a payout
// @Description  Move a pending payout into processing while funds are prepared
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.PayoutResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts/{id}/process [post]
func (h *PayoutHandler) StartProcessing(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payout ID format")
		return
	}

	payout, err := h.payoutService.StartProcessing(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payout)
}

// MarkPaid godoc
// @ID           markPayoutPaid
// @Summary      Mark a payout as paid
// @Description  Record that the consignor has been handed their funds
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Param        request body financeapp.MarkPaidRequest false "Payment reference"
// @Success      200 {object} APIResponse[financeapp.PayoutResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts/{id}/pay [post]
func (h *PayoutHandler) MarkPaid(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payout ID format")
		return
	}

	var req financeapp.MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	payout, err := h.payoutService.MarkPaid(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payout)
}

// Cancel godoc
// @ID           cancelPayout
// @Summary      Cancel a payout
// @Description  Abandon a payout before payment, releasing its claimed sales back to the unpaid pool
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Param        request body financeapp.CancelPayoutRequest false "Cancellation reason"
// @Success      200 {object} APIResponse[financeapp.PayoutResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts/{id}/cancel [post]
func (h *PayoutHandler) Cancel(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payout ID format")
		return
	}

	var req financeapp.CancelPayoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	payout, err := h.payoutService.Cancel(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payout)
}

// MarkSyncedToLedger godoc
// @ID           markPayoutSyncedToLedger
// @Summary      Mark a payout as synced to the accounting ledger
// @Description  Record the external ledger reference for a paid payout
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Param        request body financeapp.LedgerSyncRequest true "Ledger entry reference"
// @Success      200 {object} APIResponse[financeapp.PayoutResponse]
// @Failure      402 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payouts/{id}/ledger-sync [post]
func (h *PayoutHandler) MarkSyncedToLedger(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payout ID format")
		return
	}

	var req financeapp.LedgerSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payout, err := h.payoutService.MarkSyncedToLedger(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payout)
}
