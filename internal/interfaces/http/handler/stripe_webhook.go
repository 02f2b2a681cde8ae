package handler

import (
	"go.uber.org/zap"

	billingapp "github.com/consignhq/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// StripeWebhookHandler receives subscription lifecycle events from Stripe
type StripeWebhookHandler struct {
	BaseHandler
	webhookService *billingapp.StripeWebhookService
	logger         *zap.Logger
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(webhookService *billingapp.StripeWebhookService, logger *zap.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{webhookService: webhookService, logger: logger}
}

// HandleWebhook godoc
// @ID           stripeWebhook
// @Summary      Stripe webhook receiver
// @Description  Verifies the Stripe-Signature header against the raw body and applies subscription changes to the owning organization
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe webhook signature"
// @Success      200 {object} APIResponse[billingapp.WebhookResult]
// @Failure      400 {object} ErrorResponse
// @Router       /billing/stripe/webhook [post]
func (h *StripeWebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.BadRequest(c, "Missing Stripe-Signature header")
		return
	}

	result, err := h.webhookService.ProcessWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		if result == nil {
			// Signature failures get a 400 so a misconfigured secret
			// surfaces instead of Stripe retrying forever.
			h.logger.Warn("Stripe webhook rejected", zap.Error(err))
			h.BadRequest(c, "Webhook verification failed")
			return
		}
		// Processing failure on a verified event. 500 makes Stripe retry.
		h.InternalError(c, "Failed to process webhook event")
		return
	}

	h.Success(c, result)
}
