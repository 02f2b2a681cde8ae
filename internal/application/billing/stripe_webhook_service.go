package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// StripeWebhookService updates organization subscriptions from Stripe
// webhook events.
type StripeWebhookService struct {
	webhookSecret string
	orgRepo       identity.OrganizationRepository
	logger        *zap.Logger
}

// NewStripeWebhookService creates a new StripeWebhookService
func NewStripeWebhookService(webhookSecret string, orgRepo identity.OrganizationRepository, logger *zap.Logger) *StripeWebhookService {
	return &StripeWebhookService{
		webhookSecret: webhookSecret,
		orgRepo:       orgRepo,
		logger:        logger,
	}
}

// WebhookResult contains the result of processing a webhook
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// ProcessWebhook verifies and processes a Stripe webhook event
func (s *StripeWebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		s.logger.Error("Failed to verify webhook signature", zap.Error(err))
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	return s.ProcessEvent(ctx, event)
}

// ProcessEvent processes an already-verified Stripe event
func (s *StripeWebhookService) ProcessEvent(ctx context.Context, event stripe.Event) (*WebhookResult, error) {
	s.logger.Info("Processing Stripe webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Processed: true,
	}

	var err error
	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		err = s.handleSubscriptionChanged(ctx, event)
	case "customer.subscription.deleted":
		err = s.handleSubscriptionDeleted(ctx, event)
	case "invoice.paid":
		err = s.handleInvoicePaid(ctx, event)
	case "invoice.payment_failed":
		err = s.handleInvoicePaymentFailed(ctx, event)
	default:
		s.logger.Debug("Unhandled webhook event type",
			zap.String("event_type", string(event.Type)))
		result.Message = "Event type not handled"
	}

	if err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		result.Processed = false
		result.Message = err.Error()
		return result, err
	}

	return result, nil
}

// handleSubscriptionChanged handles customer.subscription.created and
// customer.subscription.updated events.
func (s *StripeWebhookService) handleSubscriptionChanged(ctx context.Context, event stripe.Event) error {
	var subscription stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
		return fmt.Errorf("failed to unmarshal subscription: %w", err)
	}

	org, ok, err := s.findOrganization(ctx, &subscription)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if org.StripeSubscriptionID != subscription.ID {
		org.LinkStripe(org.StripeCustomerID, subscription.ID)
	}

	// Tier changes come through checkout metadata
	if tierName, ok := subscription.Metadata["tier"]; ok {
		tier := identity.SubscriptionTier(tierName)
		if org.SubscriptionTier != tier {
			if err := org.ChangeTier(tier); err != nil {
				s.logger.Warn("Failed to change subscription tier",
					zap.String("tier", tierName),
					zap.Error(err))
			}
		}
	}

	switch subscription.Status {
	case stripe.SubscriptionStatusActive:
		if org.SubscriptionStatus != identity.SubscriptionStatusActive {
			if err := org.Reactivate(); err != nil {
				s.logger.Warn("Failed to activate organization", zap.Error(err))
			}
		}
	case stripe.SubscriptionStatusTrialing:
		// Trial standing is already good, nothing to change
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		if err := org.MarkPastDue(); err != nil {
			s.logger.Warn("Failed to mark organization past due", zap.Error(err))
		}
	case stripe.SubscriptionStatusCanceled:
		// Handled by the subscription.deleted event
		s.logger.Info("Subscription canceled",
			zap.String("org_id", org.ID.String()))
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}

	s.logger.Info("Subscription change processed",
		zap.String("org_id", org.ID.String()),
		zap.String("subscription_id", subscription.ID),
		zap.String("status", string(org.SubscriptionStatus)),
		zap.String("tier", string(org.SubscriptionTier)))

	return nil
}

// handleSubscriptionDeleted handles customer.subscription.deleted events
func (s *StripeWebhookService) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var subscription stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
		return fmt.Errorf("failed to unmarshal subscription: %w", err)
	}

	org, ok, err := s.findOrganization(ctx, &subscription)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	org.LinkStripe(org.StripeCustomerID, "")
	if err := org.Cancel(); err != nil {
		s.logger.Warn("Failed to cancel organization subscription", zap.Error(err))
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}

	s.logger.Info("Subscription deletion processed",
		zap.String("org_id", org.ID.String()),
		zap.String("subscription_id", subscription.ID))

	return nil
}

// handleInvoicePaid handles invoice.paid events
func (s *StripeWebhookService) handleInvoicePaid(ctx context.Context, event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to unmarshal invoice: %w", err)
	}

	customerID := ""
	if invoice.Customer != nil {
		customerID = invoice.Customer.ID
	}
	if customerID == "" {
		s.logger.Warn("Invoice has no customer ID, skipping",
			zap.String("invoice_id", invoice.ID))
		return nil
	}

	org, err := s.orgRepo.FindByStripeCustomerID(ctx, customerID)
	if err != nil {
		if err == shared.ErrNotFound {
			s.logger.Warn("Organization not found for Stripe customer",
				zap.String("customer_id", customerID))
			return nil
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	// A successful payment clears past-due standing
	if org.SubscriptionStatus == identity.SubscriptionStatusPastDue {
		if err := org.Reactivate(); err != nil {
			return err
		}
		if err := s.orgRepo.Save(ctx, org); err != nil {
			return fmt.Errorf("failed to save organization: %w", err)
		}
		s.logger.Info("Organization restored to active after payment",
			zap.String("org_id", org.ID.String()))
	}

	return nil
}

// handleInvoicePaymentFailed handles invoice.payment_failed events
func (s *StripeWebhookService) handleInvoicePaymentFailed(ctx context.Context, event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to unmarshal invoice: %w", err)
	}

	customerID := ""
	if invoice.Customer != nil {
		customerID = invoice.Customer.ID
	}
	if customerID == "" {
		return nil
	}

	org, err := s.orgRepo.FindByStripeCustomerID(ctx, customerID)
	if err != nil {
		if err == shared.ErrNotFound {
			s.logger.Warn("Organization not found for Stripe customer",
				zap.String("customer_id", customerID))
			return nil
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if err := org.MarkPastDue(); err != nil {
		s.logger.Warn("Failed to mark organization past due",
			zap.String("org_id", org.ID.String()),
			zap.Error(err))
		return nil
	}
	if err := s.orgRepo.Save(ctx, org); err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}

	s.logger.Warn("Organization marked past due after failed payment",
		zap.String("org_id", org.ID.String()),
		zap.String("invoice_id", invoice.ID))

	return nil
}

// findOrganization resolves the organization a subscription event belongs
// to. A missing organization is not an error: webhooks can arrive before
// checkout completes locally, and Stripe should not retry those.
func (s *StripeWebhookService) findOrganization(ctx context.Context, subscription *stripe.Subscription) (*identity.Organization, bool, error) {
	customerID := ""
	if subscription.Customer != nil {
		customerID = subscription.Customer.ID
	}
	if customerID == "" {
		s.logger.Warn("Subscription has no customer ID, skipping",
			zap.String("subscription_id", subscription.ID))
		return nil, false, nil
	}

	org, err := s.orgRepo.FindByStripeCustomerID(ctx, customerID)
	if err != nil {
		if err == shared.ErrNotFound {
			s.logger.Warn("Organization not found for Stripe customer",
				zap.String("customer_id", customerID))
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, true, nil
}
