package middleware

import (
	"net/http"

	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequireTier gates a route group behind a subscription tier. The
// organization is loaded from the authenticated claims, so this must
// run after JWT authentication. An organization not in good standing
// is denied regardless of tier; a tier shortfall reports the upgrade
// target so clients can prompt for it.
func RequireTier(orgRepo identity.OrganizationRepository, required identity.SubscriptionTier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, err := uuid.Parse(GetJWTOrgID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		org, err := orgRepo.FindByID(c.Request.Context(), orgID)
		if err != nil {
			if log != nil {
				log.Error("Failed to load organization for tier check",
					zap.String("org_id", orgID.String()),
					zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to verify subscription",
				},
			})
			return
		}

		decision := org.CheckAccess(required)
		if decision.Allowed {
			c.Next()
			return
		}

		message := "Subscription is not active"
		if decision.UpgradeRequired {
			message = "This feature requires the " + string(decision.RequiredTier) + " plan"
		}
		c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
			"success": false,
			"error": gin.H{
				"code":             shared.ErrPaymentRequired.Code,
				"message":          message,
				"required_tier":    string(decision.RequiredTier),
				"upgrade_required": decision.UpgradeRequired,
			},
		})
	}
}

// RequireStaff restricts a route to owner and clerk accounts. Provider
// and customer tokens are rejected.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(identity.RoleOwner, identity.RoleClerk)
}

// RequireOwner restricts a route to the organization owner.
func RequireOwner() gin.HandlerFunc {
	return RequireRoles(identity.RoleOwner)
}

// RequireRoles restricts a route to the given roles
func RequireRoles(roles ...identity.UserRole) gin.HandlerFunc {
	allowed := make(map[identity.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := identity.UserRole(GetJWTRole(c))
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient role for this operation",
				},
			})
			return
		}
		c.Next()
	}
}
