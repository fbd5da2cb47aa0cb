package middleware

import (
	"net/http"

	"contacthub-backend/internal/auth"
	"contacthub-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentOrganization resolves the session's current organization and stores
// it on the request context. Requests with no resolvable organization are
// rejected; contact endpoints never run unscoped.
func CurrentOrganization(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		orgID, found, err := resolver.Resolve(c.Request.Context(), SessionKey(userID), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current organization"})
			return
		}
		if !found {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "No current organization for this session",
				"code":  "NO_CURRENT_ORGANIZATION",
			})
			return
		}

		c.Set("organization_id", orgID)
		c.Next()
	}
}

// SessionKey returns the session-store key for a user's current organization
func SessionKey(userID uuid.UUID) string {
	return userID.String()
}

// GetOrganizationID is a helper function to extract the current organization
// id from context
func GetOrganizationID(c *gin.Context) (uuid.UUID, bool) {
	orgID, exists := c.Get("organization_id")
	if !exists {
		return uuid.Nil, false
	}

	id, ok := orgID.(uuid.UUID)
	return id, ok
}
