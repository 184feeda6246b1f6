package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"festivo/models"
	"festivo/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxCustomerID = "customerID"
	CtxVendorID   = "vendorID"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
}

func authenticate(c *gin.Context, cache *redis.Client, wantRole string) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return "", false
	}

	accountID, role, err := utils.ExtractIDAndRole(tokenString)
	if err != nil || role != wantRole {
		return "", false
	}

	// The cached session holds the hash of the account's active token; a
	// newer signin or an explicit signout invalidates older tokens.
	storedHash, err := utils.GetAuthSession(cache, role, accountID)
	if err != nil || storedHash != utils.HashToken(tokenString) {
		return "", false
	}

	return accountID, true
}

// CustomerAuth guards customer-only endpoints.
func CustomerAuth(cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authenticate(c, cache, models.RecipientCustomer)
		if !ok {
			abortUnauthorized(c)
			return
		}
		c.Set(CtxCustomerID, id)
		c.Next()
	}
}

// VendorAuth guards vendor-only endpoints.
func VendorAuth(cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authenticate(c, cache, models.RecipientVendor)
		if !ok {
			abortUnauthorized(c)
			return
		}
		c.Set(CtxVendorID, id)
		c.Next()
	}
}

// EitherAuth accepts either role and sets the matching context key. Endpoints
// behind it resolve the acting party from whichever key is present.
func EitherAuth(cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := authenticate(c, cache, models.RecipientCustomer); ok {
			c.Set(CtxCustomerID, id)
			c.Next()
			return
		}
		if id, ok := authenticate(c, cache, models.RecipientVendor); ok {
			c.Set(CtxVendorID, id)
			c.Next()
			return
		}
		abortUnauthorized(c)
	}
}
