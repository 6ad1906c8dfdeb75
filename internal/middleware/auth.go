// File: internal/middleware/auth.go
package middleware

import (
	"plusone_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenVerifier validates an access token and returns the account id and
// email it was issued for.
type TokenVerifier interface {
	ValidateAccessToken(tokenString string) (uuid.UUID, string, error)
}

// AuthMiddleware authenticates the request via a Bearer token and stores the
// account identity in the gin context.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Missing or malformed Authorization header."))
			return
		}

		userID, email, err := verifier.ValidateAccessToken(tokenString)
		if err != nil {
			logger.Debug("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired token."))
			return
		}

		c.Set(common.UserIDKey, userID)
		c.Set(common.UserEmailKey, email)
		c.Next()
	}
}
