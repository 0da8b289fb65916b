package middleware

import (
	"net/http"
	"strings"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/auth"
	"github.com/digistore/api/internal/models"
	"github.com/gin-gonic/gin"
)

const claimsKey = "authClaims"

// RequireAuth validates the Bearer access token and stores its claims in
// the request context. Refresh tokens are rejected here.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Detail: "Missing or malformed Authorization header",
				Code:   models.ErrCodeInvalidToken,
			})
			return
		}

		claims, err := tokens.ParseAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Detail: "Invalid or expired access token",
				Code:   models.ErrCodeInvalidToken,
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the access token claims stored by RequireAuth.
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), parts[1] != ""
}
