package middleware

import (
	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/models"
	"github.com/gin-gonic/gin"
)

// NewRateLimiter builds a per-IP limiter allowing max requests per second.
func NewRateLimiter(max float64) *limiter.Limiter {
	lmt := tollbooth.NewLimiter(max, nil)
	lmt.SetIPLookups([]string{"X-Forwarded-For", "RemoteAddr", "X-Real-IP"})
	return lmt
}

// RateLimit rejects requests over the limiter's threshold with a 429.
// Used on login and code-issuing routes to slow down guessing.
func RateLimit(lmt *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpError != nil {
			c.AbortWithStatusJSON(httpError.StatusCode, dto.ErrorResponse{
				Detail: "Too many requests, please try again later",
				Code:   models.ErrCodeRateLimited,
			})
			return
		}
		c.Next()
	}
}
