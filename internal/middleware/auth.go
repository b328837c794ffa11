package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/security"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/service"
)

const principalKey = "principal"

type PrincipalResolver interface {
	Authorize(ctx context.Context, token string) (models.Principal, error)
}

// RequireAdmin admits only requests carrying a live admin session cookie.
// Every rejection looks the same to the caller.
func RequireAdmin(resolver PrincipalResolver, rule security.CookieRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := rule.SessionToken(c.Request)

		principal, err := resolver.Authorize(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"ok":    false,
					"error": "UNAUTHORIZED",
					"code":  "UNAUTHENTICATED",
				})
				return
			}
			log.Error().
				Err(err).
				Str("request_id", c.Writer.Header().Get(requestIDHeader)).
				Msg("session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"ok":    false,
				"error": "Internal server error",
				"code":  "INTERNAL_ERROR",
			})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by RequireAdmin.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
