package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gomarket/internal/domain/apperr"
	"gomarket/pkg/helpers"
	"gomarket/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "username"
)

// Auth extracts the bearer token from the Authorization header, validates it
// and injects the caller identity into the Gin context. A request without a
// token is rejected with 401, a request with a token that fails verification
// (malformed, wrong signature, expired) with 403. Nothing downstream runs in
// either case.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, apperr.ErrMissingToken.Error())
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusForbidden, apperr.ErrInvalidToken.Error())
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUsernameKey, claims.Username)
		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the authenticated caller's id set by Auth.
func UserID(c *gin.Context) int64 {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
