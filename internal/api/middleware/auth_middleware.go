package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vectorhire/internal/auth"
	"vectorhire/internal/session"
)

const sessionKey = "session"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// AuthMiddleware 校验访问令牌并将会话身份注入上下文。
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		rawToken := parts[1]
		if strings.TrimSpace(rawToken) == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(rawToken)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(sessionKey, claims.Session())
		c.Next()
	}
}

// RequireRole 在 AuthMiddleware 之后使用，限制端点只对指定角色开放。
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFromContext(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if sess.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// SessionFromContext 返回上下文中的会话身份。
func SessionFromContext(c *gin.Context) (session.Session, bool) {
	if value, ok := c.Get(sessionKey); ok {
		if sess, ok := value.(session.Session); ok {
			return sess, true
		}
	}
	return session.Session{}, false
}
