package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/vallas-api/internal/actorctx"
	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/auth"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":      code,
			"message":   message,
			"requestId": c.GetString(CtxRequestID),
		},
	})
}

func abortErr(c *gin.Context, e *apperr.Error) {
	abortJSON(c, e.Status(), e.Code, e.Message)
}

// RequireAuth verifies the bearer token and attaches the caller to both the
// gin context and the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "Token no proporcionado")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "Token no proporcionado")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "Token inválido o expirado")
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxRolKey, claims.Rol)
		c.Set(ctxUsernameKey, claims.Username)

		c.Request = c.Request.WithContext(actorctx.With(c.Request.Context(), actorctx.Actor{
			UserID:   claims.UserID,
			Email:    claims.Email,
			Rol:      claims.Rol,
			Username: claims.Username,
		}))

		c.Next()
	}
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(ctxUserIDKey)
	return id, id != ""
}

func RolFromContext(c *gin.Context) (string, bool) {
	rol := c.GetString(ctxRolKey)
	return rol, rol != ""
}
