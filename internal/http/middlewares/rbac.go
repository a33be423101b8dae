package middlewares

import (
	"slices"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/gin-gonic/gin"
)

var (
	errNoRol     = apperr.Unauthorized("", "Usuario no autenticado")
	errForbidden = apperr.Forbidden("No tiene permisos para esta acción")
)

// RequireRoles lets the request through only when the authenticated rol is
// one of allowed. It must run after RequireAuth.
func (m *AuthMiddleware) RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rol, ok := RolFromContext(c)
		if !ok {
			abortErr(c, errNoRol)
			return
		}

		if !slices.Contains(allowed, rol) {
			abortErr(c, errForbidden)
			return
		}
		c.Next()
	}
}
