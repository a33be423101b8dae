package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500. The stack is logged always and returned
// to the client only when exposeStack is set (non-production).
func Recovery(log *slog.Logger, exposeStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			stack := string(debug.Stack())
			msg := fmt.Sprint(rec)

			log.ErrorContext(c.Request.Context(), "panic recovered",
				"panic", msg,
				"route", c.FullPath(),
				"request_id", c.GetString(CtxRequestID),
				"stack", stack,
			)

			body := gin.H{
				"code":      "internal_error",
				"message":   msg,
				"requestId": c.GetString(CtxRequestID),
			}
			if exposeStack {
				body["details"] = gin.H{"stack": stack}
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": body})
		}()

		c.Next()
	}
}
