package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/gin-gonic/gin"
)

// storeTimeout bounds every store round-trip a handler makes.
const storeTimeout = 5 * time.Second

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if s := ctx.GetString("request_id"); s != "" {
		return s
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

// loggerFrom returns the logger RequestLogger put on ctx.
func loggerFrom(ctx *gin.Context) *slog.Logger {
	if v, ok := ctx.Get("logger"); ok {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

func requestCtx(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), storeTimeout)
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

// RespondErr maps a service error onto its status. Internal causes are
// logged, never returned.
func RespondErr(ctx *gin.Context, err error) {
	e := apperr.From(err)

	if e.Kind == apperr.KindInternal {
		loggerFrom(ctx).ErrorContext(ctx.Request.Context(), "request failed",
			"route", ctx.FullPath(),
			"request_id", requestIDFrom(ctx),
			"err", err,
		)
	}

	RespondError(ctx, e.Status(), e.Code, e.Message, e.Details)
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

// RespondList writes {"items","count"} with an ETag.
func RespondList[T any](ctx *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func RespondDeleted(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"deleted": true,
		"data":    data,
	})
}
