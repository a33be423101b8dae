package middlewares

// gin context keys
const (
	CtxRequestID = "request_id"
	CtxLogger    = "logger"

	ctxUserIDKey   = "auth.userID"
	ctxEmailKey    = "auth.email"
	ctxRolKey      = "auth.rol"
	ctxUsernameKey = "auth.username"
)
