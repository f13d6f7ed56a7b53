package audit

import (
	"sync"

	"go.uber.org/zap"
)

// Event types recorded by the audit logger.
const (
	EventAuthFailure   = "AUTH_FAILURE"
	EventForbidden     = "ACCESS_FORBIDDEN"
	EventLoginFailed   = "LOGIN_FAILED"
	EventRateLimited   = "RATE_LIMITED"
	EventUploadReject  = "UPLOAD_REJECTED"
	EventLoginSuccess  = "LOGIN_SUCCESS"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Init builds the zap production logger used for security-relevant events.
// Application logs stay on slog; this stream is machine-parseable audit
// output that can be shipped separately.
func Init() {
	once.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		log = l.Named("audit")
	})
}

// Event records a security event. Safe to call before Init (no-op).
func Event(eventType, userID, clientIP, detail string) {
	if log == nil {
		return
	}
	fields := []zap.Field{
		zap.String("event", eventType),
		zap.String("ip", clientIP),
	}
	if userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}
	if detail != "" {
		fields = append(fields, zap.String("detail", detail))
	}
	log.Info("security_event", fields...)
}

// Sync flushes buffered audit entries. Called on shutdown.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
