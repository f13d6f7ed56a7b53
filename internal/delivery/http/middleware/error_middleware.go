package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Status == http.StatusInternalServerError && logger.Log != nil {
					logger.Log.Error("internal error", "error", appErr.Err, "path", c.FullPath())
				}
				response.Error(c, appErr.Status, appErr.Message, appErr.Code)
				return
			}
			// Never expose internal error details to clients; log
			// server-side and send a generic message.
			if logger.Log != nil {
				logger.Log.Error("unhandled error", "error", err, "path", c.FullPath())
			}
			response.Error(c, http.StatusInternalServerError, "Internal server error", "INTERNAL")
		}
	}
}
