package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON error shape: {error, code?, request_id?}.
type ErrorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON sends a success payload as-is.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response
func Error(c *gin.Context, status int, message, code string) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(status, ErrorBody{
		Error:     message,
		Code:      code,
		RequestID: idStr,
	})
}
