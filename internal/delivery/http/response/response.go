package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse is the body for accepted submissions.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body for every failure status. RetryAfter is only
// populated on 429 responses.
type ErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, SuccessResponse{
		Success: true,
		Message: message,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Error: message,
	})
}

// RateLimited sends a 429 body carrying the machine-readable retry delay.
// The matching headers are the caller's responsibility.
func RateLimited(c *gin.Context, code int, message string, retryAfter int) {
	c.JSON(code, ErrorResponse{
		Error:      message,
		RetryAfter: retryAfter,
	})
}
