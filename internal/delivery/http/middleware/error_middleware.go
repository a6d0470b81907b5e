package middleware

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"

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
				// Full detail stays in the logs; the client only sees the
				// status-appropriate message.
				if appErr.Err != nil {
					logger.Log.Error("request failed", "status", appErr.Code, "message", appErr.Message, "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message)
			} else {
				logger.Log.Error("unexpected error", "error", err)
				response.Error(c, http.StatusInternalServerError, "Internal server error")
			}
		}
	}
}
