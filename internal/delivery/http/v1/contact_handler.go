package v1

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/ratelimit"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, no auth required).
// The rate-limit gate is route-scoped and runs before the handler, so
// rejected callers never reach payload validation or dispatch.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limiter ratelimit.Limiter) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", middleware.RateLimit(limiter, nil), handler.SubmitContact)
}

// SubmitContact handles one contact form submission.
//
// Responses:
//
//	200 {success, message}   email dispatched
//	400 {error}              missing fields or malformed email
//	429 {error, retryAfter}  rate limited (plus Retry-After / X-RateLimit-* headers)
//	503 {error}              email service not configured
//	500 {error}              dispatch or unexpected failure
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(bindErrorMessage(err)))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Email sent successfully")
}

// bindErrorMessage maps binding failures onto the wire contract. Missing
// fields win over a malformed email when both apply.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return "Name, email, and message are required"
			}
		}
		for _, fe := range verrs {
			if fe.Tag() == "contact_email" {
				return "Invalid email address"
			}
		}
	}
	return "Name, email, and message are required"
}
