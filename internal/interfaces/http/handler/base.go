// Package handler holds the gin handlers of the admin API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/logger"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
	"github.com/stockpile/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, requestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 422 response listing the failed fields
func (h *BaseHandler) ValidationError(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(
		shared.ErrValidation.Message, requestID(c), details))
}

// HandleError converts application errors to HTTP responses. Anything that
// is not a domain error is logged and answered as a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var failed *validation.FailedError
	if errors.As(err, &failed) {
		h.ValidationError(c, failed.Errors)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError {
			logger.GetGinLogger(c).Error("Request failed", zap.String("code", domainErr.Code), zap.Error(err))
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID(c)))
		return
	}

	logger.GetGinLogger(c).Error("Unexpected error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.ErrCodeInternal, "An unexpected error occurred", requestID(c)))
}

// bindError answers a failed ShouldBindJSON: field failures become a 422,
// anything else is a malformed body.
func (h *BaseHandler) bindError(c *gin.Context, err error) {
	if details, ok := middleware.BindingErrors(err); ok {
		h.ValidationError(c, details)
		return
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.Error(c, dto.ErrCodeRequestTooLarge, "Request body too large")
		return
	}
	h.Error(c, dto.ErrCodeInvalidJSON, "Invalid request body")
}
