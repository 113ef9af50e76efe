package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-infusion/internal/api/shared/errors"
	"github.com/feral-file/ff-infusion/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(details))
}

// respondUnauthorized responds with an unauthorized error
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError(message))
}

// respondInternalError responds with an internal server error and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("path", c.Request.URL.Path))...)
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondError maps an executor error to its response: request validation errors,
// rejected engine operations, or an internal error
func respondError(c *gin.Context, err error, message string) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadRequest, apiErr)
		return
	}
	if status, domainErr, ok := apierrors.FromDomain(err); ok {
		c.JSON(status, domainErr)
		return
	}
	respondInternalError(c, err, message)
}
