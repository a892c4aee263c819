package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-admin-api/internal/domain/apperr"
	"hospital-admin-api/internal/interface/api/rest/validator"
)

// respondError maps the core error taxonomy onto HTTP. Anything outside it
// is logged and hidden behind a 500.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var (
		ve *apperr.ValidationError
		ce *apperr.ConflictError
		nf *apperr.NotFoundError
		is *apperr.InvalidStateError
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": ve.Fields,
		})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{
			"error": ce.Error(),
			"field": ce.Field,
		})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.As(err, &is):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "invalid state",
			"details": is.Error(),
		})
	default:
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "internal error"},
		)
		logger.Error(op+" error", zap.Error(err))
	}
}

func respondBindError(c *gin.Context, err error) {
	if details, ok := validator.BindingDetails(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request body",
		"details": err.Error(),
	})
}
