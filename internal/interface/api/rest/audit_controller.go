package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/infrastructure/jwt"
	"hospital-admin-api/internal/interface/api/rest/dto/audit"
	"hospital-admin-api/internal/interface/api/rest/middleware"
	"hospital-admin-api/internal/interface/api/rest/validator"
)

type AuditController struct {
	auditService ports.AuditService
	logger       *zap.Logger
}

func NewAuditController(
	r *gin.Engine,
	auditService ports.AuditService,
	logger *zap.Logger,
	tokens ports.TokenValidator,
) *AuditController {
	ac := &AuditController{
		auditService: auditService,
		logger:       logger,
	}

	r.GET(RouteAudit, middleware.AuthMiddleware(tokens), middleware.RequireRole(jwt.RoleAdmin), ac.GetEntriesHandler)

	return ac
}

func (ac *AuditController) GetEntriesHandler(c *gin.Context) {
	f, errs := validator.ParseAuditFilter(
		c.Query("action"),
		c.Query("target_id"),
		c.Query("from"),
		c.Query("to"),
		c.Query("limit"),
	)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query",
			"details": errs,
		})
		return
	}

	entries, err := ac.auditService.ListEntries(c.Request.Context(), f)
	if err != nil {
		respondError(c, ac.logger, "ListEntries()", err)
		return
	}

	c.JSON(http.StatusOK, audit.ResponseData{
		Data: audit.ToResponseEntries(entries),
	})
}
