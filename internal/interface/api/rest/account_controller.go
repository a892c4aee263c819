package rest

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-admin-api/internal/application/ports"
	domain "hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/infrastructure/jwt"
	"hospital-admin-api/internal/interface/api/rest/dto/account"
	"hospital-admin-api/internal/interface/api/rest/middleware"
	"hospital-admin-api/internal/interface/api/rest/validator"
)

type AccountController struct {
	lifecycle ports.LifecycleService
	logger    *zap.Logger
}

func NewAccountController(
	r *gin.Engine,
	lifecycle ports.LifecycleService,
	logger *zap.Logger,
	tokens ports.TokenValidator,
) *AccountController {
	validator.RegisterJSONNames()

	ac := &AccountController{
		lifecycle: lifecycle,
		logger:    logger,
	}

	auth := []gin.HandlerFunc{middleware.AuthMiddleware(tokens), middleware.RequireRole(jwt.RoleAdmin)}

	r.POST(RouteDoctors, append(auth, ac.CreateDoctorHandler)...)

	collections := map[string]domain.Role{
		RouteDoctors:  domain.RoleDoctor,
		RoutePatients: domain.RolePatient,
	}
	for path, role := range collections {
		g := r.Group(path, auth...)
		g.GET("", ac.GetAccountsHandler(role))
		g.GET(routeAccount, ac.GetAccountHandler(role))
		g.POST(routeDeactivate, ac.DeactivateHandler(role))
		g.POST(routeReactivate, ac.ReactivateHandler(role))
	}

	exports := r.Group(RouteExports, auth...)
	exports.GET("/doctors", ac.ExportHandler(domain.RoleDoctor))
	exports.GET("/patients", ac.ExportHandler(domain.RolePatient))

	return ac
}

func (ac *AccountController) CreateDoctorHandler(c *gin.Context) {
	var req account.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if errs := validator.ValidateDoctor(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	a, creds, err := ac.lifecycle.CreateDoctor(
		c.Request.Context(),
		account.ToDomainDoctorInput(req),
		middleware.Actor(c),
	)
	if err != nil {
		respondError(c, ac.logger, "CreateDoctor()", err)
		return
	}

	// the body carries a plaintext password
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusCreated, account.ToCreatedDoctor(*a, creds))
}

func (ac *AccountController) GetAccountsHandler(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := validator.ValidatePage(c.Query("page"))
		if err != nil {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": err.Error()},
			)
			return
		}

		as, err := ac.lifecycle.FindAccounts(c.Request.Context(), role, page)
		if err != nil {
			respondError(c, ac.logger, "FindAccounts()", err)
			return
		}

		c.JSON(http.StatusOK, account.ResponseData{
			Data: account.ToResponseAccounts(as),
		})
	}
}

func (ac *AccountController) GetAccountHandler(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, id := validator.IsUUID(c.Param("account_id"))
		if !ok {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "account_id must be a valid UUID"},
			)
			return
		}

		a, err := ac.lifecycle.FindAccount(c.Request.Context(), role, id)
		if err != nil {
			respondError(c, ac.logger, "FindAccount()", err)
			return
		}

		c.JSON(http.StatusOK, account.ToResponseAccount(*a))
	}
}

func (ac *AccountController) DeactivateHandler(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, id := validator.IsUUID(c.Param("account_id"))
		if !ok {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "account_id must be a valid UUID"},
			)
			return
		}

		var req account.DeactivateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		a, err := ac.lifecycle.DeactivateAccount(
			c.Request.Context(),
			role,
			id,
			req.ReasonCode,
			req.Notes,
			middleware.Actor(c),
		)
		if err != nil {
			respondError(c, ac.logger, "DeactivateAccount()", err)
			return
		}

		c.JSON(http.StatusOK, account.ToResponseAccount(*a))
	}
}

func (ac *AccountController) ReactivateHandler(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, id := validator.IsUUID(c.Param("account_id"))
		if !ok {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "account_id must be a valid UUID"},
			)
			return
		}

		a, err := ac.lifecycle.ReactivateAccount(c.Request.Context(), role, id, middleware.Actor(c))
		if err != nil {
			respondError(c, ac.logger, "ReactivateAccount()", err)
			return
		}

		c.JSON(http.StatusOK, account.ToResponseAccount(*a))
	}
}

func (ac *AccountController) ExportHandler(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		as, err := ac.lifecycle.ExportAccounts(c.Request.Context(), role, middleware.Actor(c))
		if err != nil {
			respondError(c, ac.logger, "ExportAccounts()", err)
			return
		}

		var buf bytes.Buffer
		if err = account.WriteCSV(&buf, role, as); err != nil {
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to build export"},
			)
			ac.logger.Error("WriteCSV() error", zap.Error(err))
			return
		}

		filename := fmt.Sprintf("%ss-%s.csv", role, time.Now().UTC().Format("20060102-150405"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}
