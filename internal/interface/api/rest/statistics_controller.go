package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/infrastructure/jwt"
	"hospital-admin-api/internal/interface/api/rest/dto/statistics"
	"hospital-admin-api/internal/interface/api/rest/middleware"
)

type StatisticsController struct {
	statisticsService ports.StatisticsService
	logger            *zap.Logger
}

func NewStatisticsController(
	r *gin.Engine,
	statisticsService ports.StatisticsService,
	logger *zap.Logger,
	tokens ports.TokenValidator,
) *StatisticsController {
	sc := &StatisticsController{
		statisticsService: statisticsService,
		logger:            logger,
	}

	r.GET(RouteStatistics, middleware.AuthMiddleware(tokens), middleware.RequireRole(jwt.RoleAdmin), sc.GetStatisticsHandler)

	return sc
}

func (sc *StatisticsController) GetStatisticsHandler(c *gin.Context) {
	s, err := sc.statisticsService.ComputeStatistics(c.Request.Context())
	if err != nil {
		respondError(c, sc.logger, "ComputeStatistics()", err)
		return
	}

	c.JSON(http.StatusOK, statistics.ToResponseSnapshot(*s))
}
