package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// admin
	RouteAdmin      = RouteApiV1 + "/admin"
	RouteDoctors    = RouteAdmin + "/doctors"
	RoutePatients   = RouteAdmin + "/patients"
	RouteExports    = RouteAdmin + "/exports"
	RouteAudit      = RouteAdmin + "/audit"
	RouteStatistics = RouteAdmin + "/statistics"

	// relative to a role collection
	routeAccount    = "/:account_id"
	routeDeactivate = routeAccount + "/deactivate"
	routeReactivate = routeAccount + "/reactivate"

	// reference data
	RouteCatalog = RouteApiV1 + "/catalogs/:kind"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
