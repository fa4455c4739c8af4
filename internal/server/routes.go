package server

import (
	"github.com/openmediawatch/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Network build and ingestion routes
	apiRoutes.POST("/network/build", routes.BuildNetworkHandler)
	apiRoutes.POST("/network/citations", routes.AddCitationHandler)
	apiRoutes.POST("/network/demo", routes.LoadDemoHandler)
	apiRoutes.DELETE("/network/reset", routes.ResetNetworkHandler)

	// Analytics routes
	apiRoutes.GET("/network/sources", routes.GetSourcesHandler)
	apiRoutes.GET("/network/echo-chambers", routes.GetEchoChambersHandler)
	apiRoutes.GET("/network/summary", routes.GetSummaryHandler)
	apiRoutes.GET("/network/cross-bias", routes.GetCrossBiasHandler)
	apiRoutes.GET("/network/visualization", routes.GetVisualizationHandler)
}
