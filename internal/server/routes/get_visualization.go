package routes

import (
	"net/http"

	"github.com/openmediawatch/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetVisualizationHandler exports the network as flat node and aggregate
// edge lists for external rendering.
func GetVisualizationHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, app.Net.ExportForVisualization())
}
