package routes

import (
	"net/http"

	"github.com/openmediawatch/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetCrossBiasHandler reports how citation traffic flows between bias
// labels, including the full bias-by-bias matrix.
func GetCrossBiasHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, app.Net.CrossBias())
}
