package routes

import (
	"net/http"

	"github.com/openmediawatch/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func GetSummaryHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, app.Net.Summarize())
}
