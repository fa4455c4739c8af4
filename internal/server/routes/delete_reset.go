package routes

import (
	"net/http"

	"github.com/openmediawatch/backend/internal/server/middleware"
	"github.com/openmediawatch/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResetNetworkHandler clears the in-memory network and the persisted copy.
func ResetNetworkHandler(c echo.Context) error {
	type resetResponse struct {
		Message string `json:"message"`
	}

	app := c.(*middleware.AppContext).App

	if err := app.Storage.DeleteAll(c.Request().Context()); err != nil {
		logger.Error("Failed to clear persisted network", "err", err)
		return c.JSON(http.StatusInternalServerError, resetResponse{
			Message: "Internal server error",
		})
	}
	app.Net.Reset()

	return c.JSON(http.StatusOK, resetResponse{
		Message: "Network reset",
	})
}
