package routes

import (
	"net/http"

	"github.com/openmediawatch/backend/internal/server/middleware"
	"github.com/openmediawatch/backend/internal/store"
	"github.com/openmediawatch/backend/pkg/logger"
	"github.com/openmediawatch/backend/pkg/network"

	"github.com/labstack/echo/v4"
)

// LoadDemoHandler replaces the current network with the demo fixture, in
// memory and in the database.
func LoadDemoHandler(c echo.Context) error {
	type loadDemoResponse struct {
		Message        string `json:"message"`
		TotalSources   int    `json:"total_sources"`
		TotalCitations int    `json:"total_citations"`
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	if err := app.Storage.DeleteAll(ctx); err != nil {
		logger.Error("Failed to clear persisted network", "err", err)
		return c.JSON(http.StatusInternalServerError, loadDemoResponse{
			Message: "Internal server error",
		})
	}

	citations := network.PopulateDemo(app.Net)

	for _, src := range app.Net.SourcesList(network.SortByName) {
		err := app.Storage.SaveSource(ctx, store.SourceRecord{
			Name:   src.Name,
			URL:    src.Domain,
			Bias:   src.Bias,
			Active: true,
		})
		if err != nil {
			logger.Error("Failed to persist demo source", "source", src.Name, "err", err)
			return c.JSON(http.StatusInternalServerError, loadDemoResponse{
				Message: "Internal server error",
			})
		}
	}
	if err := app.Storage.SaveCitations(ctx, citations); err != nil {
		logger.Error("Failed to persist demo citations", "err", err)
		return c.JSON(http.StatusInternalServerError, loadDemoResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, loadDemoResponse{
		Message:        "Demo network loaded",
		TotalSources:   app.Net.TotalSources(),
		TotalCitations: app.Net.TotalCitations(),
	})
}
