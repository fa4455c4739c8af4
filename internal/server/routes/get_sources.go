package routes

import (
	"net/http"

	"github.com/openmediawatch/backend/internal/server/middleware"
	"github.com/openmediawatch/backend/pkg/common"

	"github.com/labstack/echo/v4"
)

// GetSourcesHandler lists all sources with their derived scores, ordered by
// the sort_by query parameter.
func GetSourcesHandler(c echo.Context) error {
	type getSourcesResponse struct {
		Sources []common.Source `json:"sources"`
		Total   int             `json:"total"`
	}

	sortBy := c.QueryParam("sort_by")

	app := c.(*middleware.AppContext).App
	sources := app.Net.SourcesList(sortBy)

	return c.JSON(http.StatusOK, getSourcesResponse{
		Sources: sources,
		Total:   len(sources),
	})
}
