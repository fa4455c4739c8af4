package routes

import (
	"net/http"

	"github.com/openmediawatch/backend/internal/server/middleware"
	"github.com/openmediawatch/backend/pkg/common"
	"github.com/openmediawatch/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// AddCitationHandler records a single citation directly, bypassing article
// extraction. Unknown endpoints are registered with an unknown bias.
func AddCitationHandler(c echo.Context) error {
	type addCitationBody struct {
		FromSource string `json:"from_source" validate:"required"`
		ToSource   string `json:"to_source" validate:"required"`
		ArticleID  int64  `json:"from_article_id"`
		ToURL      string `json:"to_url"`
		Context    string `json:"context"`
		Kind       string `json:"citation_type" validate:"omitempty,oneof=hyperlink mention reference"`
	}

	type addCitationResponse struct {
		Message  string           `json:"message"`
		Citation *common.Citation `json:"citation,omitempty"`
	}

	data := new(addCitationBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, addCitationResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, addCitationResponse{
			Message: "Invalid request body",
		})
	}

	kind := common.CitationKind(data.Kind)
	if kind == "" {
		kind = common.CitationHyperlink
	}

	app := c.(*middleware.AppContext).App
	citation, err := app.Net.AddCitation(common.Citation{
		FromSource: data.FromSource,
		ToSource:   data.ToSource,
		ArticleID:  data.ArticleID,
		ToURL:      data.ToURL,
		Context:    data.Context,
		Kind:       kind,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, addCitationResponse{
			Message: err.Error(),
		})
	}

	if err := app.Storage.SaveCitation(c.Request().Context(), citation); err != nil {
		logger.Error("Failed to persist citation", "id", citation.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, addCitationResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusCreated, addCitationResponse{
		Message:  "Citation recorded",
		Citation: &citation,
	})
}
