package routes

import (
	"net/http"

	"github.com/openmediawatch/backend/internal/queue"
	"github.com/openmediawatch/backend/internal/server/middleware"
	"github.com/openmediawatch/backend/internal/store"
	"github.com/openmediawatch/backend/pkg/logger"
	"github.com/openmediawatch/backend/pkg/network"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// BuildNetworkHandler registers a batch of sources and enqueues their
// articles for asynchronous citation extraction.
func BuildNetworkHandler(c echo.Context) error {
	type sourceInput struct {
		Name string `json:"name" validate:"required"`
		URL  string `json:"url"`
		Bias string `json:"political_bias"`
	}

	type articleInput struct {
		SourceName string `json:"source_name" validate:"required"`
		ArticleID  int64  `json:"article_id"`
		Content    string `json:"content" validate:"required"`
		IsHTML     bool   `json:"is_html"`
	}

	type buildNetworkBody struct {
		Sources  []sourceInput  `json:"sources" validate:"required,min=1,dive"`
		Articles []articleInput `json:"articles" validate:"dive"`
	}

	type buildNetworkResponse struct {
		Message        string `json:"message"`
		SourcesAdded   int    `json:"sources_added,omitempty"`
		ArticlesQueued int    `json:"articles_queued,omitempty"`
		TotalSources   int    `json:"total_sources,omitempty"`
		TotalCitations int    `json:"total_citations,omitempty"`
	}

	data := new(buildNetworkBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, buildNetworkResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, buildNetworkResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	for _, s := range data.Sources {
		bias := s.Bias
		if bias == "" {
			bias = network.BiasUnknown
		}
		app.Net.AddSource(s.Name, s.URL, bias)
		err := app.Storage.SaveSource(ctx, store.SourceRecord{
			Name:   s.Name,
			URL:    s.URL,
			Bias:   bias,
			Active: true,
		})
		if err != nil {
			logger.Error("Failed to persist source", "source", s.Name, "err", err)
			return c.JSON(http.StatusInternalServerError, buildNetworkResponse{
				Message: "Internal server error",
			})
		}
	}

	queued := 0
	for _, a := range data.Articles {
		err := queue.QueueArticle(app.Queue, queue.ArticleMessage{
			SourceName: a.SourceName,
			ArticleID:  a.ArticleID,
			Content:    a.Content,
			IsHTML:     a.IsHTML,
		})
		if err != nil {
			logger.Error("Failed to queue article", "source", a.SourceName, "err", err)
			return c.JSON(http.StatusInternalServerError, buildNetworkResponse{
				Message: "Internal server error",
			})
		}
		queued++
	}

	return c.JSON(http.StatusAccepted, buildNetworkResponse{
		Message:        "Network build started",
		SourcesAdded:   len(data.Sources),
		ArticlesQueued: queued,
		TotalSources:   app.Net.TotalSources(),
		TotalCitations: app.Net.TotalCitations(),
	})
}
