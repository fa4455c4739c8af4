package middleware

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/openmediawatch/backend/internal/store"
	"github.com/openmediawatch/backend/pkg/network"
)

type App struct {
	DBConn    *pgxpool.Pool
	Queue     *amqp091.Channel
	Storage   *store.CitationStorage
	Net       *network.Network
	Extractor *network.Extractor
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
