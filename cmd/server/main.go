package main

import (
	"github.com/openmediawatch/backend/internal/server"
	"github.com/openmediawatch/backend/internal/util"
	"github.com/openmediawatch/backend/pkg/logger"
	"github.com/openmediawatch/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
