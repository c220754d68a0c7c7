package main

import (
	"github.com/frido22/ai-paper-agent/internal/server"
	"github.com/frido22/ai-paper-agent/internal/util"
	"github.com/frido22/ai-paper-agent/pkg/logger"
	"github.com/frido22/ai-paper-agent/pkg/logger/console"
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
