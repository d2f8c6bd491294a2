package main

import (
	"os"
	"time"

	"go-nexushr/internal/app"
	"go-nexushr/internal/bootstrap"
	"go-nexushr/internal/shared/apperror"
	"go-nexushr/internal/shared/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	// build dependency + routes
	a, err := app.BuildApp(cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer a.Close()

	err = bootstrap.StartHTTPServer(
		a.Router,
		bootstrap.ServerConfig{
			Port:        cfg.App.Port,
			ReadTimeout: 5 * time.Second,
			// SSE streams and PDF exports outlive a short write timeout.
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		a.Audit,
		a.StopStreams,
	)
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
