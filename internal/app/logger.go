package app

import (
	"go-nexushr/internal/shared/config"

	"go.uber.org/zap"
)

// NewLogger returns a JSON production logger in production and a colored
// development logger elsewhere.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
