package fx

import (
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/config"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/logger"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/server"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// backend client
	fx.Provide(api.NewClient),
	// http
	fx.Provide(server.NewServer),
)
