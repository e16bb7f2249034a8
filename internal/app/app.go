// Package app 是组合根：装配配置、存储、交易所、通知与编排器。
package app

import (
	"context"

	"saka/internal/config"
	"saka/internal/gateway/binance"
	"saka/internal/logger"
	"saka/internal/orchestrator"
	"saka/internal/store"
	httpapi "saka/internal/transport/http"
)

type App struct {
	cfg      *config.Config
	server   *httpapi.Server
	store    *store.Store
	exchange *binance.Client
	dispatch *orchestrator.Dispatcher
}

// NewApp 构建完整应用。装配顺序见 wire_gen.go。
func NewApp(cfg *config.Config) (*App, error) {
	return InitializeApp(cfg)
}

func newApp(cfg *config.Config, server *httpapi.Server, st *store.Store, ex *binance.Client, dispatch *orchestrator.Dispatcher) *App {
	return &App{cfg: cfg, server: server, store: st, exchange: ex, dispatch: dispatch}
}

// Run 启动通知 worker 与 HTTP 服务，阻塞直到 ctx 取消。
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.store.Close(); err != nil {
			logger.Warnf("closing receipt store failed: %v", err)
		}
	}()

	if err := a.exchange.Start(ctx); err != nil {
		return err
	}
	a.dispatch.Start(ctx)

	logger.Infof("saka orchestrator listening on %s (env=%s)", a.server.Addr(), a.cfg.App.Env)
	return a.server.Start(ctx)
}
