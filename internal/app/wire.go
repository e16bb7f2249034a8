//go:build wireinject
// +build wireinject

package app

import (
	"saka/internal/config"

	"github.com/google/wire"
)

func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(
		provideStore,
		provideExchange,
		provideNotifier,
		provideDispatcher,
		provideAnalyzers,
		provideEngine,
		provideSink,
		provideOrchestrator,
		provideServer,
		newApp,
	)
	return nil, nil
}
