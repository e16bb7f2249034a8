package app

import (
	"saka/internal/agents"
	"saka/internal/config"
	"saka/internal/decision"
	"saka/internal/gateway/binance"
	"saka/internal/gateway/notifier"
	"saka/internal/orchestrator"
	"saka/internal/sink"
	"saka/internal/store"
	httpapi "saka/internal/transport/http"
)

// provider 函数集合，供 wire 装配使用。

func provideStore(cfg *config.Config) (*store.Store, error) {
	return store.New(cfg.Database.URL)
}

func provideExchange(cfg *config.Config) *binance.Client {
	return binance.New(binance.Config{
		APIKey:      cfg.Exchange.APIKey,
		APISecret:   cfg.Exchange.APISecret,
		Testnet:     cfg.Exchange.Testnet,
		HTTPTimeout: cfg.Exchange.Timeout(),
	})
}

func provideNotifier(cfg *config.Config) notifier.TextNotifier {
	tg := cfg.Notify.Telegram
	return notifier.Resolve(tg.Enabled, tg.BotToken, tg.ChatID)
}

func provideDispatcher(n notifier.TextNotifier) *orchestrator.Dispatcher {
	return orchestrator.NewDispatcher(n, 64)
}

func agentOptions(cfg *config.Config, baseURL string) agents.Options {
	return agents.Options{
		BaseURL: baseURL,
		APIKey:  cfg.App.InternalAPIKey,
		Timeout: cfg.Agents.DefaultTimeout(),
	}
}

func provideAnalyzers(cfg *config.Config) orchestrator.Analyzers {
	return orchestrator.Analyzers{
		Risk:      agents.NewRiskClient(agentOptions(cfg, cfg.Agents.SentinelURL)),
		Technical: agents.NewTechnicalClient(agentOptions(cfg, cfg.Agents.CronosURL)),
		Macro:     agents.NewMacroClient(agentOptions(cfg, cfg.Agents.OrionURL)),
		Sentiment: agents.NewSentimentClient(agentOptions(cfg, cfg.Agents.AthenaURL)),
	}
}

func provideEngine(cfg *config.Config) *decision.Engine {
	advisor := agents.NewAdvisorClient(agentOptions(cfg, cfg.Agents.PolarisURL))
	sizer := agents.NewSizerClient(agentOptions(cfg, cfg.Agents.GaiaURL))
	return decision.NewEngine(advisor, sizer, decision.Thresholds{
		RSIBuyBelow:        cfg.Decision.RSIBuyBelow,
		RSISellAbove:       cfg.Decision.RSISellAbove,
		SentimentBuyAbove:  cfg.Decision.SentimentBuyAbove,
		SentimentSellBelow: cfg.Decision.SentimentSellBelow,
	})
}

func provideSink(ex *binance.Client, st *store.Store) *sink.Sink {
	return sink.New(ex, st)
}

func provideOrchestrator(cfg *config.Config, an orchestrator.Analyzers, engine *decision.Engine, sk *sink.Sink, dispatch *orchestrator.Dispatcher) *orchestrator.Orchestrator {
	return orchestrator.New(an, engine, sk, dispatch, orchestrator.Config{
		DefaultTimeout:  cfg.Agents.DefaultTimeout(),
		DecisionTimeout: cfg.Agents.DecisionTimeout(),
		ExchangeTimeout: cfg.Exchange.Timeout(),
	})
}

func provideServer(cfg *config.Config, orch *orchestrator.Orchestrator, st *store.Store) (*httpapi.Server, error) {
	return httpapi.NewServer(httpapi.ServerConfig{
		Addr:    cfg.App.HTTPAddr,
		APIKey:  cfg.App.InternalAPIKey,
		Decider: orch,
		Trades:  st,
	})
}
