package config

import "strings"

// 默认值常量
const (
	defaultAppEnv      = "dev"
	defaultAppLogLevel = "info"
	defaultAppHTTPAddr = ":8080"

	defaultAgentTimeoutSeconds    = 20
	defaultDecisionTimeoutSeconds = 30
	defaultExchangeTimeoutSeconds = 10

	defaultRSIBuyBelow        = 35.0
	defaultRSISellAbove       = 65.0
	defaultSentimentBuyAbove  = 0.1
	defaultSentimentSellBelow = -0.1

	defaultDatabaseURL = "data/trades.db"
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Agents.applyDefaults()
	c.Decision.applyDefaults()
	c.Exchange.applyDefaults()
	c.Database.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if strings.TrimSpace(a.Env) == "" {
		a.Env = defaultAppEnv
	}
	if strings.TrimSpace(a.LogLevel) == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if strings.TrimSpace(a.HTTPAddr) == "" {
		a.HTTPAddr = defaultAppHTTPAddr
	}
}

func (a *AgentsConfig) applyDefaults() {
	if a.DefaultTimeoutSeconds <= 0 {
		a.DefaultTimeoutSeconds = defaultAgentTimeoutSeconds
	}
	if a.DecisionTimeoutSeconds <= 0 {
		a.DecisionTimeoutSeconds = defaultDecisionTimeoutSeconds
	}
}

func (d *DecisionConfig) applyDefaults() {
	if d.RSIBuyBelow <= 0 {
		d.RSIBuyBelow = defaultRSIBuyBelow
	}
	if d.RSISellAbove <= 0 {
		d.RSISellAbove = defaultRSISellAbove
	}
	if d.SentimentBuyAbove <= 0 {
		d.SentimentBuyAbove = defaultSentimentBuyAbove
	}
	if d.SentimentSellBelow >= 0 {
		d.SentimentSellBelow = defaultSentimentSellBelow
	}
}

func (e *ExchangeConfig) applyDefaults() {
	if e.TimeoutSeconds <= 0 {
		e.TimeoutSeconds = defaultExchangeTimeoutSeconds
	}
}

func (d *DatabaseConfig) applyDefaults() {
	if strings.TrimSpace(d.URL) == "" {
		d.URL = defaultDatabaseURL
	}
}
