package config

import "time"

// Config 是进程级不可变配置，启动时读取一次。
type Config struct {
	App      AppConfig      `toml:"app"`
	Agents   AgentsConfig   `toml:"agents"`
	Decision DecisionConfig `toml:"decision"`
	Exchange ExchangeConfig `toml:"exchange"`
	Database DatabaseConfig `toml:"database"`
	Notify   NotifyConfig   `toml:"notify"`
}

type AppConfig struct {
	Env            string `toml:"env"`
	LogLevel       string `toml:"log_level"`
	HTTPAddr       string `toml:"http_addr"`
	LogPath        string `toml:"log_path"`
	InternalAPIKey string `toml:"internal_api_key"`
}

// AgentsConfig 描述各协作方地址与调用超时。
type AgentsConfig struct {
	SentinelURL string `toml:"sentinel_url"` // 风险
	CronosURL   string `toml:"cronos_url"`   // 技术
	OrionURL    string `toml:"orion_url"`    // 宏观
	AthenaURL   string `toml:"athena_url"`   // 情绪
	PolarisURL  string `toml:"polaris_url"`  // 顾问
	GaiaURL     string `toml:"gaia_url"`     // 仓位

	DefaultTimeoutSeconds  int `toml:"default_timeout_seconds"`
	DecisionTimeoutSeconds int `toml:"decision_timeout_seconds"`
}

func (a AgentsConfig) DefaultTimeout() time.Duration {
	return time.Duration(a.DefaultTimeoutSeconds) * time.Second
}

func (a AgentsConfig) DecisionTimeout() time.Duration {
	return time.Duration(a.DecisionTimeoutSeconds) * time.Second
}

// DecisionConfig 汇合信号的全部调节旋钮。
type DecisionConfig struct {
	RSIBuyBelow        float64 `toml:"rsi_buy_below"`
	RSISellAbove       float64 `toml:"rsi_sell_above"`
	SentimentBuyAbove  float64 `toml:"sentiment_buy_above"`
	SentimentSellBelow float64 `toml:"sentiment_sell_below"`
}

type ExchangeConfig struct {
	APIKey         string `toml:"api_key"`
	APISecret      string `toml:"api_secret"`
	Testnet        bool   `toml:"testnet"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

func (e ExchangeConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	// URL 为 sqlite 数据库文件路径（DATABASE_URL）。
	URL string `toml:"url"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}
