package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load 读取 YAML 配置文件（可选）并叠加环境变量，返回经过默认值填充
// 与校验的配置。环境变量优先于文件取值。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file failed (%s): %w", path, err)
		}
	}

	bindEnvKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.applyDefaults()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindEnvKeys 将环境变量绑定到配置键。命名沿用历史部署约定。
func bindEnvKeys(v *viper.Viper) {
	bindings := map[string]string{
		"app.env":              "ENV",
		"app.log_level":        "LOG_LEVEL",
		"app.http_addr":        "HTTP_ADDR",
		"app.log_path":         "LOG_PATH",
		"app.internal_api_key": "INTERNAL_API_KEY",

		"agents.sentinel_url":             "SENTINEL_URL",
		"agents.cronos_url":               "CRONOS_URL",
		"agents.orion_url":                "ORION_URL",
		"agents.athena_url":               "ATHENA_URL",
		"agents.polaris_url":              "POLARIS_URL",
		"agents.gaia_url":                 "GAIA_URL",
		"agents.default_timeout_seconds":  "DEFAULT_TIMEOUT",
		"agents.decision_timeout_seconds": "DECISION_TIMEOUT",

		"exchange.api_key":         "EXCHANGE_API_KEY",
		"exchange.api_secret":      "EXCHANGE_API_SECRET",
		"exchange.testnet":         "EXCHANGE_TESTNET",
		"exchange.timeout_seconds": "EXCHANGE_TIMEOUT",

		"database.url": "DATABASE_URL",

		"notify.telegram.enabled":   "NOTIFIER_ENABLED",
		"notify.telegram.bot_token": "NOTIFIER_BOT_TOKEN",
		"notify.telegram.chat_id":   "NOTIFIER_CHAT_ID",
	}
	for key, env := range bindings {
		// BindEnv 只在目标键未被文件显式设置为更高优先级时出错，这里忽略。
		_ = v.BindEnv(key, env)
	}
}
