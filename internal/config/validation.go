package config

import (
	"fmt"
	"strings"
)

// validate 对配置进行启动期校验，失败即拒绝提供服务。
func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.Agents.validate(); err != nil {
		return err
	}
	if err := c.Decision.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AppConfig) validate() error {
	if strings.TrimSpace(a.InternalAPIKey) == "" {
		return fmt.Errorf("app.internal_api_key (INTERNAL_API_KEY) is required")
	}
	return nil
}

func (a *AgentsConfig) validate() error {
	required := map[string]string{
		"agents.sentinel_url (SENTINEL_URL)": a.SentinelURL,
		"agents.cronos_url (CRONOS_URL)":     a.CronosURL,
		"agents.orion_url (ORION_URL)":       a.OrionURL,
		"agents.athena_url (ATHENA_URL)":     a.AthenaURL,
		"agents.polaris_url (POLARIS_URL)":   a.PolarisURL,
		"agents.gaia_url (GAIA_URL)":         a.GaiaURL,
	}
	for name, val := range required {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if a.DefaultTimeoutSeconds <= 0 {
		return fmt.Errorf("agents.default_timeout_seconds must be > 0")
	}
	if a.DecisionTimeoutSeconds <= 0 {
		return fmt.Errorf("agents.decision_timeout_seconds must be > 0")
	}
	return nil
}

func (d *DecisionConfig) validate() error {
	if d.RSIBuyBelow >= d.RSISellAbove {
		return fmt.Errorf("decision.rsi_buy_below must be < decision.rsi_sell_above")
	}
	if d.SentimentBuyAbove <= d.SentimentSellBelow {
		return fmt.Errorf("decision.sentiment_buy_above must be > decision.sentiment_sell_below")
	}
	return nil
}
