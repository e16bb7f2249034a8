package binance

import (
	"time"
)

type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool

	HTTPTimeout time.Duration

	// BreakerThreshold/BreakerCooldown 控制 disabled 状态的进入与探测。
	BreakerThreshold int
	BreakerCooldown  time.Duration

	// RequestsPerSecond 对交易所 REST 接口的限速。
	RequestsPerSecond float64
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.HTTPTimeout <= 0 {
		out.HTTPTimeout = 10 * time.Second
	}
	if out.BreakerThreshold <= 0 {
		out.BreakerThreshold = 3
	}
	if out.BreakerCooldown <= 0 {
		out.BreakerCooldown = 30 * time.Second
	}
	if out.RequestsPerSecond <= 0 {
		out.RequestsPerSecond = 10
	}
	return out
}
