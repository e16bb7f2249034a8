package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Symbol{Base: "BTC", Quote: "USD"}, Parse("BTC/USD"))
	assert.Equal(t, Symbol{Base: "ETH", Quote: "USDT"}, Parse("ethusdt"))
	assert.Equal(t, Symbol{Base: "SOL", Quote: "BTC"}, Parse("SOLBTC"))
	assert.Equal(t, Symbol{}, Parse(""))
}

func TestBinanceToExchange(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BTC/USD", "BTCUSDT"},
		{"btc/usd", "BTCUSDT"},
		{"ETH/USDT", "ETHUSDT"},
		{"SOL/USDC", "SOLUSDC"},
		{"SOL/BTC", "SOLBTC"},
		{"BTCUSD", "BTCUSDT"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Binance.ToExchange(tc.in), "input %q", tc.in)
	}
}

func TestBinanceFromExchange(t *testing.T) {
	assert.Equal(t, "BTC/USDT", Binance.FromExchange("BTCUSDT"))
	assert.Equal(t, "", Binance.FromExchange("???"))
}
