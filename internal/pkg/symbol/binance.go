package symbol

import "strings"

type BinanceConverter struct{}

// ToExchange 将内部资产名转为交易所交易对：去斜杠、大写，
// 裸 USD 计价提升为 USDT（BTC/USD → BTCUSDT）。已有稳定币后缀保持不变。
func (BinanceConverter) ToExchange(internal string) string {
	sym := Parse(internal)
	if sym.Base == "" || sym.Quote == "" {
		return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(internal)), "/", "")
	}
	quote := sym.Quote
	if quote == "USD" {
		quote = "USDT"
	}
	return sym.Base + quote
}

func (BinanceConverter) FromExchange(raw string) string {
	return Parse(raw).Internal()
}

var Binance = BinanceConverter{}
