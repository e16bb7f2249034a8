// Package contract 定义编排器与各协作方之间的线上数据模型。
// 所有结构按周期创建、周期结束即丢弃；只有 Receipt 会被持久化。
package contract

import (
	"fmt"
	"strings"
)

// WarmupPeriod 技术指标所需的最小历史收盘价数量（如 14 日 RSI、26 日 MACD）。
const WarmupPeriod = 30

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

type TradeType string

const (
	TradeTypeMarket TradeType = "market"
	TradeTypeLimit  TradeType = "limit"
)

type MacroImpact string

const (
	MacroImpactHigh   MacroImpact = "HIGH"
	MacroImpactMedium MacroImpact = "MEDIUM"
	MacroImpactLow    MacroImpact = "LOW"
)

type SentimentSignal string

const (
	SentimentSignalBuy  SentimentSignal = "BUY"
	SentimentSignalSell SentimentSignal = "SELL"
	SentimentSignalHold SentimentSignal = "HOLD"
)

// AnalysisRequest 是一次决策周期的入口请求。
// historical_prices 按时间从旧到新排列，current_price 取最后一个元素。
type AnalysisRequest struct {
	Asset            string    `json:"asset"`
	HistoricalPrices []float64 `json:"historical_prices"`
}

func (r AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.Asset) == "" {
		return fmt.Errorf("asset is required")
	}
	if len(r.HistoricalPrices) < WarmupPeriod {
		return fmt.Errorf("insufficient history: need at least %d closes, got %d",
			WarmupPeriod, len(r.HistoricalPrices))
	}
	for i, p := range r.HistoricalPrices {
		if p <= 0 {
			return fmt.Errorf("historical_prices[%d] must be positive, got %v", i, p)
		}
	}
	return nil
}

// CurrentPrice 返回最新收盘价。调用前必须通过 Validate。
func (r AnalysisRequest) CurrentPrice() float64 {
	if len(r.HistoricalPrices) == 0 {
		return 0
	}
	return r.HistoricalPrices[len(r.HistoricalPrices)-1]
}

// RiskReport 风险分析结果。can_trade=false 是硬性否决信号。
type RiskReport struct {
	Asset      string  `json:"asset"`
	RiskLevel  float64 `json:"risk_level"`
	Volatility float64 `json:"volatility"`
	CanTrade   bool    `json:"can_trade"`
	Reason     string  `json:"reason"`
}

type TechnicalReport struct {
	Asset              string  `json:"asset"`
	RSI                float64 `json:"rsi"`
	MACDLine           float64 `json:"macd_line"`
	SignalLine         float64 `json:"signal_line"`
	Histogram          float64 `json:"histogram"`
	IsBullishCrossover bool    `json:"is_bullish_crossover"`
	IsBearishCrossover bool    `json:"is_bearish_crossover"`
}

type MacroReport struct {
	Asset     string      `json:"asset"`
	Impact    MacroImpact `json:"impact"`
	EventName string      `json:"event_name"`
	Summary   string      `json:"summary"`
}

type SentimentReport struct {
	Asset          string          `json:"asset"`
	SentimentScore float64         `json:"sentiment_score"`
	Confidence     float64         `json:"confidence"`
	Signal         SentimentSignal `json:"signal"`
}

// ConsolidatedInput 聚合四份报告，作为决策引擎的唯一输入。
type ConsolidatedInput struct {
	Asset        string          `json:"asset"`
	CurrentPrice float64         `json:"current_price"`
	Risk         RiskReport      `json:"risk"`
	Technical    TechnicalReport `json:"technical"`
	Macro        MacroReport     `json:"macro"`
	Sentiment    SentimentReport `json:"sentiment"`
}

// TradeProposal 过滤阶段产生的交易提案，提交顾问审查。
type TradeProposal struct {
	Asset      string    `json:"asset"`
	Side       Side      `json:"side"`
	TradeType  TradeType `json:"trade_type"`
	EntryPrice float64   `json:"entry_price"`
	Reasoning  string    `json:"reasoning"`
}

type Approval struct {
	DecisionApproved bool   `json:"decision_approved"`
	Remarks          string `json:"remarks"`
}

type SizingRequest struct {
	Asset      string  `json:"asset"`
	EntryPrice float64 `json:"entry_price"`
}

type Sizing struct {
	Asset     string  `json:"asset"`
	AmountUSD float64 `json:"amount_usd"`
	Reasoning string  `json:"reasoning"`
}

// Ack 是异步端点的即时应答。
type Ack struct {
	Message string `json:"message"`
	Asset   string `json:"asset"`
}
