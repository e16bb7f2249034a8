// Package decision 实现 CEO 决策引擎：纯过滤阶段 + 审批阶段。
package decision

import (
	"fmt"

	"saka/internal/contract"
)

// Thresholds 汇合信号的调节旋钮。
type Thresholds struct {
	RSIBuyBelow        float64
	RSISellAbove       float64
	SentimentBuyAbove  float64
	SentimentSellBelow float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		RSIBuyBelow:        35,
		RSISellAbove:       65,
		SentimentBuyAbove:  0.1,
		SentimentSellBelow: -0.1,
	}
}

// Filter 是决策的纯过滤阶段：风险否决 → 宏观否决 → 汇合信号。
// 返回 Hold 决策，或一份待审批的交易提案（二者恰有其一非空）。
// 无 I/O，无副作用，相同输入必得相同输出。
func Filter(in contract.ConsolidatedInput, th Thresholds) (contract.FinalDecision, *contract.TradeProposal) {
	if !in.Risk.CanTrade {
		return contract.Hold{Reason: "VETO (risk): " + in.Risk.Reason}, nil
	}
	if in.Macro.Impact == contract.MacroImpactHigh {
		return contract.Hold{Reason: "VETO (macro): " + in.Macro.Summary}, nil
	}

	buySignal := in.Technical.RSI < th.RSIBuyBelow &&
		in.Technical.IsBullishCrossover &&
		in.Sentiment.SentimentScore > th.SentimentBuyAbove
	sellSignal := in.Technical.RSI > th.RSISellAbove &&
		in.Technical.IsBearishCrossover &&
		in.Sentiment.SentimentScore < th.SentimentSellBelow

	var side contract.Side
	switch {
	case buySignal:
		side = contract.SideBuy
	case sellSignal:
		side = contract.SideSell
	default:
		return contract.Hold{Reason: "no confluence between technical and sentiment signals"}, nil
	}

	crossover := "bullish"
	if side == contract.SideSell {
		crossover = "bearish"
	}
	proposal := &contract.TradeProposal{
		Asset:      in.Asset,
		Side:       side,
		TradeType:  contract.TradeTypeMarket,
		EntryPrice: in.CurrentPrice,
		Reasoning: fmt.Sprintf("confluence %s: rsi=%.2f, %s MACD crossover, sentiment=%.2f",
			side, in.Technical.RSI, crossover, in.Sentiment.SentimentScore),
	}
	return nil, proposal
}
