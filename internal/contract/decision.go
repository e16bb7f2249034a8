package contract

import (
	"encoding/json"
	"fmt"
)

type Action string

const (
	ActionHold    Action = "hold"
	ActionExecute Action = "execute_trade"
)

// FinalDecision 是 Hold | Execute 的和类型。
// 线上格式沿用 action 字段作判别器，与历史调用方兼容。
type FinalDecision interface {
	Action() Action
	// Why 返回人类可读的决策依据。
	Why() string
}

type Hold struct {
	Reason string `json:"reason"`
}

func (Hold) Action() Action { return ActionHold }
func (h Hold) Why() string  { return h.Reason }

func (h Hold) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Action Action `json:"action"`
		Reason string `json:"reason"`
	}{ActionHold, h.Reason})
}

type Execute struct {
	Asset     string    `json:"asset"`
	Side      Side      `json:"side"`
	TradeType TradeType `json:"trade_type"`
	AmountUSD float64   `json:"amount_usd"`
	Reason    string    `json:"reason"`
}

func (Execute) Action() Action { return ActionExecute }
func (e Execute) Why() string  { return e.Reason }

func (e Execute) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Action    Action    `json:"action"`
		Asset     string    `json:"asset"`
		Side      Side      `json:"side"`
		TradeType TradeType `json:"trade_type"`
		AmountUSD float64   `json:"amount_usd"`
		Reason    string    `json:"reason"`
	}{ActionExecute, e.Asset, e.Side, e.TradeType, e.AmountUSD, e.Reason})
}

// UnmarshalFinalDecision 按 action 判别器还原决策。
func UnmarshalFinalDecision(data []byte) (FinalDecision, error) {
	var probe struct {
		Action Action `json:"action"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.Action {
	case ActionHold:
		var h Hold
		if err := json.Unmarshal(data, &h); err != nil {
			return nil, err
		}
		return h, nil
	case ActionExecute:
		var e Execute
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		if e.AmountUSD <= 0 {
			return nil, fmt.Errorf("execute decision requires positive amount_usd, got %v", e.AmountUSD)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown decision action: %q", probe.Action)
	}
}
