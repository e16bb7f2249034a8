package decision

import (
	"context"
	"strings"

	"saka/internal/contract"
	"saka/internal/logger"
)

// Advisor 审查交易提案（Polaris）。
type Advisor interface {
	ReviewTrade(ctx context.Context, proposal contract.TradeProposal) (contract.Approval, error)
}

// Sizer 计算仓位大小（Gaia）。
type Sizer interface {
	CalculatePositionSize(ctx context.Context, req contract.SizingRequest) (contract.Sizing, error)
}

// Engine 按 否决 → 汇合 → 审批 → 仓位 的层级产出最终决策。
// 过滤阶段不通过时不会接触任何协作方。
type Engine struct {
	advisor Advisor
	sizer   Sizer
	th      Thresholds
}

func NewEngine(advisor Advisor, sizer Sizer, th Thresholds) *Engine {
	return &Engine{advisor: advisor, sizer: sizer, th: th}
}

func (e *Engine) Decide(ctx context.Context, in contract.ConsolidatedInput) (contract.FinalDecision, error) {
	hold, proposal := Filter(in, e.th)
	if hold != nil {
		logger.Infof("decision %s: hold (%s)", in.Asset, hold.Why())
		return hold, nil
	}

	approval, err := e.advisor.ReviewTrade(ctx, *proposal)
	if err != nil {
		return nil, err
	}
	if !approval.DecisionApproved {
		logger.Infof("decision %s: advisor rejected proposal (%s)", in.Asset, approval.Remarks)
		return contract.Hold{Reason: approval.Remarks}, nil
	}

	sizing, err := e.sizer.CalculatePositionSize(ctx, contract.SizingRequest{
		Asset:      proposal.Asset,
		EntryPrice: proposal.EntryPrice,
	})
	if err != nil {
		return nil, err
	}

	reason := joinReasons(proposal.Reasoning, approval.Remarks, sizing.Reasoning)
	logger.Infof("decision %s: execute %s amount_usd=%.2f", in.Asset, proposal.Side, sizing.AmountUSD)
	return contract.Execute{
		Asset:     proposal.Asset,
		Side:      proposal.Side,
		TradeType: proposal.TradeType,
		AmountUSD: sizing.AmountUSD,
		Reason:    reason,
	}, nil
}

func joinReasons(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "; ")
}
