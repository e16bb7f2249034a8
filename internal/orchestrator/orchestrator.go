// Package orchestrator 驱动一次完整的决策周期：
// 并行扇出四路分析 → 聚合 → 决策引擎 → 执行落点 → 通知。
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"saka/internal/cerrors"
	"saka/internal/contract"
	"saka/internal/logger"

	"golang.org/x/sync/errgroup"
)

type RiskAnalyzer interface {
	Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.RiskReport, error)
}

type TechnicalAnalyzer interface {
	Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.TechnicalReport, error)
}

type MacroAnalyzer interface {
	Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.MacroReport, error)
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.SentimentReport, error)
}

// Analyzers 聚合四路分析客户端。
type Analyzers struct {
	Risk      RiskAnalyzer
	Technical TechnicalAnalyzer
	Macro     MacroAnalyzer
	Sentiment SentimentAnalyzer
}

type Engine interface {
	Decide(ctx context.Context, in contract.ConsolidatedInput) (contract.FinalDecision, error)
}

type Executor interface {
	Execute(ctx context.Context, dec contract.Execute) (contract.Receipt, error)
}

type Config struct {
	// DefaultTimeout 单路分析调用的超时。
	DefaultTimeout time.Duration
	// DecisionTimeout 决策引擎（含顾问与仓位调用）的超时。
	DecisionTimeout time.Duration
	// ExchangeTimeout 交易所调用的超时，计入同步端点总预算。
	ExchangeTimeout time.Duration
}

type Orchestrator struct {
	analyzers Analyzers
	engine    Engine
	sink      Executor
	dispatch  *Dispatcher
	cfg       Config
}

func New(analyzers Analyzers, engine Engine, sink Executor, dispatch *Dispatcher, cfg Config) *Orchestrator {
	return &Orchestrator{
		analyzers: analyzers,
		engine:    engine,
		sink:      sink,
		dispatch:  dispatch,
		cfg:       cfg,
	}
}

// cycleBudget 是一个周期允许的最大时长：分析 + 决策 + 交易所。
func (o *Orchestrator) cycleBudget() time.Duration {
	return o.cfg.DefaultTimeout + o.cfg.DecisionTimeout + o.cfg.ExchangeTimeout
}

// DecideSync 阻塞调用方直到决策产出，供需要确定性顺序的回测驱动使用。
func (o *Orchestrator) DecideSync(ctx context.Context, req contract.AnalysisRequest) (contract.FinalDecision, error) {
	if err := req.Validate(); err != nil {
		return nil, cerrors.Wrap(cerrors.KindClientInput, "orchestrator.validate", err)
	}
	ctx, cancel := context.WithTimeout(ctx, o.cycleBudget())
	defer cancel()
	return o.runCycle(ctx, req)
}

// DecideAsync 立即返回应答，周期在独立任务上继续。
// 实盘路径使用：调用方不能被阻塞，周期错误只进日志。
func (o *Orchestrator) DecideAsync(_ context.Context, req contract.AnalysisRequest) (contract.Ack, error) {
	if err := req.Validate(); err != nil {
		return contract.Ack{}, cerrors.Wrap(cerrors.KindClientInput, "orchestrator.validate", err)
	}
	go func() {
		// 内部期限依旧存在，避免周期泄漏。
		ctx, cancel := context.WithTimeout(context.Background(), o.cycleBudget())
		defer cancel()
		if _, err := o.runCycle(ctx, req); err != nil {
			logger.Errorf("async decision cycle failed for %s: %v", req.Asset, err)
		}
	}()
	return contract.Ack{
		Message: "decision cycle accepted",
		Asset:   req.Asset,
	}, nil
}

// runCycle 执行周期主体。四路分析 all-or-nothing：任一失败，
// errgroup 会取消其余兄弟调用并中止本周期。
func (o *Orchestrator) runCycle(ctx context.Context, req contract.AnalysisRequest) (contract.FinalDecision, error) {
	started := time.Now()

	var (
		risk      contract.RiskReport
		technical contract.TechnicalReport
		macro     contract.MacroReport
		sentiment contract.SentimentReport
	)
	group, fanCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(fanCtx, o.cfg.DefaultTimeout)
		defer cancel()
		var err error
		risk, err = o.analyzers.Risk.Analyze(callCtx, req)
		return err
	})
	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(fanCtx, o.cfg.DefaultTimeout)
		defer cancel()
		var err error
		technical, err = o.analyzers.Technical.Analyze(callCtx, req)
		return err
	})
	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(fanCtx, o.cfg.DefaultTimeout)
		defer cancel()
		var err error
		macro, err = o.analyzers.Macro.Analyze(callCtx, req)
		return err
	})
	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(fanCtx, o.cfg.DefaultTimeout)
		defer cancel()
		var err error
		sentiment, err = o.analyzers.Sentiment.Analyze(callCtx, req)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	in := contract.ConsolidatedInput{
		Asset:        req.Asset,
		CurrentPrice: req.CurrentPrice(),
		Risk:         risk,
		Technical:    technical,
		Macro:        macro,
		Sentiment:    sentiment,
	}

	decCtx, cancel := context.WithTimeout(ctx, o.cfg.DecisionTimeout)
	defer cancel()
	dec, err := o.engine.Decide(decCtx, in)
	if err != nil {
		return nil, err
	}

	if exec, ok := dec.(contract.Execute); ok {
		receipt, err := o.sink.Execute(ctx, exec)
		if err != nil {
			return nil, err
		}
		o.dispatch.Enqueue(executionReport(exec, receipt))
	} else {
		o.dispatch.Enqueue(holdReport(req.Asset, dec))
	}

	logger.Debugf("decision cycle for %s finished in %s (action=%s)",
		req.Asset, time.Since(started).Round(time.Millisecond), dec.Action())
	return dec, nil
}

func executionReport(exec contract.Execute, r contract.Receipt) string {
	return fmt.Sprintf(
		"Trade executed: %s %s\nAmount: $%s\nPrice: %s\nQuantity: %s\nOrder: %s (%s)\nReason: %s",
		exec.Side, exec.Asset,
		r.AmountUSD.StringFixed(2), r.ExecutedPrice.String(), r.ExecutedQuantity.String(),
		r.OrderID, r.Status, exec.Reason)
}

func holdReport(asset string, dec contract.FinalDecision) string {
	return fmt.Sprintf("Decision for %s: HOLD\nReason: %s", asset, dec.Why())
}
