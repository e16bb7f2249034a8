package orchestrator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"saka/internal/cerrors"
	"saka/internal/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRisk struct {
	report contract.RiskReport
	err    error
	delay  time.Duration
	calls  atomic.Int32
	// cancelled 记录调用的 ctx 是否在返回前被取消（兄弟失败场景）。
	cancelled atomic.Bool
}

func (f *fakeRisk) Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.RiskReport, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			f.cancelled.Store(true)
			return contract.RiskReport{}, cerrors.Wrap(cerrors.KindTimeout, "analyzer.risk", ctx.Err())
		}
	}
	return f.report, f.err
}

type fakeTechnical struct {
	report contract.TechnicalReport
	err    error
	calls  atomic.Int32
}

func (f *fakeTechnical) Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.TechnicalReport, error) {
	f.calls.Add(1)
	return f.report, f.err
}

type fakeMacro struct {
	report contract.MacroReport
	err    error
}

func (f *fakeMacro) Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.MacroReport, error) {
	return f.report, f.err
}

type fakeSentiment struct {
	report contract.SentimentReport
	err    error
}

func (f *fakeSentiment) Analyze(ctx context.Context, req contract.AnalysisRequest) (contract.SentimentReport, error) {
	return f.report, f.err
}

type fakeEngine struct {
	got      contract.ConsolidatedInput
	decision contract.FinalDecision
	err      error
}

func (f *fakeEngine) Decide(ctx context.Context, in contract.ConsolidatedInput) (contract.FinalDecision, error) {
	f.got = in
	return f.decision, f.err
}

type fakeSink struct {
	calls   atomic.Int32
	receipt contract.Receipt
	err     error
}

func (f *fakeSink) Execute(ctx context.Context, dec contract.Execute) (contract.Receipt, error) {
	f.calls.Add(1)
	return f.receipt, f.err
}

type recordingNotifier struct {
	sent chan string
}

func (r *recordingNotifier) SendText(text string) error {
	r.sent <- text
	return nil
}

func testRequest() contract.AnalysisRequest {
	prices := make([]float64, contract.WarmupPeriod)
	for i := range prices {
		prices[i] = 30000 + float64(i)
	}
	prices[len(prices)-1] = 31234.5
	return contract.AnalysisRequest{Asset: "BTC/USD", HistoricalPrices: prices}
}

func buildOrchestrator(risk *fakeRisk, tech *fakeTechnical, engine *fakeEngine, sink *fakeSink) (*Orchestrator, *recordingNotifier) {
	n := &recordingNotifier{sent: make(chan string, 8)}
	dispatch := NewDispatcher(n, 8)
	orch := New(Analyzers{
		Risk:      risk,
		Technical: tech,
		Macro:     &fakeMacro{report: contract.MacroReport{Asset: "BTC/USD", Impact: contract.MacroImpactLow}},
		Sentiment: &fakeSentiment{report: contract.SentimentReport{Asset: "BTC/USD", Signal: contract.SentimentSignalHold}},
	}, engine, sink, dispatch, Config{
		DefaultTimeout:  500 * time.Millisecond,
		DecisionTimeout: 500 * time.Millisecond,
		ExchangeTimeout: 500 * time.Millisecond,
	})
	return orch, n
}

func TestDecideSyncValidatesRequest(t *testing.T) {
	orch, _ := buildOrchestrator(&fakeRisk{}, &fakeTechnical{}, &fakeEngine{}, &fakeSink{})

	t.Run("short history", func(t *testing.T) {
		req := testRequest()
		req.HistoricalPrices = req.HistoricalPrices[:contract.WarmupPeriod-1]
		_, err := orch.DecideSync(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, cerrors.KindClientInput, cerrors.KindOf(err))
	})

	t.Run("missing asset", func(t *testing.T) {
		req := testRequest()
		req.Asset = ""
		_, err := orch.DecideSync(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, cerrors.KindClientInput, cerrors.KindOf(err))
	})
}

func TestDecideSyncConsolidatesCurrentPrice(t *testing.T) {
	risk := &fakeRisk{report: contract.RiskReport{Asset: "BTC/USD", CanTrade: true}}
	tech := &fakeTechnical{report: contract.TechnicalReport{Asset: "BTC/USD", RSI: 50}}
	engine := &fakeEngine{decision: contract.Hold{Reason: "no confluence"}}
	sink := &fakeSink{}
	orch, _ := buildOrchestrator(risk, tech, engine, sink)

	dec, err := orch.DecideSync(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, contract.ActionHold, dec.Action())

	assert.Equal(t, 31234.5, engine.got.CurrentPrice, "current_price must equal the last close")
	assert.Equal(t, "BTC/USD", engine.got.Asset)
	assert.Equal(t, int32(0), sink.calls.Load(), "hold decision must not reach the sink")
}

func TestDecideSyncAllOrNothingFanOut(t *testing.T) {
	risk := &fakeRisk{report: contract.RiskReport{CanTrade: true}, delay: 2 * time.Second}
	tech := &fakeTechnical{err: cerrors.New(cerrors.KindCollaboratorUnavailable, "analyzer.technical", "connection refused")}
	engine := &fakeEngine{decision: contract.Hold{Reason: "unused"}}
	sink := &fakeSink{}
	orch, _ := buildOrchestrator(risk, tech, engine, sink)

	_, err := orch.DecideSync(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, cerrors.KindCollaboratorUnavailable, cerrors.KindOf(err))
	assert.Equal(t, int32(0), sink.calls.Load())
	assert.True(t, risk.cancelled.Load(), "sibling calls must be cancelled on first failure")
}

func TestDecideSyncAnalyzerTimeout(t *testing.T) {
	risk := &fakeRisk{report: contract.RiskReport{CanTrade: true}, delay: 5 * time.Second}
	tech := &fakeTechnical{report: contract.TechnicalReport{RSI: 50}}
	engine := &fakeEngine{decision: contract.Hold{Reason: "unused"}}
	sink := &fakeSink{}
	orch, _ := buildOrchestrator(risk, tech, engine, sink)

	start := time.Now()
	_, err := orch.DecideSync(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, cerrors.KindTimeout, cerrors.KindOf(err))
	assert.Less(t, time.Since(start), 3*time.Second, "timeout must be bounded by the per-call budget")
	assert.Equal(t, int32(0), sink.calls.Load(), "no receipt path on timeout")
}

func TestDecideSyncExecutePathNotifies(t *testing.T) {
	risk := &fakeRisk{report: contract.RiskReport{CanTrade: true}}
	tech := &fakeTechnical{report: contract.TechnicalReport{RSI: 25, IsBullishCrossover: true}}
	exec := contract.Execute{
		Asset:     "BTC/USD",
		Side:      contract.SideBuy,
		TradeType: contract.TradeTypeMarket,
		AmountUSD: 150,
		Reason:    "confluence buy; approved; sized",
	}
	engine := &fakeEngine{decision: exec}
	sink := &fakeSink{receipt: contract.Receipt{
		OrderID: "123",
		Status:  contract.ReceiptStatusSuccess,
		Asset:   "BTC/USD",
		Side:    contract.SideBuy,
	}}
	orch, notifierRec := buildOrchestrator(risk, tech, engine, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orch.dispatch.Start(ctx)

	dec, err := orch.DecideSync(ctx, testRequest())
	require.NoError(t, err)
	assert.Equal(t, contract.ActionExecute, dec.Action())
	assert.Equal(t, int32(1), sink.calls.Load())

	select {
	case body := <-notifierRec.sent:
		assert.Contains(t, body, "BTC/USD")
		assert.Contains(t, body, "123")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification to be dispatched")
	}
}

func TestDecideAsyncReturnsAckImmediately(t *testing.T) {
	risk := &fakeRisk{report: contract.RiskReport{CanTrade: true}, delay: 200 * time.Millisecond}
	tech := &fakeTechnical{report: contract.TechnicalReport{RSI: 50}}
	engine := &fakeEngine{decision: contract.Hold{Reason: "no confluence"}}
	sink := &fakeSink{}
	orch, _ := buildOrchestrator(risk, tech, engine, sink)

	start := time.Now()
	ack, err := orch.DecideAsync(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond, "async entry must not block on the cycle")
	assert.Equal(t, "BTC/USD", ack.Asset)
	assert.NotEmpty(t, ack.Message)

	// 周期仍然会完成。
	assert.Eventually(t, func() bool { return risk.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestDecideAsyncRejectsInvalidInput(t *testing.T) {
	orch, _ := buildOrchestrator(&fakeRisk{}, &fakeTechnical{}, &fakeEngine{}, &fakeSink{})
	req := testRequest()
	req.HistoricalPrices = nil
	_, err := orch.DecideAsync(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, cerrors.KindClientInput, cerrors.KindOf(err))
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	n := &recordingNotifier{sent: make(chan string, 1)}
	d := NewDispatcher(n, 1)
	// worker 未启动：第一条占满队列，第二条必须被丢弃而不是阻塞。
	done := make(chan struct{})
	go func() {
		d.Enqueue("first")
		d.Enqueue("second")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue must never block the caller")
	}
}
