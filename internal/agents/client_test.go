package agents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saka/internal/cerrors"
	"saka/internal/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisRequest() contract.AnalysisRequest {
	prices := make([]float64, contract.WarmupPeriod)
	for i := range prices {
		prices[i] = 30000 + float64(i)
	}
	return contract.AnalysisRequest{Asset: "BTC/USD", HistoricalPrices: prices}
}

func TestRiskClientAnalyze(t *testing.T) {
	var gotKey, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(HeaderInternalAPIKey)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"asset":"BTC/USD","risk_level":0.2,"volatility":0.01,"can_trade":true,"reason":"calm"}`))
	}))
	defer server.Close()

	client := NewRiskClient(Options{BaseURL: server.URL, APIKey: "secret", Timeout: 5 * time.Second})
	report, err := client.Analyze(context.Background(), analysisRequest())
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey, "internal API key header must be forwarded")
	assert.Equal(t, "/analyze", gotPath)
	assert.True(t, report.CanTrade)
}

func TestAnalyzerPaths(t *testing.T) {
	paths := make(chan string, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/analyze_events":
			w.Write([]byte(`{"asset":"BTC/USD","impact":"LOW","event_name":"","summary":""}`))
		case "/analyze_sentiment":
			w.Write([]byte(`{"asset":"BTC/USD","sentiment_score":0.1,"confidence":0.5,"signal":"HOLD"}`))
		default:
			w.Write([]byte(`{"asset":"BTC/USD","rsi":50,"macd_line":0,"signal_line":0,"histogram":0,"is_bullish_crossover":false,"is_bearish_crossover":false}`))
		}
	}))
	defer server.Close()

	opts := Options{BaseURL: server.URL, APIKey: "secret", Timeout: 5 * time.Second}
	_, err := NewTechnicalClient(opts).Analyze(context.Background(), analysisRequest())
	require.NoError(t, err)
	_, err = NewMacroClient(opts).Analyze(context.Background(), analysisRequest())
	require.NoError(t, err)
	_, err = NewSentimentClient(opts).Analyze(context.Background(), analysisRequest())
	require.NoError(t, err)

	seen := map[string]bool{}
	close(paths)
	for p := range paths {
		seen[p] = true
	}
	assert.True(t, seen["/analyze"])
	assert.True(t, seen["/analyze_events"])
	assert.True(t, seen["/analyze_sentiment"])
}

func TestClientClassifiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRiskClient(Options{BaseURL: server.URL, APIKey: "secret", Timeout: 5 * time.Second})
	_, err := client.Analyze(context.Background(), analysisRequest())
	require.Error(t, err)
	assert.Equal(t, cerrors.KindCollaboratorUnavailable, cerrors.KindOf(err))
}

func TestClientClassifiesContractViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// risk_level 越界：必须中止而不是截断。
		w.Write([]byte(`{"asset":"BTC/USD","risk_level":2.0,"volatility":0.01,"can_trade":true}`))
	}))
	defer server.Close()

	client := NewRiskClient(Options{BaseURL: server.URL, APIKey: "secret", Timeout: 5 * time.Second})
	_, err := client.Analyze(context.Background(), analysisRequest())
	require.Error(t, err)
	assert.Equal(t, cerrors.KindCollaboratorContract, cerrors.KindOf(err))
}

func TestClientClassifiesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := NewSentimentClient(Options{BaseURL: server.URL, APIKey: "secret", Timeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Analyze(ctx, analysisRequest())
	require.Error(t, err)
	assert.Equal(t, cerrors.KindTimeout, cerrors.KindOf(err))
}

func TestAdvisorAndSizerClients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/review_trade":
			w.Write([]byte(`{"decision_approved":true,"remarks":"acceptable"}`))
		case "/calculate_position_size":
			w.Write([]byte(`{"asset":"BTC/USD","amount_usd":150.0,"reasoning":"1% of portfolio"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	opts := Options{BaseURL: server.URL, APIKey: "secret", Timeout: 5 * time.Second}
	approval, err := NewAdvisorClient(opts).ReviewTrade(context.Background(), contract.TradeProposal{
		Asset: "BTC/USD", Side: contract.SideBuy, TradeType: contract.TradeTypeMarket, EntryPrice: 30000,
	})
	require.NoError(t, err)
	assert.True(t, approval.DecisionApproved)

	sizing, err := NewSizerClient(opts).CalculatePositionSize(context.Background(), contract.SizingRequest{
		Asset: "BTC/USD", EntryPrice: 30000,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, sizing.AmountUSD)
}
