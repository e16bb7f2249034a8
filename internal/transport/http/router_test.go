package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"saka/internal/cerrors"
	"saka/internal/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDecider struct {
	syncDecision contract.FinalDecision
	syncErr      error
}

func (s *stubDecider) DecideSync(ctx context.Context, req contract.AnalysisRequest) (contract.FinalDecision, error) {
	if err := req.Validate(); err != nil {
		return nil, cerrors.Wrap(cerrors.KindClientInput, "orchestrator.validate", err)
	}
	return s.syncDecision, s.syncErr
}

func (s *stubDecider) DecideAsync(ctx context.Context, req contract.AnalysisRequest) (contract.Ack, error) {
	if err := req.Validate(); err != nil {
		return contract.Ack{}, cerrors.Wrap(cerrors.KindClientInput, "orchestrator.validate", err)
	}
	return contract.Ack{Message: "decision cycle accepted", Asset: req.Asset}, nil
}

type stubTrades struct {
	receipts []contract.Receipt
}

func (s *stubTrades) Recent(ctx context.Context, limit int) ([]contract.Receipt, error) {
	if limit < len(s.receipts) {
		return s.receipts[:limit], nil
	}
	return s.receipts, nil
}

func newTestServer(t *testing.T, decider Decider) *Server {
	t.Helper()
	srv, err := NewServer(ServerConfig{
		Addr:    ":0",
		APIKey:  "test-key",
		Decider: decider,
		Trades:  &stubTrades{receipts: []contract.Receipt{{OrderID: "o1", Asset: "BTC/USD"}}},
	})
	require.NoError(t, err)
	return srv
}

func validBody(t *testing.T) string {
	t.Helper()
	prices := make([]float64, contract.WarmupPeriod)
	for i := range prices {
		prices[i] = 30000 + float64(i)
	}
	raw, err := json.Marshal(contract.AnalysisRequest{Asset: "BTC/USD", HistoricalPrices: prices})
	require.NoError(t, err)
	return string(raw)
}

func doRequest(srv *Server, method, path, body, apiKey string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(headerInternalAPIKey, apiKey)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthNeedsNoAuth(t *testing.T) {
	srv := newTestServer(t, &stubDecider{syncDecision: contract.Hold{Reason: "x"}})
	rec := doRequest(srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMissingOrWrongAPIKey(t *testing.T) {
	srv := newTestServer(t, &stubDecider{syncDecision: contract.Hold{Reason: "x"}})

	rec := doRequest(srv, http.MethodPost, "/trigger_decision_cycle_sync", validBody(t), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(srv, http.MethodPost, "/trigger_decision_cycle_sync", validBody(t), "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSyncEndpointReturnsDecision(t *testing.T) {
	srv := newTestServer(t, &stubDecider{syncDecision: contract.Hold{Reason: "no confluence"}})
	rec := doRequest(srv, http.MethodPost, "/trigger_decision_cycle_sync", validBody(t), "test-key")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "hold", payload["action"])
	assert.Equal(t, "no confluence", payload["reason"])
}

func TestSyncEndpointInsufficientData(t *testing.T) {
	srv := newTestServer(t, &stubDecider{syncDecision: contract.Hold{Reason: "x"}})
	body := `{"asset":"BTC/USD","historical_prices":[1,2,3]}`
	rec := doRequest(srv, http.MethodPost, "/trigger_decision_cycle_sync", body, "test-key")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncEndpointErrorMapping(t *testing.T) {
	cases := []struct {
		kind cerrors.Kind
		want int
	}{
		{cerrors.KindCollaboratorUnavailable, http.StatusBadGateway},
		{cerrors.KindCollaboratorContract, http.StatusBadGateway},
		{cerrors.KindExchangeUnavailable, http.StatusServiceUnavailable},
		{cerrors.KindTimeout, http.StatusGatewayTimeout},
		{cerrors.KindExchangeUnknown, http.StatusGatewayTimeout},
		{cerrors.KindPersistence, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			srv := newTestServer(t, &stubDecider{
				syncErr: cerrors.New(tc.kind, "test", "synthetic failure"),
			})
			rec := doRequest(srv, http.MethodPost, "/trigger_decision_cycle_sync", validBody(t), "test-key")
			assert.Equal(t, tc.want, rec.Code)

			var payload map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.Equal(t, tc.kind.String(), payload["kind"])
		})
	}
}

func TestAsyncEndpointAccepted(t *testing.T) {
	srv := newTestServer(t, &stubDecider{syncDecision: contract.Hold{Reason: "x"}})
	rec := doRequest(srv, http.MethodPost, "/trigger_decision_cycle", validBody(t), "test-key")
	require.Equal(t, http.StatusAccepted, rec.Code)

	var ack contract.Ack
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, "BTC/USD", ack.Asset)
	assert.NotEmpty(t, ack.Message)
}

func TestTradesEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubDecider{syncDecision: contract.Hold{Reason: "x"}})

	rec := doRequest(srv, http.MethodGet, "/trades", "", "test-key")
	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Count  int                `json:"count"`
		Trades []contract.Receipt `json:"trades"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Count)

	rec = doRequest(srv, http.MethodGet, "/trades", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedJSONBody(t *testing.T) {
	srv := newTestServer(t, &stubDecider{syncDecision: contract.Hold{Reason: "x"}})
	rec := doRequest(srv, http.MethodPost, "/trigger_decision_cycle_sync", "{not json", "test-key")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
