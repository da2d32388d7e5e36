package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/paperdesk/market"
	"github.com/rustyeddy/paperdesk/paper"
	"github.com/rustyeddy/paperdesk/portfolio"
	"github.com/rustyeddy/paperdesk/signals"
	"github.com/rustyeddy/paperdesk/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	assert.NoError(t, st.EnsureAccount(store.DefaultAccountID, paper.DefaultStartingBalance))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(
		paper.NewEngine(st, store.DefaultAccountID, logger),
		portfolio.NewService(st, logger),
		signals.NewDetector(st, signals.DefaultConfig(), logger),
		st, nil, logger,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func seedClose(t *testing.T, st *store.Store, symbol string, close float64) {
	t.Helper()
	assert.NoError(t, st.UpsertBar(market.Bar{
		Symbol: symbol,
		Date:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Open:   close, High: close, Low: close, Close: close, AdjClose: close,
		Volume: 1000, Source: "test",
	}))
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	assert.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	assert.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestTradeLifecycle(t *testing.T) {
	t.Parallel()

	ts, st := newTestServer(t)
	seedClose(t, st, "AAPL", 100)

	resp := postJSON(t, ts.URL+"/api/portfolio/trade", map[string]any{
		"symbol": "aapl", "quantity": 10, "order_type": "BUY",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var buy paper.TradeResult
	decode(t, resp, &buy)
	assert.Equal(t, "BUY", buy.Action)
	assert.Equal(t, "AAPL", buy.Symbol)
	assert.Equal(t, 9000.0, buy.BalanceAfter)

	seedClose(t, st, "AAPL", 110)
	resp = postJSON(t, ts.URL+"/api/portfolio/trade", map[string]any{
		"symbol": "AAPL", "quantity": 10, "order_type": "SELL",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sell paper.TradeResult
	decode(t, resp, &sell)
	assert.InDelta(t, 100.0, sell.RealizedPL, 1e-9)
	assert.InDelta(t, 10100.0, sell.BalanceAfter, 1e-9)
}

func TestTradeErrorStatuses(t *testing.T) {
	t.Parallel()

	ts, st := newTestServer(t)
	seedClose(t, st, "AAPL", 100)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"bad action", map[string]any{"symbol": "AAPL", "quantity": 1, "order_type": "HOLD"}, http.StatusBadRequest},
		{"fractional", map[string]any{"symbol": "AAPL", "quantity": 1.5, "order_type": "BUY"}, http.StatusBadRequest},
		{"no price data", map[string]any{"symbol": "NOPE", "quantity": 1, "order_type": "BUY"}, http.StatusNotFound},
		{"insufficient funds", map[string]any{"symbol": "AAPL", "quantity": 1000, "order_type": "BUY"}, http.StatusUnprocessableEntity},
		{"no position", map[string]any{"symbol": "AAPL", "quantity": 1, "order_type": "SELL"}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/portfolio/trade", tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestOversellReturns422(t *testing.T) {
	t.Parallel()

	ts, st := newTestServer(t)
	seedClose(t, st, "AAPL", 100)

	resp := postJSON(t, ts.URL+"/api/portfolio/trade", map[string]any{
		"symbol": "AAPL", "quantity": 5, "order_type": "BUY",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/portfolio/trade", map[string]any{
		"symbol": "AAPL", "quantity": 6, "order_type": "SELL",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPortfolioEndpoints(t *testing.T) {
	t.Parallel()

	ts, st := newTestServer(t)
	seedClose(t, st, "AAPL", 120)

	// Empty portfolio is a valid zero-total response.
	resp, err := http.Get(ts.URL + "/api/portfolio")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var v portfolio.Valuation
	decode(t, resp, &v)
	assert.Equal(t, 0, v.NumPositions)

	resp = postJSON(t, ts.URL+"/api/portfolio/positions", map[string]any{
		"symbol": "aapl", "quantity": 10, "price": 100,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/portfolio/positions/AAPL")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var pv portfolio.PositionValue
	decode(t, resp, &pv)
	assert.Equal(t, 120.0, pv.CurrentPrice)
	assert.InDelta(t, 200.0, pv.UnrealizedPL, 1e-9)

	resp, err = http.Get(ts.URL + "/api/portfolio/positions/NOPE")
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/portfolio/positions/AAPL?quantity=10", nil)
	assert.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var closed map[string]any
	decode(t, resp, &closed)
	assert.Equal(t, true, closed["closed"])
}

func TestPerformanceAndReset(t *testing.T) {
	t.Parallel()

	ts, st := newTestServer(t)
	seedClose(t, st, "AAPL", 100)

	resp := postJSON(t, ts.URL+"/api/portfolio/trade", map[string]any{
		"symbol": "AAPL", "quantity": 10, "order_type": "BUY",
	})
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/portfolio/performance")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var perf paper.PerformanceSnapshot
	decode(t, resp, &perf)
	assert.Equal(t, 9000.0, perf.CashBalance)
	assert.Equal(t, 10000.0, perf.TotalValue)

	resp = postJSON(t, ts.URL+"/api/portfolio/reset", map[string]any{
		"starting_balance": 25000,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/portfolio/trades")
	assert.NoError(t, err)
	var hist map[string]any
	decode(t, resp, &hist)
	assert.Equal(t, 0.0, hist["count"])
}

func TestWatchlistEndpoints(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/portfolio/watchlist", map[string]any{
		"symbol": "nvda", "notes": "earnings",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/portfolio/watchlist", map[string]any{"symbol": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/portfolio/watchlist")
	assert.NoError(t, err)
	var list map[string]any
	decode(t, resp, &list)
	assert.Equal(t, 1.0, list["count"])

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/portfolio/watchlist/NVDA", nil)
	assert.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignalsEndpoint(t *testing.T) {
	t.Parallel()

	ts, st := newTestServer(t)

	// No data yields an empty scan, not an error.
	resp, err := http.Get(ts.URL + "/api/analysis/signals/AAPL")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, 0.0, body["count"])

	// Strictly rising closes trip the RSI overbought rule.
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		c := 100 + float64(i)
		assert.NoError(t, st.UpsertBar(market.Bar{
			Symbol: "AAPL", Date: base.AddDate(0, 0, i),
			Open: c, High: c, Low: c, Close: c, AdjClose: c,
			Volume: 1000, Source: "test",
		}))
	}

	resp, err = http.Get(ts.URL + "/api/analysis/signals/AAPL?save=true")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &body)
	assert.Greater(t, body["count"], 0.0)

	recs, err := st.SignalHistory("AAPL", 10)
	assert.NoError(t, err)
	assert.NotEmpty(t, recs)
}

func TestMarketBarsEndpoints(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/market/bars", map[string]any{
		"symbol": "aapl", "date": "2024-01-02",
		"open": 184.0, "high": 186.0, "low": 183.5, "close": 185.6,
		"adjusted_close": 185.6, "volume": 50000000,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/market/bars", map[string]any{
		"symbol": "AAPL", "date": "01/02/2024", "close": 185.6,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/market/bars/AAPL?days=10")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Symbol string       `json:"symbol"`
		Count  int          `json:"count"`
		Bars   []market.Bar `json:"bars"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, 185.6, body.Bars[0].Close)
	assert.Equal(t, "api", body.Bars[0].Source)
}
