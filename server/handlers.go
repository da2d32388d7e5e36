package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/paperdesk/market"
	"github.com/rustyeddy/paperdesk/paper"
	"github.com/rustyeddy/paperdesk/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- portfolio ---

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	v, err := s.portfolio.ValuePortfolio()
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	positions, err := s.portfolio.Positions()
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":     len(positions),
		"positions": positions,
	})
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))
	pv, err := s.portfolio.ValuePosition(symbol)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Errorf("no position found for %s", symbol))
		return
	}
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, pv)
}

type addPositionRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

func (s *Server) handleAddPosition(w http.ResponseWriter, r *http.Request) {
	var req addPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	pos, err := s.portfolio.AddShares(strings.ToUpper(req.Symbol), req.Quantity, req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, pos)
}

func (s *Server) handleRemoveShares(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	quantity, err := strconv.ParseFloat(r.URL.Query().Get("quantity"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("quantity query parameter: %w", err))
		return
	}

	pos, closed, err := s.portfolio.RemoveShares(symbol, quantity)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Errorf("no position found for %s", symbol))
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if closed {
		respondJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "closed": true})
		return
	}
	respondJSON(w, http.StatusOK, pos)
}

// --- trading ---

type tradeRequest struct {
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	OrderType string  `json:"order_type"`
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	result, err := s.engine.PlaceOrder(r.Context(), strings.ToUpper(req.Symbol), req.Quantity, req.OrderType)
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := s.engine.Performance()
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, perf)
}

type resetRequest struct {
	StartingBalance float64 `json:"starting_balance"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	req := resetRequest{StartingBalance: paper.DefaultStartingBalance}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return
		}
	}

	if err := s.engine.Reset(req.StartingBalance); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":           "reset",
		"starting_balance": req.StartingBalance,
	})
}

func (s *Server) handleTradeHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("limit query parameter: %w", err))
			return
		}
		limit = n
	}

	trades, err := s.engine.History(limit)
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":  len(trades),
		"trades": trades,
	})
}

// --- watchlist ---

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := s.portfolio.Watchlist()
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":     len(entries),
		"watchlist": entries,
	})
}

type watchRequest struct {
	Symbol string `json:"symbol"`
	Notes  string `json:"notes"`
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	var req watchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Symbol == "" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("symbol is required"))
		return
	}

	if err := s.portfolio.Watch(strings.ToUpper(req.Symbol), req.Notes); err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "watching", "symbol": strings.ToUpper(req.Symbol)})
}

func (s *Server) handleUnwatch(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))
	if err := s.portfolio.Unwatch(symbol); err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed", "symbol": symbol})
}

// --- analysis ---

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	found, err := s.detector.FindSignals(symbol)
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}

	if r.URL.Query().Get("save") == "true" {
		if err := s.detector.SaveSignals(symbol, found); err != nil {
			respondError(w, statusForError(err), err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"symbol":  symbol,
		"count":   len(found),
		"signals": found,
	})
}

// --- market data ---

func (s *Server) handleBars(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	days := 100
	if q := r.URL.Query().Get("days"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("days query parameter: %w", err))
			return
		}
		days = n
	}

	bars, err := s.store.Bars(symbol, days)
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"count":  len(bars),
		"bars":   bars,
	})
}

type upsertBarRequest struct {
	Symbol   string  `json:"symbol"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adjusted_close"`
	Volume   int64   `json:"volume"`
	Source   string  `json:"source"`
}

func (s *Server) handleUpsertBar(w http.ResponseWriter, r *http.Request) {
	var req upsertBarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Symbol == "" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("symbol is required"))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("parse date %q: %w", req.Date, err))
		return
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	bar := market.Bar{
		Symbol:   strings.ToUpper(req.Symbol),
		Date:     date,
		Open:     req.Open,
		High:     req.High,
		Low:      req.Low,
		Close:    req.Close,
		AdjClose: req.AdjClose,
		Volume:   req.Volume,
		Source:   source,
	}
	if err := s.store.UpsertBar(bar); err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	respondJSON(w, http.StatusOK, bar)
}
