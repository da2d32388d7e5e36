// Package server exposes the desk over a local JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/rustyeddy/paperdesk/paper"
	"github.com/rustyeddy/paperdesk/portfolio"
	"github.com/rustyeddy/paperdesk/quotes"
	"github.com/rustyeddy/paperdesk/signals"
	"github.com/rustyeddy/paperdesk/store"
)

type Server struct {
	engine    *paper.Engine
	portfolio *portfolio.Service
	detector  *signals.Detector
	store     *store.Store
	hub       *quotes.Hub
	logger    *slog.Logger
	mux       *http.ServeMux
}

// New wires the API routes. hub may be nil, in which case the quote
// WebSocket endpoint is not registered.
func New(engine *paper.Engine, pf *portfolio.Service, det *signals.Detector, st *store.Store, hub *quotes.Hub, logger *slog.Logger) *Server {
	s := &Server{
		engine:    engine,
		portfolio: pf,
		detector:  det,
		store:     st,
		hub:       hub,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return logRequests(s.logger, s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/portfolio", s.handlePortfolio)
	s.mux.HandleFunc("GET /api/portfolio/positions", s.handlePositions)
	s.mux.HandleFunc("POST /api/portfolio/positions", s.handleAddPosition)
	s.mux.HandleFunc("GET /api/portfolio/positions/{symbol}", s.handlePosition)
	s.mux.HandleFunc("DELETE /api/portfolio/positions/{symbol}", s.handleRemoveShares)

	s.mux.HandleFunc("POST /api/portfolio/trade", s.handleTrade)
	s.mux.HandleFunc("GET /api/portfolio/performance", s.handlePerformance)
	s.mux.HandleFunc("POST /api/portfolio/reset", s.handleReset)
	s.mux.HandleFunc("GET /api/portfolio/trades", s.handleTradeHistory)

	s.mux.HandleFunc("GET /api/portfolio/watchlist", s.handleWatchlist)
	s.mux.HandleFunc("POST /api/portfolio/watchlist", s.handleWatch)
	s.mux.HandleFunc("DELETE /api/portfolio/watchlist/{symbol}", s.handleUnwatch)

	s.mux.HandleFunc("GET /api/analysis/signals/{symbol}", s.handleSignals)

	s.mux.HandleFunc("GET /api/market/bars/{symbol}", s.handleBars)
	s.mux.HandleFunc("POST /api/market/bars", s.handleUpsertBar)

	if s.hub != nil {
		s.mux.Handle("GET /ws/quotes", s.hub)
	}
}
