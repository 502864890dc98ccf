package server

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/traderoyale/engine/internal/modules/history"
)

const (
	defaultSparklineLength = 20
	defaultIndicatorPeriod = 14
)

// handleSparklines returns a short synthetic series per asset for the
// asset-list UI. Real recorded series are served per asset.
func (s *Server) handleSparklines(w http.ResponseWriter, r *http.Request) {
	state := s.session.Snapshot()
	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))

	length := queryInt(r, "length", defaultSparklineLength)
	out := make(map[string][]history.Point, len(state.Assets))
	for _, asset := range state.Assets {
		out[asset.ID] = history.Sparkline(rng, asset, length, now)
	}

	s.writeJSON(w, http.StatusOK, out)
}

// handlePortfolioChart returns the recorded net-worth series with its trade
// events and round annotations.
func (s *Server) handlePortfolioChart(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.history.Portfolio())
}

// handleAssetChart returns the recorded price series for one asset.
func (s *Server) handleAssetChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	series, ok := s.history.Asset(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown asset")
		return
	}

	s.writeJSON(w, http.StatusOK, series)
}

// handleAssetIndicators returns SMA/RSI series for one asset. Needs more
// recorded samples than the period; until then a 422 tells the UI to wait.
func (s *Server) handleAssetIndicators(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period := queryInt(r, "period", defaultIndicatorPeriod)

	indicators, ok := s.history.AssetIndicators(id, period)
	if !ok {
		s.writeError(w, http.StatusUnprocessableEntity, "not enough samples for indicators")
		return
	}

	s.writeJSON(w, http.StatusOK, indicators)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
