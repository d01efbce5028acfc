package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"stockboard/internal"
	"stockboard/internal/domain"
	"stockboard/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubQuoteService struct {
	prices map[string]float64
}

func (s stubQuoteService) LatestPrice(_ context.Context, symbol string) (float64, error) {
	if price, ok := s.prices[symbol]; ok {
		return price, nil
	}
	return 0, domain.Transportf("no quote for %s", symbol)
}

func newTestHandler(t *testing.T, snapshot string, prices map[string]float64) ApiHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "stockinfo.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o644))

	board := internal.NewBoardService(
		internal.NewDataSource(path, nil),
		internal.NewEnricher(stubQuoteService{prices: prices}),
	)
	return ApiHandler{Board: board, Log: logger.New()}
}

const portfolioSnapshot = `{
	"title": "Inf Money Stock Bot",
	"invested_cost_basis": 1000,
	"equity_series": [
		{"date": "2025-03-04", "equity": 1000},
		{"date": "2025-03-05", "equity": 1100}
	],
	"positions": [{"ticker": "AAPL", "qty": 10, "avg_price": 100}]
}`

func TestDashboardPage(t *testing.T) {
	t.Run("renders dashboard html", func(t *testing.T) {
		handler := newTestHandler(t, portfolioSnapshot, map[string]float64{"AAPL": 150})
		router := handler.Router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Inf Money Stock Bot")
		require.Contains(t, w.Body.String(), "<svg")
		require.Contains(t, w.Body.String(), "$1,500.00")
	})

	t.Run("bad snapshot renders error banner with 200", func(t *testing.T) {
		handler := newTestHandler(t, `{}`, nil)
		router := handler.Router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `class="banner"`)
	})
}

func TestDashboardJson(t *testing.T) {
	t.Run("ok result", func(t *testing.T) {
		handler := newTestHandler(t, portfolioSnapshot, map[string]float64{"AAPL": 150})
		router := handler.Router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Payload   *domain.Payload           `json:"payload"`
			Positions []domain.EnrichedPosition `json:"positions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, domain.ModePortfolio, body.Payload.Mode)
		require.Len(t, body.Positions, 1)
		require.Equal(t, float64(1500), body.Positions[0].MarketValue)
	})

	t.Run("failed quote still succeeds with zeroed position", func(t *testing.T) {
		handler := newTestHandler(t, portfolioSnapshot, nil)
		router := handler.Router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Positions []domain.EnrichedPosition `json:"positions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Positions, 1)
		require.Zero(t, body.Positions[0].CurrentPrice)
		require.Zero(t, body.Positions[0].MarketValue)
	})

	t.Run("validation failure is a 500 with kind", func(t *testing.T) {
		handler := newTestHandler(t, `{}`, nil)
		router := handler.Router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Contains(t, w.Body.String(), `"kind":"validation"`)
	})
}

func TestPositionsCsv(t *testing.T) {
	t.Run("exports enriched positions", func(t *testing.T) {
		handler := newTestHandler(t, portfolioSnapshot, map[string]float64{"AAPL": 150})
		router := handler.Router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/positions.csv", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		require.Contains(t, w.Body.String(), "ticker,qty,avg_price,current_price,market_value,unrealized_pl")
		require.Contains(t, w.Body.String(), "AAPL,10,100,150,1500,500")
	})

	t.Run("single-ticker snapshot has nothing to export", func(t *testing.T) {
		handler := newTestHandler(t, `{"ticker": "AAPL", "series": []}`, nil)
		router := handler.Router()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/positions.csv", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(t, portfolioSnapshot, nil)
	router := handler.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}
