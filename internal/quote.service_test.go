package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockboard/internal/domain"

	"github.com/stretchr/testify/require"
)

func chartBody(closes string) string {
	return fmt.Sprintf(`{
		"chart": {
			"result": [{"indicators": {"quote": [{"close": %s}]}}],
			"error": null
		}
	}`, closes)
}

func newQuoteTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, QuoteService) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc := &yahooQuoteService{client: srv.Client(), baseURL: srv.URL}
	return srv, svc
}

func TestYahooQuoteService_LatestPrice(t *testing.T) {
	t.Run("last non-null close wins", func(t *testing.T) {
		_, svc := newQuoteTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
			require.Equal(t, "1m", r.URL.Query().Get("interval"))
			require.Equal(t, "1d", r.URL.Query().Get("range"))
			fmt.Fprint(w, chartBody(`[149.5, 150.0, null, null]`))
		})

		price, err := svc.LatestPrice(context.Background(), "aapl")
		require.NoError(t, err)
		require.Equal(t, 150.0, price)
	})

	t.Run("all-null closes fail that ticker", func(t *testing.T) {
		_, svc := newQuoteTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartBody(`[null, null]`))
		})

		_, err := svc.LatestPrice(context.Background(), "AAPL")
		require.Error(t, err)
		require.Equal(t, domain.KindParse, domain.KindOf(err))
	})

	t.Run("non-success status is a transport error", func(t *testing.T) {
		_, svc := newQuoteTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := svc.LatestPrice(context.Background(), "AAPL")
		require.Error(t, err)
		require.Equal(t, domain.KindTransport, domain.KindOf(err))
	})

	t.Run("html error page is a parse error", func(t *testing.T) {
		_, svc := newQuoteTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>blocked</html>")
		})

		_, err := svc.LatestPrice(context.Background(), "AAPL")
		require.Error(t, err)
		require.Equal(t, domain.KindParse, domain.KindOf(err))
	})

	t.Run("quote source error object", func(t *testing.T) {
		_, svc := newQuoteTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`)
		})

		_, err := svc.LatestPrice(context.Background(), "NOPE")
		require.Error(t, err)
		require.Equal(t, domain.KindTransport, domain.KindOf(err))
	})

	t.Run("deadline maps to timeout kind", func(t *testing.T) {
		_, svc := newQuoteTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			fmt.Fprint(w, chartBody(`[150.0]`))
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := svc.LatestPrice(ctx, "AAPL")
		require.Error(t, err)
		require.Equal(t, domain.KindTimeout, domain.KindOf(err))
	})

	t.Run("ticker is sanitized into the request path", func(t *testing.T) {
		var gotPath string
		_, svc := newQuoteTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			fmt.Fprint(w, chartBody(`[10.0]`))
		})

		_, err := svc.LatestPrice(context.Background(), " $brk.b ")
		require.NoError(t, err)
		require.Equal(t, "/v8/finance/chart/BRK.B", gotPath)
	})
}
