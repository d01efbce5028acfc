package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stockboard/internal/domain"
)

// QuoteService resolves the most recent trade price for one ticker.
type QuoteService interface {
	LatestPrice(ctx context.Context, symbol string) (float64, error)
}

type yahooQuoteService struct {
	client  *http.Client
	baseURL string
}

// NewYahooQuoteService returns a QuoteService backed by the Yahoo v8 chart
// endpoint, queried at 1-minute interval over a 1-day range.
func NewYahooQuoteService(client *http.Client) QuoteService {
	if client == nil {
		client = &http.Client{}
	}
	return &yahooQuoteService{
		client:  client,
		baseURL: "https://query1.finance.yahoo.com",
	}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (s *yahooQuoteService) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = SanitizeTicker(symbol)
	if symbol == "" {
		return 0, domain.Validationf("empty ticker symbol")
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1m&range=1d", s.baseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, domain.Transportf("build quote request for %s: %v", symbol, err)
	}
	// browser-like headers reduce HTML error pages from the quote host
	req.Header.Set("accept", "application/json, text/plain, */*")
	req.Header.Set("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, domain.Timeoutf("quote request for %s timed out", symbol)
		}
		return 0, domain.Transportf("quote request for %s: %v", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, domain.Transportf("quote request for %s: status %d", symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, domain.Timeoutf("quote request for %s timed out", symbol)
		}
		return 0, domain.Transportf("read quote response for %s: %v", symbol, err)
	}

	var decoded yahooChartResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return 0, domain.Parsef("decode quote response for %s: %v", symbol, err)
	}
	if decoded.Chart.Error != nil {
		return 0, domain.Transportf("quote source error for %s: %s", symbol, decoded.Chart.Error.Description)
	}
	if len(decoded.Chart.Result) == 0 || len(decoded.Chart.Result[0].Indicators.Quote) == 0 {
		return 0, domain.Parsef("quote response for %s has no result", symbol)
	}

	return lastClose(decoded.Chart.Result[0].Indicators.Quote[0].Close, symbol)
}

// lastClose picks the most recent non-null close, scanning backward. Minute
// bars routinely carry trailing nulls during market hours.
func lastClose(closes []*float64, symbol string) (float64, error) {
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return *closes[i], nil
		}
	}
	return 0, domain.Parsef("quote response for %s has no usable close", symbol)
}

// quoteTimeout bounds each per-ticker lookup. A lookup that exceeds it is
// treated like any other per-item failure.
const quoteTimeout = 8 * time.Second
