package internal

import (
	"time"

	"stockboard/internal/domain"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// HistoryService fetches historical daily closes, used to seed single-ticker
// snapshot files.
type HistoryService interface {
	DailyCloses(symbol string, start time.Time) ([]domain.PriceSeriesPoint, error)
}

type yahooHistoryService struct{}

func NewYahooHistoryService() HistoryService {
	return yahooHistoryService{}
}

func (yahooHistoryService) DailyCloses(symbol string, start time.Time) ([]domain.PriceSeriesPoint, error) {
	symbol = SanitizeTicker(symbol)
	if symbol == "" {
		return nil, domain.Validationf("empty ticker symbol")
	}

	now := time.Now()
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	points := []domain.PriceSeriesPoint{}
	for iter.Next() {
		bar := iter.Bar()
		points = append(points, domain.PriceSeriesPoint{
			Date:  time.Unix(int64(bar.Timestamp), 0).UTC().Format(time.DateOnly),
			Close: bar.AdjClose.InexactFloat64(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, domain.Transportf("fetch daily closes for %s: %v", symbol, err)
	}

	return points, nil
}
