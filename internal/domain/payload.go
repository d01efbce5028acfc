package domain

// Mode selects which of the two snapshot shapes a payload carries.
type Mode string

const (
	ModePortfolio Mode = "portfolio"
	ModeTicker    Mode = "ticker"
)

// EquityPoint is one snapshot of total portfolio value.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// PriceSeriesPoint is one closing price in a single-ticker series.
type PriceSeriesPoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// Pick is a ticker suggestion carried alongside the portfolio snapshot.
type Pick struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason,omitempty"`
}

// Position is a held quantity of one ticker, as persisted in the snapshot.
type Position struct {
	Ticker   string  `json:"ticker" csv:"ticker"`
	Qty      float64 `json:"qty" csv:"qty"`
	AvgPrice float64 `json:"avg_price" csv:"avg_price"`
}

// EnrichedPosition is a Position augmented at render time with a live price
// and derived value/P&L fields. The derived fields are never persisted.
type EnrichedPosition struct {
	Ticker       string  `json:"ticker" csv:"ticker"`
	Qty          float64 `json:"qty" csv:"qty"`
	AvgPrice     float64 `json:"avg_price" csv:"avg_price"`
	CurrentPrice float64 `json:"current_price" csv:"current_price"`
	MarketValue  float64 `json:"market_value" csv:"market_value"`
	UnrealizedPL float64 `json:"unrealized_pl" csv:"unrealized_pl"`
}

// Enriched derives value and P&L fields from a live price.
func (p Position) Enriched(currentPrice float64) EnrichedPosition {
	return EnrichedPosition{
		Ticker:       p.Ticker,
		Qty:          p.Qty,
		AvgPrice:     p.AvgPrice,
		CurrentPrice: currentPrice,
		MarketValue:  p.Qty * currentPrice,
		UnrealizedPL: (currentPrice - p.AvgPrice) * p.Qty,
	}
}

// Fallback returns the position with all derived fields zeroed. Used when the
// live price lookup for this one ticker failed.
func (p Position) Fallback() EnrichedPosition {
	return EnrichedPosition{
		Ticker:   p.Ticker,
		Qty:      p.Qty,
		AvgPrice: p.AvgPrice,
	}
}

// PLPercent is the unrealized P&L as a percent of the average price.
// A zero average price means a new/empty position, not an error, and
// reports as 0% change.
func (e EnrichedPosition) PLPercent() float64 {
	if e.AvgPrice == 0 {
		return 0
	}
	return (e.CurrentPrice - e.AvgPrice) / e.AvgPrice * 100
}

// Payload is one decoded snapshot, fully replacing displayed state per load.
type Payload struct {
	Mode Mode `json:"mode"`

	// portfolio mode
	Title             string        `json:"title,omitempty"`
	UpdatedAt         string        `json:"updated_at,omitempty"`
	InvestedCostBasis float64       `json:"invested_cost_basis,omitempty"`
	EquitySeries      []EquityPoint `json:"equity_series,omitempty"`
	Positions         []Position    `json:"positions,omitempty"`
	Picks             []Pick        `json:"picks,omitempty"`

	// single-ticker mode
	Ticker string             `json:"ticker,omitempty"`
	Series []PriceSeriesPoint `json:"series,omitempty"`
}

// PlottedValues returns the numeric series the chart draws, regardless of mode.
func (p *Payload) PlottedValues() []float64 {
	if p.Mode == ModeTicker {
		values := make([]float64, len(p.Series))
		for i, pt := range p.Series {
			values[i] = pt.Close
		}
		return values
	}
	values := make([]float64, len(p.EquitySeries))
	for i, pt := range p.EquitySeries {
		values[i] = pt.Equity
	}
	return values
}

// PlottedDates returns the date labels matching PlottedValues.
func (p *Payload) PlottedDates() []string {
	if p.Mode == ModeTicker {
		dates := make([]string, len(p.Series))
		for i, pt := range p.Series {
			dates[i] = pt.Date
		}
		return dates
	}
	dates := make([]string, len(p.EquitySeries))
	for i, pt := range p.EquitySeries {
		dates[i] = pt.Date
	}
	return dates
}

// TotalMarketValue sums enriched market values. Plain float sum, order
// independent per the KPI contract.
func TotalMarketValue(positions []EnrichedPosition) float64 {
	total := 0.0
	for _, p := range positions {
		total += p.MarketValue
	}
	return total
}

// PercentChange reports value vs a baseline as a percent. A zero baseline
// reports 0, never NaN or Inf.
func PercentChange(value, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (value - baseline) / baseline * 100
}

// LoadResult is the single Ok/Err value the load/enrich pipeline produces and
// every renderer consumes. Err != nil means the banner path; Payload and
// Enriched are only set on success.
type LoadResult struct {
	Payload  *Payload           `json:"payload,omitempty"`
	Enriched []EnrichedPosition `json:"positions,omitempty"`
	Raw      []byte             `json:"-"`
	Err      *LoadError         `json:"error,omitempty"`
}

// Ok reports whether the load cycle produced a renderable payload.
func (r LoadResult) Ok() bool {
	return r.Err == nil
}
