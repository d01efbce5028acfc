package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"stockboard/internal/domain"
	"stockboard/internal/logger"

	"go.uber.org/zap"
)

// snapshotFile is the on-disk portfolio snapshot shape. Field order matches
// the files the bot has been writing all along.
type snapshotFile struct {
	UpdatedAt         *string              `json:"updated_at"`
	Title             string               `json:"title"`
	InvestedCostBasis float64              `json:"invested_cost_basis"`
	EquitySeries      []domain.EquityPoint `json:"equity_series"`
	Picks             []domain.Pick        `json:"picks"`
	Positions         []domain.Position    `json:"positions"`
}

const (
	defaultTitle     = "Inf Money Stock Bot"
	defaultCostBasis = 10000.00
	defaultPickQty   = 10.0
	defaultPickAvg   = 100.0
)

// marketTZ stamps equity points with the exchange's calendar day, not the
// host's.
var marketTZ = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// SnapshotManager maintains the portfolio snapshot file between dashboard
// loads: one carried-forward equity point per market day, and positions
// rebuilt from the current pick list.
type SnapshotManager struct {
	Path string
	Now  func() time.Time
	Log  *zap.SugaredLogger
}

func NewSnapshotManager(path string) *SnapshotManager {
	return &SnapshotManager{
		Path: path,
		Now:  time.Now,
		Log:  logger.New(),
	}
}

// Update applies one maintenance pass and writes the file back. Safe to run
// repeatedly; a second run on the same day is a no-op apart from updated_at.
func (m *SnapshotManager) Update(picks []domain.Pick) error {
	snap := m.load()

	today := m.Now().In(marketTZ).Format(time.DateOnly)
	if !hasEquityPoint(snap.EquitySeries, today) {
		// morning carry-forward: yesterday's equity before the market moves,
		// cost basis on first run
		last := snap.InvestedCostBasis
		if n := len(snap.EquitySeries); n > 0 {
			last = snap.EquitySeries[n-1].Equity
		}
		snap.EquitySeries = append(snap.EquitySeries, domain.EquityPoint{Date: today, Equity: last})
		m.Log.Infow("appended equity point", "date", today, "equity", last)
	}

	if picks != nil {
		snap.Picks = normalizePicks(picks)
		snap.Positions = positionsFromPicks(snap.Picks)
	}

	updatedAt := m.Now().In(marketTZ).Format(time.RFC3339)
	snap.UpdatedAt = &updatedAt

	return m.write(snap)
}

func (m *SnapshotManager) load() snapshotFile {
	snap := snapshotFile{
		Title:             defaultTitle,
		InvestedCostBasis: defaultCostBasis,
		EquitySeries:      []domain.EquityPoint{},
		Picks:             []domain.Pick{},
		Positions:         []domain.Position{},
	}
	raw, err := os.ReadFile(m.Path)
	if err != nil {
		return snap
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		// unreadable file: start from the skeleton rather than failing the run
		m.Log.Warnw("snapshot file unreadable, starting fresh", "path", m.Path, "error", err)
		return snapshotFile{
			Title:             defaultTitle,
			InvestedCostBasis: defaultCostBasis,
			EquitySeries:      []domain.EquityPoint{},
			Picks:             []domain.Pick{},
			Positions:         []domain.Position{},
		}
	}
	if snap.EquitySeries == nil {
		snap.EquitySeries = []domain.EquityPoint{}
	}
	if snap.Picks == nil {
		snap.Picks = []domain.Pick{}
	}
	if snap.Positions == nil {
		snap.Positions = []domain.Position{}
	}
	return snap
}

func (m *SnapshotManager) write(snap snapshotFile) error {
	if err := os.MkdirAll(filepath.Dir(m.Path), 0o755); err != nil {
		return domain.Transportf("create snapshot dir: %v", err)
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return domain.Parsef("encode snapshot: %v", err)
	}
	if err := os.WriteFile(m.Path, raw, 0o644); err != nil {
		return domain.Transportf("write snapshot %s: %v", m.Path, err)
	}
	return nil
}

func hasEquityPoint(series []domain.EquityPoint, date string) bool {
	for _, pt := range series {
		if pt.Date == date {
			return true
		}
	}
	return false
}

func normalizePicks(picks []domain.Pick) []domain.Pick {
	out := []domain.Pick{}
	seen := map[string]bool{}
	for _, pick := range picks {
		ticker := SanitizeTicker(pick.Ticker)
		if ticker == "" || seen[ticker] {
			continue
		}
		seen[ticker] = true
		out = append(out, domain.Pick{Ticker: ticker, Reason: pick.Reason})
	}
	return out
}

// positionsFromPicks seeds paper positions for fresh picks. The dashboard's
// enrichment computes real market values from these defaults.
func positionsFromPicks(picks []domain.Pick) []domain.Position {
	positions := []domain.Position{}
	for _, pick := range picks {
		positions = append(positions, domain.Position{
			Ticker:   pick.Ticker,
			Qty:      defaultPickQty,
			AvgPrice: defaultPickAvg,
		})
	}
	return positions
}

// WriteTickerSeries writes a single-ticker snapshot file from historical
// closes, the seed for the single-ticker dashboard variant.
func WriteTickerSeries(history HistoryService, symbol string, start time.Time, path string) error {
	points, err := history.DailyCloses(symbol, start)
	if err != nil {
		return err
	}

	file := struct {
		Ticker    string                    `json:"ticker"`
		UpdatedAt string                    `json:"updated_at"`
		Series    []domain.PriceSeriesPoint `json:"series"`
	}{
		Ticker:    SanitizeTicker(symbol),
		UpdatedAt: time.Now().In(marketTZ).Format(time.RFC3339),
		Series:    points,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Transportf("create snapshot dir: %v", err)
	}
	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return domain.Parsef("encode series: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return domain.Transportf("write series %s: %v", path, err)
	}
	return nil
}
