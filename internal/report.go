package internal

import (
	"fmt"
	"html"
	"math"
	"strings"

	"stockboard/internal/domain"
)

// tableMaxRows caps the series table at the most recent entries.
const tableMaxRows = 30

// DashboardHTML renders the whole dashboard page from one load result. The
// error path renders the same shell with a banner instead of data panels, so
// the page never comes up blank.
func DashboardHTML(res domain.LoadResult) string {
	var sb strings.Builder
	sb.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	sb.WriteString("<title>" + html.EscapeString(pageTitle(res)) + "</title>")
	sb.WriteString(`<style>
body{font-family:Arial,Helvetica,sans-serif;max-width:860px;margin:20px auto;padding:0 10px;background:#0d1117;color:#e6edf3}
table{border-collapse:collapse;width:100%;margin:12px 0}td,th{border:1px solid #30363d;padding:6px;text-align:right}
th{background:#161b22;text-align:center}td.left{text-align:left}
.up{color:#3fb950}.down{color:#f85149}.neutral{color:#8b949e}
.banner{background:#f8d7da;color:#58151c;padding:10px;border-radius:6px;margin:12px 0}
.kpis{display:flex;gap:24px;margin:12px 0}.kpi{background:#161b22;padding:10px 16px;border-radius:6px}
.kpi .label{font-size:0.8em;color:#8b949e}.kpi .value{font-size:1.3em}
.panel{background:#161b22;padding:10px;border-radius:6px;margin:12px 0}
.placeholder{text-align:center;color:#8b949e}
button{background:#21262d;color:#e6edf3;border:1px solid #30363d;border-radius:6px;padding:6px 12px;cursor:pointer}
pre{background:#161b22;padding:10px;border-radius:6px;overflow:auto}
.small{font-size:0.85em;color:#8b949e}
</style></head><body>`)

	sb.WriteString("<h1>" + html.EscapeString(pageTitle(res)) + "</h1>")
	sb.WriteString(`<p><button onclick="location.reload()">retry</button> <button id="toggleRaw">raw JSON</button></p>`)

	if !res.Ok() {
		fmt.Fprintf(&sb, `<div class="banner">load failed (%s): %s</div>`,
			html.EscapeString(string(res.Err.Kind)), html.EscapeString(res.Err.Message))
		sb.WriteString(`<p class="small">status: error</p>`)
	} else {
		renderBody(&sb, res)
	}

	sb.WriteString(`<pre id="rawJson" style="display:none">`)
	sb.WriteString(html.EscapeString(string(res.Raw)))
	sb.WriteString("</pre>")

	// raw panel toggles independently of load state
	sb.WriteString(`<script>
document.getElementById("toggleRaw").addEventListener("click", function(){
  var el = document.getElementById("rawJson");
  el.style.display = el.style.display === "none" ? "block" : "none";
});
</script>`)
	sb.WriteString("</body></html>")
	return sb.String()
}

func pageTitle(res domain.LoadResult) string {
	if res.Ok() {
		if res.Payload.Mode == domain.ModeTicker {
			return res.Payload.Ticker
		}
		if res.Payload.Title != "" {
			return res.Payload.Title
		}
	}
	return "stockboard"
}

func renderBody(sb *strings.Builder, res domain.LoadResult) {
	p := res.Payload

	if p.UpdatedAt != "" {
		fmt.Fprintf(sb, `<p class="small">updated %s</p>`, html.EscapeString(FormatDate(p.UpdatedAt)))
	}

	if p.Mode == domain.ModePortfolio {
		sb.WriteString(kpiHTML(p, res.Enriched))
	}

	values := p.PlottedValues()
	if svg, ok := RenderChartSVG(values); ok {
		sb.WriteString(`<div class="panel">` + svg + `</div>`)
	}

	sb.WriteString(statsHTML(ComputeSeriesStats(values)))

	valueHeader := "Equity"
	if p.Mode == domain.ModeTicker {
		valueHeader = "Close"
	}
	sb.WriteString(seriesTableHTML(p.PlottedDates(), values, valueHeader))

	if p.Mode == domain.ModePortfolio {
		sb.WriteString(positionsTableHTML(res.Enriched))
		sb.WriteString(picksHTML(p.Picks))
	}
}

// seriesTableHTML lists the most recent entries, newest first. An empty series
// renders a single placeholder row rather than a bare table.
func seriesTableHTML(dates []string, values []float64, valueHeader string) string {
	var sb strings.Builder
	sb.WriteString(`<table><thead><tr><th>Date</th><th>` + html.EscapeString(valueHeader) + `</th></tr></thead><tbody>`)

	if len(values) == 0 {
		sb.WriteString(`<tr><td colspan="2" class="placeholder">no data</td></tr>`)
	} else {
		start := len(values) - tableMaxRows
		if start < 0 {
			start = 0
		}
		for i := len(values) - 1; i >= start; i-- {
			fmt.Fprintf(&sb, `<tr><td class="left">%s</td><td>%s</td></tr>`,
				html.EscapeString(FormatDate(dates[i])), FormatFixed(values[i], 2))
		}
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

func positionsTableHTML(positions []domain.EnrichedPosition) string {
	var sb strings.Builder
	sb.WriteString(`<table><thead><tr><th>Ticker</th><th>Qty</th><th>Avg Price</th><th>Current</th><th>Market Value</th><th>Unrealized P/L</th><th>P/L %</th></tr></thead><tbody>`)

	if len(positions) == 0 {
		sb.WriteString(`<tr><td colspan="7" class="placeholder">no data</td></tr>`)
	}
	for _, pos := range positions {
		fmt.Fprintf(&sb,
			`<tr class="%s"><td class="left">%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			plClass(pos.PLPercent()),
			html.EscapeString(pos.Ticker),
			FormatQty(pos.Qty),
			FormatFixed(pos.AvgPrice, 2),
			FormatFixed(pos.CurrentPrice, 2),
			FormatMoney(pos.MarketValue),
			FormatMoney(pos.UnrealizedPL),
			FormatSignedPercent(pos.PLPercent()),
		)
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

func plClass(pct float64) string {
	switch {
	case pct > 0:
		return "up"
	case pct < 0:
		return "down"
	default:
		return "neutral"
	}
}

func kpiHTML(p *domain.Payload, positions []domain.EnrichedPosition) string {
	total := domain.TotalMarketValue(positions)
	pct := domain.PercentChange(total, p.InvestedCostBasis)

	var sb strings.Builder
	sb.WriteString(`<div class="kpis">`)
	fmt.Fprintf(&sb, `<div class="kpi"><div class="label">portfolio value</div><div class="value">%s</div></div>`, FormatMoney(total))
	fmt.Fprintf(&sb, `<div class="kpi"><div class="label">vs cost basis</div><div class="value %s">%s</div></div>`, plClass(pct), FormatSignedPercent(pct))

	// single-holding convenience panel, shown only when there is exactly one
	if len(positions) == 1 {
		only := positions[0]
		fmt.Fprintf(&sb, `<div class="kpi" id="singleTicker"><div class="label">%s</div><div class="value">%s <span class="%s">%s</span></div></div>`,
			html.EscapeString(only.Ticker),
			FormatFixed(only.CurrentPrice, 2),
			plClass(only.PLPercent()),
			FormatSignedPercent(only.PLPercent()),
		)
	}
	sb.WriteString("</div>")
	return sb.String()
}

func statsHTML(s SeriesStats) string {
	var sb strings.Builder
	sb.WriteString(`<div class="panel small">`)
	fmt.Fprintf(&sb, "volatility %s &middot; MA7 %s &middot; MA30 %s &middot; 7d %s &middot; 30d %s",
		formatStat(s.Volatility, FormatFixed(s.Volatility, 2)+"%"),
		formatStat(s.MA7, FormatFixed(s.MA7, 2)),
		formatStat(s.MA30, FormatFixed(s.MA30, 2)),
		formatStat(s.WeekChangePct, FormatSignedPercent(s.WeekChangePct)),
		formatStat(s.MonthChangePct, FormatSignedPercent(s.MonthChangePct)),
	)
	sb.WriteString("</div>")
	return sb.String()
}

func formatStat(v float64, formatted string) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	return formatted
}

func picksHTML(picks []domain.Pick) string {
	if len(picks) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<div class="panel"><b>picks</b><ul>`)
	for _, pick := range picks {
		fmt.Fprintf(&sb, "<li><b>%s</b> %s</li>",
			html.EscapeString(pick.Ticker), html.EscapeString(pick.Reason))
	}
	sb.WriteString("</ul></div>")
	return sb.String()
}
