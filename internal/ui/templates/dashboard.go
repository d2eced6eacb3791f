// Package templates holds the dashboard page shell. The page is a
// static frame; metrics and charts hydrate through the SSE endpoints
// with the current filter selection.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardHTML)
		return err
	})
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Sales Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f6f7fb; }
header { padding: 1rem 2rem; background: #1d2733; color: #fff; }
.layout { display: flex; gap: 1.5rem; padding: 1.5rem 2rem; }
.sidebar { width: 260px; background: #fff; border-radius: 8px; padding: 1rem; height: fit-content; }
.sidebar label { display: block; margin: 0.75rem 0 0.25rem; font-weight: 600; font-size: 0.85rem; }
.content { flex: 1; }
.metric-strip { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
.metric { background: #fff; border-radius: 8px; padding: 1rem 1.5rem; flex: 1; }
.metric-label { display: block; color: #667; font-size: 0.8rem; }
.chart { background: #fff; border-radius: 8px; padding: 1rem; margin-bottom: 1.5rem; min-height: 200px; }
.download { display: inline-block; margin-top: 1rem; }
</style>
</head>
<body data-signals="{from: '', to: '', productLines: [], months: [], dailyData: [], countData: [], weekdayData: [], hourlyData: [], paymentData: []}">
<header><h1>Sales Dashboard</h1></header>
<div class="layout">
<aside class="sidebar">
<h2>Filters</h2>
<label for="from">From</label>
<input id="from" type="date" data-bind-from/>
<label for="to">To</label>
<input id="to" type="date" data-bind-to/>
<label for="product-lines">Product line</label>
<select id="product-lines" multiple data-bind-product-lines></select>
<label for="months">Month</label>
<select id="months" multiple data-bind-months></select>
<button data-on-click="@get('/sse/refresh-all?from='+$from+'&to='+$to)">Apply</button>
<a class="download" href="/api/export?format=csv" download>Download filtered data</a>
</aside>
<main class="content" data-on-load="@get('/sse/refresh-all')">
<div id="summary-strip" class="metric-strip"></div>
<div class="chart" id="daily-chart"><h3>Daily Sales</h3></div>
<div class="chart" id="count-chart"><h3>Daily Transactions</h3></div>
<div class="chart" id="weekday-chart"><h3>Average Sales by Weekday</h3></div>
<div class="chart" id="hourly-chart"><h3>Sales by Hour</h3></div>
<div class="chart" id="payment-chart"><h3>Payment Methods</h3></div>
</main>
</div>
</body>
</html>`
