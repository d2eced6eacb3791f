// Package analytics computes the dashboard's aggregates. Every
// function is pure and total: an empty table yields an empty slice or
// NaN scalar, never an error, so re-filtering on each interaction is
// safe to repeat.
package analytics

import (
	"math"
	"slices"
	"time"

	"sales-dashboard/internal/models"
)

var weekdays = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func TotalSum(rows []models.Sale) float64 {
	sum := 0.0
	for _, s := range rows {
		sum += s.Total
	}
	return sum
}

func TransactionCount(rows []models.Sale) int {
	return len(rows)
}

// DailyTotals groups by date and sums Total, ordered by date.
func DailyTotals(rows []models.Sale) []models.DailyTotal {
	groups := make(map[time.Time]float64)
	for _, s := range rows {
		groups[s.Date] += s.Total
	}

	out := make([]models.DailyTotal, 0, len(groups))
	for date, total := range groups {
		out = append(out, models.DailyTotal{Date: date, Total: total})
	}
	slices.SortFunc(out, func(a, b models.DailyTotal) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// AverageDailyTotal is the mean of the daily totals, NaN for an empty
// table.
func AverageDailyTotal(rows []models.Sale) float64 {
	daily := DailyTotals(rows)
	if len(daily) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, d := range daily {
		sum += d.Total
	}
	return sum / float64(len(daily))
}

// DailyCounts groups by date and counts rows, ordered by date.
func DailyCounts(rows []models.Sale) []models.DailyCount {
	groups := make(map[time.Time]int)
	for _, s := range rows {
		groups[s.Date]++
	}

	out := make([]models.DailyCount, 0, len(groups))
	for date, count := range groups {
		out = append(out, models.DailyCount{Date: date, Count: count})
	}
	slices.SortFunc(out, func(a, b models.DailyCount) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// WeekdayMeans returns exactly seven entries in Monday to Sunday
// order. Weekdays absent from the data carry a nil mean rather than
// zero.
func WeekdayMeans(rows []models.Sale) []models.WeekdayMean {
	sums := make(map[string]float64, 7)
	counts := make(map[string]int, 7)
	for _, s := range rows {
		sums[s.Day] += s.Total
		counts[s.Day]++
	}

	out := make([]models.WeekdayMean, 0, 7)
	for _, day := range weekdays {
		entry := models.WeekdayMean{Day: day}
		if counts[day] > 0 {
			mean := sums[day] / float64(counts[day])
			entry.Mean = &mean
		}
		out = append(out, entry)
	}
	return out
}

// HourlyDistribution bins Total by hour of day into a fixed 24 bins.
func HourlyDistribution(rows []models.Sale) []models.HourlyBin {
	var bins [24]float64
	for _, s := range rows {
		if s.Hour >= 0 && s.Hour < 24 {
			bins[s.Hour] += s.Total
		}
	}

	out := make([]models.HourlyBin, 24)
	for hour, total := range bins {
		out[hour] = models.HourlyBin{Hour: hour, Total: total}
	}
	return out
}

// DescriptiveStats computes mean, median and quartiles of a numeric
// column. All fields are NaN for empty input.
func DescriptiveStats(values []float64) models.DescriptiveStats {
	if len(values) == 0 {
		nan := math.NaN()
		return models.DescriptiveStats{Mean: nan, Median: nan, Q1: nan, Q3: nan}
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return models.DescriptiveStats{
		Mean:   sum / float64(len(values)),
		Median: quantile(sorted, 0.5),
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
	}
}

// quantile uses linear interpolation between closest ranks, the same
// definition pandas and numpy default to.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// CategoryBreakdown groups by a categorical column and sums a numeric
// one, ordered by category name.
func CategoryBreakdown(rows []models.Sale, category CategoryColumn, value NumericColumn) []models.CategoryTotal {
	groups := make(map[string]float64)
	for _, s := range rows {
		groups[category.Of(s)] += value.Of(s)
	}

	out := make([]models.CategoryTotal, 0, len(groups))
	for name, total := range groups {
		out = append(out, models.CategoryTotal{Category: name, Total: total})
	}
	slices.SortFunc(out, func(a, b models.CategoryTotal) int {
		return compareStrings(a.Category, b.Category)
	})
	return out
}

// CategoryStats computes per-group descriptive stats of a numeric
// column, the distributional counterpart of CategoryBreakdown used by
// box-plot views.
func CategoryStats(rows []models.Sale, category CategoryColumn, value NumericColumn) []models.CategoryStats {
	groups := make(map[string][]float64)
	for _, s := range rows {
		name := category.Of(s)
		groups[name] = append(groups[name], value.Of(s))
	}

	out := make([]models.CategoryStats, 0, len(groups))
	for name, values := range groups {
		out = append(out, models.CategoryStats{
			Category: name,
			Stats:    DescriptiveStats(values),
		})
	}
	slices.SortFunc(out, func(a, b models.CategoryStats) int {
		return compareStrings(a.Category, b.Category)
	})
	return out
}

// Histogram bins values into bins equal-width buckets spanning the
// observed range. The maximum value lands in the last bin.
func Histogram(values []float64, bins int) models.Histogram {
	if len(values) == 0 || bins <= 0 {
		return models.Histogram{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		// Degenerate range: a single centered bin.
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	return models.Histogram{BinEdges: edges, Counts: counts}
}

// PaymentMethodFrequency counts rows per payment method, most frequent
// first, ties broken by name.
func PaymentMethodFrequency(rows []models.Sale) []models.PaymentFrequency {
	groups := make(map[string]int)
	for _, s := range rows {
		groups[s.Payment]++
	}

	out := make([]models.PaymentFrequency, 0, len(groups))
	for method, count := range groups {
		out = append(out, models.PaymentFrequency{Method: method, Count: count})
	}
	slices.SortFunc(out, func(a, b models.PaymentFrequency) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return compareStrings(a.Method, b.Method)
	})
	return out
}

// Points pairs two numeric columns for scatter views, in row order.
func Points(rows []models.Sale, x, y NumericColumn) []models.Point {
	out := make([]models.Point, len(rows))
	for i, s := range rows {
		out[i] = models.Point{X: x.Of(s), Y: y.Of(s)}
	}
	return out
}

// Summary is the dashboard's metric strip.
func Summary(rows []models.Sale) models.Summary {
	return models.Summary{
		TotalSales:   TotalSum(rows),
		AverageDaily: AverageDailyTotal(rows),
		Transactions: len(rows),
	}
}

// CorrelationMatrix computes pairwise Pearson correlations across the
// given columns, rounded to two decimals. The matrix is symmetric with
// 1 on the diagonal for any non-degenerate column; degenerate columns
// (zero variance) produce NaN cells.
func CorrelationMatrix(rows []models.Sale, cols []NumericColumn) models.CorrelationMatrix {
	names := make([]string, len(cols))
	series := make([][]float64, len(cols))
	for i, col := range cols {
		names[i] = string(col)
		series[i] = Values(rows, col)
	}

	values := make([][]float64, len(cols))
	for i := range cols {
		values[i] = make([]float64, len(cols))
		for j := range cols {
			r := pearson(series[i], series[j])
			values[i][j] = math.Round(r*100) / 100
		}
	}

	return models.CorrelationMatrix{Columns: names, Values: values}
}

func pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return math.NaN()
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
