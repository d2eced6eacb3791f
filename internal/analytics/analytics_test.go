package analytics

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"sales-dashboard/internal/models"
)

func mkSale(date string, hour int, total float64) models.Sale {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Sale{
		Date:  d,
		Total: total,
		Day:   d.Weekday().String(),
		Month: d.Month().String(),
		Hour:  hour,
	}
}

func floatsEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDailyTotals_ThreeConsecutiveDates(t *testing.T) {
	rows := []models.Sale{
		mkSale("2019-01-01", 10, 100),
		mkSale("2019-01-02", 11, 200),
		mkSale("2019-01-03", 12, 300),
	}

	daily := DailyTotals(rows)
	if len(daily) != 3 {
		t.Fatalf("expected 3 daily totals, got %d", len(daily))
	}

	wantTotals := []float64{100, 200, 300}
	for i, want := range wantTotals {
		if !floatsEqual(daily[i].Total, want) {
			t.Errorf("day %d: expected total %v, got %v", i, want, daily[i].Total)
		}
		if i > 0 && !daily[i].Date.After(daily[i-1].Date) {
			t.Errorf("daily totals out of date order at %d", i)
		}
	}

	if avg := AverageDailyTotal(rows); !floatsEqual(avg, 200) {
		t.Errorf("expected average daily total 200, got %v", avg)
	}
}

func TestDailyTotals_GroupsSameDate(t *testing.T) {
	rows := []models.Sale{
		mkSale("2019-01-01", 10, 40),
		mkSale("2019-01-01", 15, 60),
	}

	daily := DailyTotals(rows)
	if len(daily) != 1 {
		t.Fatalf("expected 1 group, got %d", len(daily))
	}
	if !floatsEqual(daily[0].Total, 100) {
		t.Errorf("expected grouped total 100, got %v", daily[0].Total)
	}
}

func TestDailyCounts(t *testing.T) {
	rows := []models.Sale{
		mkSale("2019-01-02", 10, 1),
		mkSale("2019-01-01", 10, 1),
		mkSale("2019-01-02", 12, 1),
	}

	counts := DailyCounts(rows)
	if len(counts) != 2 {
		t.Fatalf("expected 2 days, got %d", len(counts))
	}
	if counts[0].Count != 1 || counts[1].Count != 2 {
		t.Errorf("expected counts [1 2], got [%d %d]", counts[0].Count, counts[1].Count)
	}
}

func TestWeekdayMeans_AlwaysSevenEntriesInOrder(t *testing.T) {
	// 2019-01-07 is a Monday, 2019-01-11 a Friday.
	rows := []models.Sale{
		mkSale("2019-01-07", 10, 100),
		mkSale("2019-01-07", 11, 200),
		mkSale("2019-01-11", 12, 300),
	}

	means := WeekdayMeans(rows)
	if len(means) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(means))
	}

	wantOrder := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, want := range wantOrder {
		if means[i].Day != want {
			t.Errorf("position %d: expected %s, got %s", i, want, means[i].Day)
		}
	}

	if means[0].Mean == nil || !floatsEqual(*means[0].Mean, 150) {
		t.Errorf("expected Monday mean 150, got %v", means[0].Mean)
	}
	if means[4].Mean == nil || !floatsEqual(*means[4].Mean, 300) {
		t.Errorf("expected Friday mean 300, got %v", means[4].Mean)
	}
	if means[1].Mean != nil {
		t.Errorf("expected no value for absent Tuesday, got %v", *means[1].Mean)
	}
}

func TestWeekdayMeans_EmptyTable(t *testing.T) {
	means := WeekdayMeans(nil)
	if len(means) != 7 {
		t.Fatalf("expected 7 entries for empty table, got %d", len(means))
	}
	for _, m := range means {
		if m.Mean != nil {
			t.Errorf("expected nil mean for %s", m.Day)
		}
	}
}

func TestHourlyDistribution_Fixed24Bins(t *testing.T) {
	rows := []models.Sale{
		mkSale("2019-01-01", 13, 50),
		mkSale("2019-01-01", 13, 25),
		mkSale("2019-01-02", 0, 10),
	}

	bins := HourlyDistribution(rows)
	if len(bins) != 24 {
		t.Fatalf("expected 24 bins, got %d", len(bins))
	}
	if !floatsEqual(bins[13].Total, 75) {
		t.Errorf("expected hour 13 total 75, got %v", bins[13].Total)
	}
	if !floatsEqual(bins[0].Total, 10) {
		t.Errorf("expected hour 0 total 10, got %v", bins[0].Total)
	}
	if !floatsEqual(bins[23].Total, 0) {
		t.Errorf("expected empty hour 23, got %v", bins[23].Total)
	}
}

func TestDescriptiveStats_LinearInterpolation(t *testing.T) {
	stats := DescriptiveStats([]float64{1, 2, 3, 4})

	if !floatsEqual(stats.Mean, 2.5) {
		t.Errorf("expected mean 2.5, got %v", stats.Mean)
	}
	if !floatsEqual(stats.Median, 2.5) {
		t.Errorf("expected median 2.5, got %v", stats.Median)
	}
	if !floatsEqual(stats.Q1, 1.75) {
		t.Errorf("expected Q1 1.75, got %v", stats.Q1)
	}
	if !floatsEqual(stats.Q3, 3.25) {
		t.Errorf("expected Q3 3.25, got %v", stats.Q3)
	}
}

func TestDescriptiveStats_SingleValue(t *testing.T) {
	stats := DescriptiveStats([]float64{42})
	for name, got := range map[string]float64{
		"mean": stats.Mean, "median": stats.Median, "q1": stats.Q1, "q3": stats.Q3,
	} {
		if !floatsEqual(got, 42) {
			t.Errorf("expected %s 42, got %v", name, got)
		}
	}
}

func TestDescriptiveStats_EmptyInputIsNaN(t *testing.T) {
	stats := DescriptiveStats(nil)
	if !math.IsNaN(stats.Mean) || !math.IsNaN(stats.Median) || !math.IsNaN(stats.Q1) || !math.IsNaN(stats.Q3) {
		t.Errorf("expected NaN stats for empty input, got %+v", stats)
	}

	// NaN must survive JSON encoding as null, not fail it.
	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"mean":null`) {
		t.Errorf("expected null mean in %s", data)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	rows := []models.Sale{
		{ProductLine: "Health and beauty", Total: 100},
		{ProductLine: "Sports and travel", Total: 50},
		{ProductLine: "Health and beauty", Total: 25},
	}

	got := CategoryBreakdown(rows, ByProductLine, Total)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Category != "Health and beauty" || !floatsEqual(got[0].Total, 125) {
		t.Errorf("unexpected first group: %+v", got[0])
	}
	if got[1].Category != "Sports and travel" || !floatsEqual(got[1].Total, 50) {
		t.Errorf("unexpected second group: %+v", got[1])
	}
}

func TestCategoryStats(t *testing.T) {
	rows := []models.Sale{
		{CustomerType: "Member", Total: 10},
		{CustomerType: "Member", Total: 20},
		{CustomerType: "Normal", Total: 100},
	}

	got := CategoryStats(rows, ByCustomerType, Total)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Category != "Member" || !floatsEqual(got[0].Stats.Mean, 15) {
		t.Errorf("unexpected Member stats: %+v", got[0])
	}
	if got[1].Category != "Normal" || !floatsEqual(got[1].Stats.Median, 100) {
		t.Errorf("unexpected Normal stats: %+v", got[1])
	}
}

func TestHistogram(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	hist := Histogram(values, 5)

	if len(hist.Counts) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(hist.Counts))
	}
	if len(hist.BinEdges) != 6 {
		t.Fatalf("expected 6 edges, got %d", len(hist.BinEdges))
	}

	total := 0
	for _, c := range hist.Counts {
		total += c
	}
	if total != len(values) {
		t.Errorf("bin counts sum to %d, expected %d", total, len(values))
	}

	// The maximum lands in the last bin, not past it.
	if hist.Counts[4] == 0 {
		t.Error("expected the max value in the last bin")
	}
}

func TestHistogram_Empty(t *testing.T) {
	hist := Histogram(nil, 12)
	if len(hist.Counts) != 0 || len(hist.BinEdges) != 0 {
		t.Errorf("expected empty histogram, got %+v", hist)
	}
}

func TestPaymentMethodFrequency(t *testing.T) {
	rows := []models.Sale{
		{Payment: "Cash"},
		{Payment: "Ewallet"},
		{Payment: "Cash"},
		{Payment: "Credit card"},
	}

	got := PaymentMethodFrequency(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(got))
	}
	if got[0].Method != "Cash" || got[0].Count != 2 {
		t.Errorf("expected Cash first with count 2, got %+v", got[0])
	}
	// Ties break alphabetically.
	if got[1].Method != "Credit card" || got[2].Method != "Ewallet" {
		t.Errorf("unexpected tie order: %+v", got[1:])
	}
}

func TestCorrelationMatrix(t *testing.T) {
	rows := []models.Sale{
		{UnitPrice: 1, Total: 2, Rating: 3},
		{UnitPrice: 2, Total: 4, Rating: 2},
		{UnitPrice: 3, Total: 6, Rating: 1},
	}

	cols := []NumericColumn{UnitPrice, Total, Rating}
	matrix := CorrelationMatrix(rows, cols)

	if len(matrix.Values) != 3 {
		t.Fatalf("expected 3x3 matrix, got %dx?", len(matrix.Values))
	}

	for i := range cols {
		if !floatsEqual(matrix.Values[i][i], 1.0) {
			t.Errorf("diagonal [%d][%d] = %v, expected 1.0", i, i, matrix.Values[i][i])
		}
		for j := range cols {
			if !floatsEqual(matrix.Values[i][j], matrix.Values[j][i]) {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}

	// Total is exactly 2*UnitPrice, Rating declines as UnitPrice rises.
	if !floatsEqual(matrix.Values[0][1], 1.0) {
		t.Errorf("expected perfect correlation, got %v", matrix.Values[0][1])
	}
	if !floatsEqual(matrix.Values[0][2], -1.0) {
		t.Errorf("expected perfect inverse correlation, got %v", matrix.Values[0][2])
	}
}

func TestCorrelationMatrix_DegenerateColumnIsNaN(t *testing.T) {
	rows := []models.Sale{
		{UnitPrice: 1, Quantity: 5},
		{UnitPrice: 2, Quantity: 5},
	}

	matrix := CorrelationMatrix(rows, []NumericColumn{UnitPrice, Quantity})
	if !math.IsNaN(matrix.Values[0][1]) {
		t.Errorf("expected NaN for zero-variance column, got %v", matrix.Values[0][1])
	}

	if _, err := json.Marshal(matrix); err != nil {
		t.Errorf("matrix with NaN cells must marshal, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	rows := []models.Sale{
		mkSale("2019-01-01", 10, 100),
		mkSale("2019-01-02", 11, 300),
	}

	summary := Summary(rows)
	if !floatsEqual(summary.TotalSales, 400) {
		t.Errorf("expected total 400, got %v", summary.TotalSales)
	}
	if !floatsEqual(summary.AverageDaily, 200) {
		t.Errorf("expected daily average 200, got %v", summary.AverageDaily)
	}
	if summary.Transactions != 2 {
		t.Errorf("expected 2 transactions, got %d", summary.Transactions)
	}
}

func TestSummary_EmptyTable(t *testing.T) {
	summary := Summary(nil)
	if summary.TotalSales != 0 || summary.Transactions != 0 {
		t.Errorf("expected zero totals, got %+v", summary)
	}
	if !math.IsNaN(summary.AverageDaily) {
		t.Errorf("expected NaN daily average, got %v", summary.AverageDaily)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"average_daily":null`) {
		t.Errorf("expected null average in %s", data)
	}
}

func TestTotalSum_Empty(t *testing.T) {
	if got := TotalSum(nil); got != 0 {
		t.Errorf("expected 0 for empty table, got %v", got)
	}
}

func TestValues(t *testing.T) {
	rows := []models.Sale{{Rating: 7.5}, {Rating: 9.0}}
	got := Values(rows, Rating)
	if len(got) != 2 || got[0] != 7.5 || got[1] != 9.0 {
		t.Errorf("unexpected values: %v", got)
	}
}
