package models

import (
	"encoding/json"
	"math"
	"time"
)

// Sale is one row of the canonical table. Day, Month and Hour are
// computed from Date and TimeOfDay once at load time; the table is
// immutable afterwards, so they are never recomputed.
type Sale struct {
	InvoiceID    string
	Branch       string
	City         string
	CustomerType string
	Gender       string
	ProductLine  string
	UnitPrice    float64
	Quantity     int
	Tax          float64
	Total        float64
	Date         time.Time
	TimeOfDay    string
	Payment      string
	COGS         float64
	GrossIncome  float64
	Rating       float64

	Day   string
	Month string
	Hour  int
}

type Summary struct {
	TotalSales   float64 `json:"total_sales"`
	AverageDaily float64 `json:"average_daily"`
	Transactions int     `json:"transactions"`
}

// MarshalJSON renders the NaN an empty table produces as null instead
// of failing the encode.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalSales   float64  `json:"total_sales"`
		AverageDaily *float64 `json:"average_daily"`
		Transactions int      `json:"transactions"`
	}{s.TotalSales, nullableFloat(s.AverageDaily), s.Transactions})
}

type DailyTotal struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type WeekdayMean struct {
	Day  string   `json:"day"`
	Mean *float64 `json:"mean"` // nil when the weekday is absent from the data
}

type HourlyBin struct {
	Hour  int     `json:"hour"`
	Total float64 `json:"total"`
}

type DescriptiveStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

func (d DescriptiveStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mean   *float64 `json:"mean"`
		Median *float64 `json:"median"`
		Q1     *float64 `json:"q1"`
		Q3     *float64 `json:"q3"`
	}{nullableFloat(d.Mean), nullableFloat(d.Median), nullableFloat(d.Q1), nullableFloat(d.Q3)})
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type CategoryStats struct {
	Category string           `json:"category"`
	Stats    DescriptiveStats `json:"stats"`
}

type Histogram struct {
	BinEdges []float64 `json:"bin_edges"` // len(Counts)+1 edges, equal width
	Counts   []int     `json:"counts"`
}

type PaymentFrequency struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// MarshalJSON maps NaN cells (degenerate columns) to null.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		values[i] = make([]*float64, len(row))
		for j, v := range row {
			values[i][j] = nullableFloat(v)
		}
	}
	return json.Marshal(struct {
		Columns []string     `json:"columns"`
		Values  [][]*float64 `json:"values"`
	}{m.Columns, values})
}

type FilterOptions struct {
	MinDate      time.Time `json:"min_date"`
	MaxDate      time.Time `json:"max_date"`
	ProductLines []string  `json:"product_lines"`
	Months       []string  `json:"months"`
}

func nullableFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
