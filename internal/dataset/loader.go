package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

const (
	// DateLayout parses both padded and unpadded month/day values.
	DateLayout = "1/2/2006"
	TimeLayout = "15:04"

	batchSize  = 2048
	maxWorkers = 8
)

// requiredColumns are the header names the dashboard reads. Loading
// fails when any of them is absent.
var requiredColumns = []string{
	"Invoice ID",
	"Branch",
	"City",
	"Customer type",
	"Gender",
	"Product line",
	"Unit price",
	"Quantity",
	"Tax 5%",
	"Total",
	"Date",
	"Time",
	"Payment",
	"cogs",
	"gross income",
	"Rating",
}

// Dataset is the canonical table: parsed, derived-column-augmented and
// free of incomplete rows. Treat it as immutable after Load.
type Dataset struct {
	Sales    []models.Sale
	Source   string
	Dropped  int // rows discarded for unparseable or missing fields
	LoadedAt time.Time
}

type Loader struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewLoader(logger *slog.Logger, metrics *observability.Metrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, metrics: metrics}
}

// Load reads a delimited sales export into a Dataset. The same file
// contents always produce the same table, so callers may cache results
// by source identity.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		l.countLoad("error")
		return nil, errors.SourceUnavailableWrap(err, fmt.Sprintf("cannot open dataset %q", path))
	}
	defer file.Close()

	ds, err := l.parse(ctx, file)
	if err != nil {
		l.countLoad("error")
		return nil, err
	}
	ds.Source = path

	l.logger.Info("dataset loaded",
		"source", path,
		"rows", len(ds.Sales),
		"dropped", ds.Dropped,
		"duration", time.Since(start),
	)
	l.countLoad("success")
	if l.metrics != nil {
		l.metrics.DatasetRows.Set(float64(len(ds.Sales)))
		l.metrics.DatasetRowsDropped.Add(float64(ds.Dropped))
	}

	return ds, nil
}

func (l *Loader) countLoad(result string) {
	if l.metrics != nil {
		l.metrics.DatasetLoads.WithLabelValues(result).Inc()
	}
}

func (l *Loader) parse(ctx context.Context, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.SchemaWrap(err, "dataset has no header row")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, errors.Schema(fmt.Sprintf("required column %q missing from header", name))
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.SourceUnavailableWrap(err, "cannot read dataset rows")
	}

	// Parse in index-preserving batches so the canonical table keeps
	// file order.
	parsed := make([]*models.Sale, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for batchStart := 0; batchStart < len(records); batchStart += batchSize {
		batchEnd := min(batchStart+batchSize, len(records))
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			for i := batchStart; i < batchEnd; i++ {
				if sale, ok := parseSale(columns, records[i]); ok {
					parsed[i] = &sale
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sales := make([]models.Sale, 0, len(parsed))
	dropped := 0
	for _, sale := range parsed {
		if sale == nil {
			dropped++
			continue
		}
		sales = append(sales, *sale)
	}

	return &Dataset{
		Sales:    sales,
		Dropped:  dropped,
		LoadedAt: time.Now(),
	}, nil
}

// parseSale converts one record into a Sale. Any missing or
// unparseable field marks the whole row incomplete; incomplete rows
// are dropped, not errors.
func parseSale(columns map[string]int, record []string) (models.Sale, bool) {
	field := func(name string) (string, bool) {
		idx := columns[name]
		if idx >= len(record) {
			return "", false
		}
		value := strings.TrimSpace(record[idx])
		return value, value != ""
	}
	floatField := func(name string) (float64, bool) {
		raw, ok := field(name)
		if !ok {
			return 0, false
		}
		value, err := strconv.ParseFloat(raw, 64)
		return value, err == nil
	}

	var sale models.Sale
	var ok bool

	if sale.InvoiceID, ok = field("Invoice ID"); !ok {
		return models.Sale{}, false
	}
	if sale.Branch, ok = field("Branch"); !ok {
		return models.Sale{}, false
	}
	if sale.City, ok = field("City"); !ok {
		return models.Sale{}, false
	}
	if sale.CustomerType, ok = field("Customer type"); !ok {
		return models.Sale{}, false
	}
	if sale.Gender, ok = field("Gender"); !ok {
		return models.Sale{}, false
	}
	if sale.ProductLine, ok = field("Product line"); !ok {
		return models.Sale{}, false
	}
	if sale.Payment, ok = field("Payment"); !ok {
		return models.Sale{}, false
	}

	if sale.UnitPrice, ok = floatField("Unit price"); !ok {
		return models.Sale{}, false
	}
	if sale.Tax, ok = floatField("Tax 5%"); !ok {
		return models.Sale{}, false
	}
	if sale.Total, ok = floatField("Total"); !ok {
		return models.Sale{}, false
	}
	if sale.COGS, ok = floatField("cogs"); !ok {
		return models.Sale{}, false
	}
	if sale.GrossIncome, ok = floatField("gross income"); !ok {
		return models.Sale{}, false
	}
	if sale.Rating, ok = floatField("Rating"); !ok {
		return models.Sale{}, false
	}

	rawQuantity, ok := field("Quantity")
	if !ok {
		return models.Sale{}, false
	}
	quantity, err := strconv.Atoi(rawQuantity)
	if err != nil {
		return models.Sale{}, false
	}
	sale.Quantity = quantity

	rawDate, ok := field("Date")
	if !ok {
		return models.Sale{}, false
	}
	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return models.Sale{}, false
	}
	sale.Date = date

	rawTime, ok := field("Time")
	if !ok {
		return models.Sale{}, false
	}
	timeOfDay, err := time.Parse(TimeLayout, rawTime)
	if err != nil {
		return models.Sale{}, false
	}
	sale.TimeOfDay = timeOfDay.Format(TimeLayout)

	sale.Day = date.Weekday().String()
	sale.Month = date.Month().String()
	sale.Hour = timeOfDay.Hour()

	return sale, true
}
