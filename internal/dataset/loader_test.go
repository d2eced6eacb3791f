package dataset

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"sales-dashboard/internal/errors"
)

const validHeader = "Invoice ID,Branch,City,Customer type,Gender,Product line,Unit price,Quantity,Tax 5%,Total,Date,Time,Payment,cogs,gross income,Rating"

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp("", "sales*.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func testLoader() *Loader {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewLoader(logger, nil)
}

func TestLoader_Load_ValidData(t *testing.T) {
	csv := validHeader + `
750-67-8428,A,Yangon,Member,Female,Health and beauty,74.69,7,26.1415,548.9715,01/05/2019,13:08,Ewallet,522.83,26.1415,9.1
226-31-3081,C,Naypyitaw,Normal,Female,Electronic accessories,15.28,5,3.82,80.22,03/08/2019,10:29,Cash,76.4,3.82,9.6`

	path := createTempCSV(t, csv)
	defer os.Remove(path)

	ds, err := testLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if len(ds.Sales) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ds.Sales))
	}
	if ds.Dropped != 0 {
		t.Errorf("expected 0 dropped rows, got %d", ds.Dropped)
	}

	first := ds.Sales[0]
	if first.InvoiceID != "750-67-8428" {
		t.Errorf("expected invoice 750-67-8428, got %q", first.InvoiceID)
	}
	if first.Total != 548.9715 {
		t.Errorf("expected total 548.9715, got %v", first.Total)
	}

	// 2019-01-05 was a Saturday.
	if first.Day != "Saturday" {
		t.Errorf("expected derived day Saturday, got %q", first.Day)
	}
	if first.Month != "January" {
		t.Errorf("expected derived month January, got %q", first.Month)
	}
	if first.Hour != 13 {
		t.Errorf("expected derived hour 13, got %d", first.Hour)
	}
}

func TestLoader_Load_DropsIncompleteRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{
			name: "unparseable time",
			row:  "123-45-6789,A,Yangon,Member,Female,Food and beverages,10,1,0.5,10.5,01/05/2019,notatime,Cash,10,0.5,7",
		},
		{
			name: "unparseable date",
			row:  "123-45-6789,A,Yangon,Member,Female,Food and beverages,10,1,0.5,10.5,2019-01-05,13:08,Cash,10,0.5,7",
		},
		{
			name: "empty categorical field",
			row:  "123-45-6789,A,Yangon,Member,,Food and beverages,10,1,0.5,10.5,01/05/2019,13:08,Cash,10,0.5,7",
		},
		{
			name: "non-numeric total",
			row:  "123-45-6789,A,Yangon,Member,Female,Food and beverages,10,1,0.5,oops,01/05/2019,13:08,Cash,10,0.5,7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := validHeader + `
750-67-8428,A,Yangon,Member,Female,Health and beauty,74.69,7,26.1415,548.9715,01/05/2019,13:08,Ewallet,522.83,26.1415,9.1
` + tt.row

			path := createTempCSV(t, csv)
			defer os.Remove(path)

			ds, err := testLoader().Load(context.Background(), path)
			if err != nil {
				t.Fatalf("Load() returned error: %v", err)
			}

			if len(ds.Sales) != 1 {
				t.Errorf("expected 1 surviving row, got %d", len(ds.Sales))
			}
			if ds.Dropped != 1 {
				t.Errorf("expected 1 dropped row, got %d", ds.Dropped)
			}
		})
	}
}

func TestLoader_Load_HeaderWhitespaceStripped(t *testing.T) {
	csv := ` Invoice ID , Branch ,City,Customer type,Gender,Product line,Unit price,Quantity,Tax 5%,Total, Date ,Time,Payment,cogs,gross income,Rating
750-67-8428,A,Yangon,Member,Female,Health and beauty,74.69,7,26.1415,548.9715,01/05/2019,13:08,Ewallet,522.83,26.1415,9.1`

	path := createTempCSV(t, csv)
	defer os.Remove(path)

	ds, err := testLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(ds.Sales) != 1 {
		t.Errorf("expected 1 row, got %d", len(ds.Sales))
	}
}

func TestLoader_Load_MissingRequiredColumn(t *testing.T) {
	csv := `Invoice ID,Branch,City,Customer type,Gender,Product line,Unit price,Quantity,Tax 5%,Date,Time,Payment,cogs,gross income,Rating
750-67-8428,A,Yangon,Member,Female,Health and beauty,74.69,7,26.1415,01/05/2019,13:08,Ewallet,522.83,26.1415,9.1`

	path := createTempCSV(t, csv)
	defer os.Remove(path)

	_, err := testLoader().Load(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for missing Total column")
	}
	if !errors.IsCode(err, errors.CodeSchema) {
		t.Errorf("expected SCHEMA_ERROR, got %v", err)
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := testLoader().Load(context.Background(), "does-not-exist.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.IsCode(err, errors.CodeSourceUnavailable) {
		t.Errorf("expected SOURCE_UNAVAILABLE, got %v", err)
	}
}

func TestLoader_Load_PreservesFileOrder(t *testing.T) {
	csv := validHeader + `
111-11-1111,A,Yangon,Member,Female,Health and beauty,1,1,0.05,1.05,01/05/2019,09:00,Cash,1,0.05,7
222-22-2222,B,Mandalay,Normal,Male,Sports and travel,2,1,0.1,2.1,01/04/2019,10:00,Cash,2,0.1,8
333-33-3333,C,Naypyitaw,Member,Male,Food and beverages,3,1,0.15,3.15,01/06/2019,11:00,Cash,3,0.15,9`

	path := createTempCSV(t, csv)
	defer os.Remove(path)

	ds, err := testLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	want := []string{"111-11-1111", "222-22-2222", "333-33-3333"}
	for i, invoice := range want {
		if ds.Sales[i].InvoiceID != invoice {
			t.Errorf("row %d: expected invoice %s, got %s", i, invoice, ds.Sales[i].InvoiceID)
		}
	}
}
