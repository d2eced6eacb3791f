package analytics

import "sales-dashboard/internal/models"

// CategoryColumn names a categorical field of a Sale. The values match
// the source file's header so API callers can use the names they see
// in the data.
type CategoryColumn string

const (
	ByBranch       CategoryColumn = "Branch"
	ByCity         CategoryColumn = "City"
	ByCustomerType CategoryColumn = "Customer type"
	ByGender       CategoryColumn = "Gender"
	ByProductLine  CategoryColumn = "Product line"
	ByPayment      CategoryColumn = "Payment"
)

var categoryColumns = map[CategoryColumn]func(models.Sale) string{
	ByBranch:       func(s models.Sale) string { return s.Branch },
	ByCity:         func(s models.Sale) string { return s.City },
	ByCustomerType: func(s models.Sale) string { return s.CustomerType },
	ByGender:       func(s models.Sale) string { return s.Gender },
	ByProductLine:  func(s models.Sale) string { return s.ProductLine },
	ByPayment:      func(s models.Sale) string { return s.Payment },
}

func (c CategoryColumn) Valid() bool {
	_, ok := categoryColumns[c]
	return ok
}

func (c CategoryColumn) Of(s models.Sale) string {
	if get, ok := categoryColumns[c]; ok {
		return get(s)
	}
	return ""
}

// NumericColumn names a numeric field of a Sale.
type NumericColumn string

const (
	UnitPrice   NumericColumn = "Unit price"
	Quantity    NumericColumn = "Quantity"
	Tax         NumericColumn = "Tax 5%"
	Total       NumericColumn = "Total"
	COGS        NumericColumn = "cogs"
	GrossIncome NumericColumn = "gross income"
	Rating      NumericColumn = "Rating"
)

var numericColumns = map[NumericColumn]func(models.Sale) float64{
	UnitPrice:   func(s models.Sale) float64 { return s.UnitPrice },
	Quantity:    func(s models.Sale) float64 { return float64(s.Quantity) },
	Tax:         func(s models.Sale) float64 { return s.Tax },
	Total:       func(s models.Sale) float64 { return s.Total },
	COGS:        func(s models.Sale) float64 { return s.COGS },
	GrossIncome: func(s models.Sale) float64 { return s.GrossIncome },
	Rating:      func(s models.Sale) float64 { return s.Rating },
}

func (n NumericColumn) Valid() bool {
	_, ok := numericColumns[n]
	return ok
}

func (n NumericColumn) Of(s models.Sale) float64 {
	if get, ok := numericColumns[n]; ok {
		return get(s)
	}
	return 0
}

// NumericColumns lists every numeric column in header order.
func NumericColumns() []NumericColumn {
	return []NumericColumn{UnitPrice, Quantity, Tax, Total, COGS, GrossIncome, Rating}
}

// Values extracts one numeric column from the table.
func Values(rows []models.Sale, col NumericColumn) []float64 {
	out := make([]float64, len(rows))
	for i, s := range rows {
		out[i] = col.Of(s)
	}
	return out
}
