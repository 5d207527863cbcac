package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Flyrell/shopsum/internal/summary"
)

// Columns are the sheet headers, in output order.
var Columns = []string{
	"Day",
	"New_or_re",
	"Orders",
	"Gross_sale",
	"Discounts",
	"Returns",
	"Net_sales",
	"Shipping_",
	"Duties",
	"Additional_",
	"Taxes",
	"Total_sales",
	"Quantity_c",
	"Quantity_r",
	"Week_End",
	"Month_End",
}

// Record returns a row's cells in Columns order. Amounts keep two decimals.
func Record(r summary.DailySummary) []string {
	return []string{
		r.Day,
		string(r.CustomerType),
		strconv.Itoa(r.Orders),
		r.GrossSales.String(),
		r.Discounts.String(),
		r.Returns.String(),
		r.NetSales.String(),
		r.Shipping.String(),
		r.Duties.String(),
		r.Additional.String(),
		r.Taxes.String(),
		r.TotalSales.String(),
		strconv.Itoa(r.QuantityOrdered),
		strconv.Itoa(r.QuantityReturned),
		r.WeekEnd,
		r.MonthEnd,
	}
}

// WriteCSV writes the header row followed by one record per summary row.
func WriteCSV(w io.Writer, rows []summary.DailySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(Record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the CSV export to path, replacing any existing file.
func WriteCSVFile(path string, rows []summary.DailySummary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, rows)
}
