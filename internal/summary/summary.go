package summary

import (
	"fmt"
	"sort"

	"github.com/Flyrell/shopsum/internal/money"
	"github.com/Flyrell/shopsum/internal/period"
	"github.com/Flyrell/shopsum/internal/shopify"
)

// CustomerType classifies the buyer of an order.
type CustomerType string

const (
	New       CustomerType = "New"
	Returning CustomerType = "Returning"
)

// CustomerTypeOf returns Returning when the buyer has more than one lifetime
// order.
func CustomerTypeOf(o shopify.Order) CustomerType {
	if o.IsReturning() {
		return Returning
	}
	return New
}

// DailySummary is one row of the report for a (day, customer type) pair.
// Returns, Additional and QuantityReturned are always zero: refunds are not
// consumed.
type DailySummary struct {
	Day              string       `json:"Day"`
	CustomerType     CustomerType `json:"New_or_re"`
	Orders           int          `json:"Orders"`
	GrossSales       money.Fixed  `json:"Gross_sale"`
	Discounts        money.Fixed  `json:"Discounts"`
	Returns          money.Fixed  `json:"Returns"`
	NetSales         money.Fixed  `json:"Net_sales"`
	Shipping         money.Fixed  `json:"Shipping_"`
	Duties           money.Fixed  `json:"Duties"`
	Additional       money.Fixed  `json:"Additional_"`
	Taxes            money.Fixed  `json:"Taxes"`
	TotalSales       money.Fixed  `json:"Total_sales"`
	QuantityOrdered  int          `json:"Quantity_c"`
	QuantityReturned int          `json:"Quantity_r"`
	WeekEnd          string       `json:"Week_End"`
	MonthEnd         string       `json:"Month_End"`
}

type groupKey struct {
	day      string
	customer CustomerType
}

// accumulator keeps exact running sums until the row is finalized.
type accumulator struct {
	key      groupKey
	ends     period.Ends
	orders   int
	gross    money.Amount
	discount money.Amount
	net      money.Amount
	shipping money.Amount
	duties   money.Amount
	taxes    money.Amount
	total    money.Amount
	quantity int
}

func (a *accumulator) add(o shopify.Order) {
	a.orders++
	a.gross = a.gross.Add(o.TotalPrice)
	a.discount = a.discount.Add(o.TotalDiscounts)
	a.net = a.net.Add(o.CurrentSubtotalPrice)
	a.shipping = a.shipping.Add(o.ShippingAmount())
	a.duties = a.duties.Add(o.TotalDuties)
	a.taxes = a.taxes.Add(o.TotalTax)
	a.total = a.total.Add(o.CurrentTotalPrice)
	a.quantity += o.Quantity()
}

func (a *accumulator) finalize() DailySummary {
	return DailySummary{
		Day:             a.key.day,
		CustomerType:    a.key.customer,
		Orders:          a.orders,
		GrossSales:      a.gross.Cents(),
		Discounts:       a.discount.Cents(),
		NetSales:        a.net.Cents(),
		Shipping:        a.shipping.Cents(),
		Duties:          a.duties.Cents(),
		Taxes:           a.taxes.Cents(),
		TotalSales:      a.total.Cents(),
		QuantityOrdered: a.quantity,
		WeekEnd:         a.ends.WeekEnd,
		MonthEnd:        a.ends.MonthEnd,
	}
}

// Summarize groups orders by creation day and customer type and sums their
// amounts. Sums are exact and rounded to cents only once per row. Rows are
// sorted by day, most recent first; on the same day New precedes Returning.
func Summarize(orders []shopify.Order) ([]DailySummary, error) {
	index := make(map[groupKey]*accumulator)
	var ordered []*accumulator

	for i, o := range orders {
		day, err := period.DayOf(o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", orderRef(i, o), err)
		}
		key := groupKey{day: day, customer: CustomerTypeOf(o)}

		acc, ok := index[key]
		if !ok {
			ends, err := period.EndsOf(day)
			if err != nil {
				return nil, fmt.Errorf("order %s: %w", orderRef(i, o), err)
			}
			acc = &accumulator{key: key, ends: ends}
			index[key] = acc
			ordered = append(ordered, acc)
		}
		acc.add(o)
	}

	rows := make([]DailySummary, 0, len(ordered))
	for _, acc := range ordered {
		rows = append(rows, acc.finalize())
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Day != rows[j].Day {
			return rows[i].Day > rows[j].Day
		}
		return rows[i].CustomerType == New && rows[j].CustomerType == Returning
	})
	return rows, nil
}

// Totals adds up a set of rows into a single row with no day or period ends.
func Totals(rows []DailySummary) DailySummary {
	var t DailySummary
	for _, r := range rows {
		t.Orders += r.Orders
		t.GrossSales = t.GrossSales.Add(r.GrossSales)
		t.Discounts = t.Discounts.Add(r.Discounts)
		t.Returns = t.Returns.Add(r.Returns)
		t.NetSales = t.NetSales.Add(r.NetSales)
		t.Shipping = t.Shipping.Add(r.Shipping)
		t.Duties = t.Duties.Add(r.Duties)
		t.Additional = t.Additional.Add(r.Additional)
		t.Taxes = t.Taxes.Add(r.Taxes)
		t.TotalSales = t.TotalSales.Add(r.TotalSales)
		t.QuantityOrdered += r.QuantityOrdered
		t.QuantityReturned += r.QuantityReturned
	}
	return t
}

func orderRef(i int, o shopify.Order) string {
	if o.Name != "" {
		return o.Name
	}
	if o.ID != 0 {
		return fmt.Sprintf("%d", o.ID)
	}
	return fmt.Sprintf("#%d in page", i+1)
}
