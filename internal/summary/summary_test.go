package summary

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Flyrell/shopsum/internal/money"
	"github.com/Flyrell/shopsum/internal/period"
	"github.com/Flyrell/shopsum/internal/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOrders(t *testing.T, body string) []shopify.Order {
	t.Helper()
	orders, err := shopify.DecodeOrders(strings.NewReader(body))
	require.NoError(t, err)
	return orders
}

func order(createdAt string, ordersCount int, total string, qty ...int) shopify.Order {
	o := shopify.Order{
		CreatedAt:  createdAt,
		Customer:   shopify.Customer{OrdersCount: ordersCount},
		TotalPrice: money.MustParse(total),
	}
	for _, q := range qty {
		o.LineItems = append(o.LineItems, shopify.LineItem{Quantity: q})
	}
	return o
}

func TestSummarize_SingleOrder(t *testing.T) {
	orders := decodeOrders(t, `{"orders":[{
		"created_at": "2024-01-15T10:00:00Z",
		"total_price": "100.00",
		"total_discounts": "10.00",
		"current_subtotal_price": "90.00",
		"total_tax": "9.00",
		"current_total_price": "99.00",
		"customer": {"orders_count": 1},
		"line_items": [{"quantity": 2}],
		"total_shipping_price_set": {"shop_money": {"amount": "5.00"}}
	}]}`)

	rows, err := Summarize(orders)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "2024-01-15", r.Day)
	assert.Equal(t, New, r.CustomerType)
	assert.Equal(t, 1, r.Orders)
	assert.Equal(t, 100.0, r.GrossSales.Float64())
	assert.Equal(t, "10.00", r.Discounts.String())
	assert.Equal(t, "90.00", r.NetSales.String())
	assert.Equal(t, "9.00", r.Taxes.String())
	assert.Equal(t, "99.00", r.TotalSales.String())
	assert.Equal(t, "5.00", r.Shipping.String())
	assert.Equal(t, 2, r.QuantityOrdered)
	assert.Equal(t, "2024-01-20", r.WeekEnd)
	assert.Equal(t, "2024-01-31", r.MonthEnd)

	assert.Equal(t, "0.00", r.Returns.String())
	assert.Equal(t, "0.00", r.Additional.String())
	assert.Equal(t, "0.00", r.Duties.String())
	assert.Equal(t, 0, r.QuantityReturned)
}

func TestSummarize_Rounding(t *testing.T) {
	orders := decodeOrders(t, `{"orders":[{
		"created_at": "2024-01-15T10:00:00Z",
		"total_price": "100.333333",
		"total_discounts": "10.666666",
		"current_subtotal_price": "89.999999",
		"total_tax": "9.123456",
		"total_shipping_price_set": {"shop_money": {"amount": "5.555555"}}
	}]}`)

	rows, err := Summarize(orders)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "100.33", r.GrossSales.String())
	assert.Equal(t, "10.67", r.Discounts.String())
	assert.Equal(t, "90.00", r.NetSales.String())
	assert.Equal(t, "9.12", r.Taxes.String())
	assert.Equal(t, "5.56", r.Shipping.String())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Gross_sale":100.33`)
	assert.Contains(t, string(out), `"Net_sales":90.00`)
	assert.Contains(t, string(out), `"Shipping_":5.56`)
}

func TestSummarize_RoundsOncePerRow(t *testing.T) {
	// Three orders of 0.004 round to 0.01 in total, not 0.00 each.
	orders := []shopify.Order{
		order("2024-01-15T01:00:00Z", 1, "0.004"),
		order("2024-01-15T02:00:00Z", 1, "0.004"),
		order("2024-01-15T03:00:00Z", 1, "0.004"),
	}

	rows, err := Summarize(orders)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.01", rows[0].GrossSales.String())
	assert.Equal(t, 3, rows[0].Orders)
}

func TestSummarize_GroupsByCustomerType(t *testing.T) {
	orders := []shopify.Order{
		order("2024-01-15T10:00:00Z", 1, "10.00", 1),
		order("2024-01-15T11:00:00Z", 2, "20.00", 3),
	}

	rows, err := Summarize(orders)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-15", rows[0].Day)
	assert.Equal(t, New, rows[0].CustomerType)
	assert.Equal(t, "10.00", rows[0].GrossSales.String())
	assert.Equal(t, 1, rows[0].QuantityOrdered)

	assert.Equal(t, "2024-01-15", rows[1].Day)
	assert.Equal(t, Returning, rows[1].CustomerType)
	assert.Equal(t, "20.00", rows[1].GrossSales.String())
	assert.Equal(t, 3, rows[1].QuantityOrdered)
}

func TestSummarize_AccumulatesSameKey(t *testing.T) {
	orders := []shopify.Order{
		order("2024-03-02T08:00:00Z", 5, "12.10", 1, 1),
		order("2024-03-02T21:00:00-05:00", 3, "7.90", 4),
	}

	rows, err := Summarize(orders)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, Returning, rows[0].CustomerType)
	assert.Equal(t, 2, rows[0].Orders)
	assert.Equal(t, "20.00", rows[0].GrossSales.String())
	assert.Equal(t, 6, rows[0].QuantityOrdered)
	assert.Equal(t, "2024-03-02", rows[0].WeekEnd) // Saturday
	assert.Equal(t, "2024-03-31", rows[0].MonthEnd)
}

func TestSummarize_SortedByDayDescending(t *testing.T) {
	orders := []shopify.Order{
		order("2024-01-10T10:00:00Z", 1, "1.00"),
		order("2024-02-01T10:00:00Z", 2, "1.00"),
		order("2023-12-31T10:00:00Z", 1, "1.00"),
		order("2024-02-01T12:00:00Z", 1, "1.00"),
	}

	rows, err := Summarize(orders)
	require.NoError(t, err)

	var days []string
	for _, r := range rows {
		days = append(days, r.Day+"/"+string(r.CustomerType))
	}
	assert.Equal(t, []string{
		"2024-02-01/New",
		"2024-02-01/Returning",
		"2024-01-10/New",
		"2023-12-31/New",
	}, days)
}

func TestSummarize_Empty(t *testing.T) {
	rows, err := Summarize(nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSummarize_MalformedDate(t *testing.T) {
	orders := []shopify.Order{
		{Name: "#1002", CreatedAt: "15/01/2024 10:00"},
	}

	_, err := Summarize(orders)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#1002")

	var pe *period.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestTotals(t *testing.T) {
	orders := []shopify.Order{
		order("2024-01-15T10:00:00Z", 1, "10.005", 1),
		order("2024-01-16T10:00:00Z", 2, "20.004", 2),
	}
	rows, err := Summarize(orders)
	require.NoError(t, err)

	total := Totals(rows)
	assert.Equal(t, 2, total.Orders)
	assert.Equal(t, "30.01", total.GrossSales.String())
	assert.Equal(t, 3, total.QuantityOrdered)
	assert.Empty(t, total.Day)
}
