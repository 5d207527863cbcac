package shopify

import (
	"encoding/json"
	"io"

	"github.com/Flyrell/shopsum/internal/money"
)

// Order is the subset of a Shopify Admin API order read by the summary.
// Missing or null amounts decode as zero and a missing customer (or a missing
// orders_count) decodes as a first-time customer with OrdersCount 1.
type Order struct {
	ID                    int64        `json:"id"`
	Name                  string       `json:"name"`
	CreatedAt             string       `json:"created_at"`
	Customer              Customer     `json:"customer"`
	TotalPrice            money.Amount `json:"total_price"`
	SubtotalPrice         money.Amount `json:"subtotal_price"`
	CurrentSubtotalPrice  money.Amount `json:"current_subtotal_price"`
	CurrentTotalPrice     money.Amount `json:"current_total_price"`
	TotalDiscounts        money.Amount `json:"total_discounts"`
	TotalTax              money.Amount `json:"total_tax"`
	TotalDuties           money.Amount `json:"total_duties"`
	TotalShippingPriceSet PriceSet     `json:"total_shipping_price_set"`
	LineItems             []LineItem   `json:"line_items"`
}

// Customer carries the lifetime order count of the buyer.
type Customer struct {
	OrdersCount int `json:"orders_count"`
}

// PriceSet is Shopify's dual-currency price; only shop money is used.
type PriceSet struct {
	ShopMoney Money `json:"shop_money"`
}

type Money struct {
	Amount       money.Amount `json:"amount"`
	CurrencyCode string       `json:"currency_code"`
}

type LineItem struct {
	Quantity int `json:"quantity"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	p := plain{Customer: Customer{OrdersCount: 1}}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Order(p)
	return nil
}

// IsReturning reports whether the buyer had ordered before.
func (o Order) IsReturning() bool {
	return o.Customer.OrdersCount > 1
}

// Quantity returns the number of items ordered across all line items.
func (o Order) Quantity() int {
	total := 0
	for _, li := range o.LineItems {
		total += li.Quantity
	}
	return total
}

// ShippingAmount returns the shop-currency shipping total.
func (o Order) ShippingAmount() money.Amount {
	return o.TotalShippingPriceSet.ShopMoney.Amount
}

// DecodeOrders reads an orders.json response body. A body without an
// "orders" key yields an empty, non-nil list.
func DecodeOrders(r io.Reader) ([]Order, error) {
	var body struct {
		Orders []Order `json:"orders"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, err
	}
	if body.Orders == nil {
		return []Order{}, nil
	}
	return body.Orders, nil
}
