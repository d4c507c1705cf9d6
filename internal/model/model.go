package model

import "time"

// Order is a raw order row as loaded from the dataset.
type Order struct {
	OrderID       string  `json:"orderId"`
	CustomerID    string  `json:"customerId"`
	ProductID     string  `json:"productId"`
	OrderDate     string  `json:"orderDate"`
	Quantity      int64   `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	Discount      float64 `json:"discount"`
	Channel       string  `json:"channel"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Customer is a raw customer row.
type Customer struct {
	CustomerID string `json:"customerId"`
	Segment    string `json:"segment"`
	Country    string `json:"country"`
}

// Product is a raw product row.
type Product struct {
	ProductID string `json:"productId"`
	Category  string `json:"category"`
}

// Dataset bundles the three raw record sequences of one analysis run.
type Dataset struct {
	Orders    []Order    `json:"orders"`
	Customers []Customer `json:"customers"`
	Products  []Product  `json:"products"`
}

// Unknown is the placeholder for unresolved foreign keys.
const Unknown = "Unknown"

// EnrichedOrder is an Order after the denormalizing join. Revenue is
// quantity times unit price; Category/Segment/Country come from the
// product and customer lookups (Unknown when the key does not resolve).
// Timestamp carries the parsed order date; TSValid is false when the raw
// date string did not parse, and every time-bucketed metric skips such
// orders rather than folding them into an arbitrary bucket.
type EnrichedOrder struct {
	Order
	Timestamp time.Time `json:"timestamp"`
	TSValid   bool      `json:"tsValid"`
	Revenue   float64   `json:"revenue"`
	Category  string    `json:"category"`
	Segment   string    `json:"segment"`
	Country   string    `json:"country"`
}

// Accepted order_date layouts, most common first. The upstream dataset
// writes minute-precision ISO local times.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseOrderDate parses an ISO-8601-like local date/time string.
// A failed parse returns the zero time and false, never an error.
func ParseOrderDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Enrich resolves each order's product and customer foreign keys and
// derives revenue and the parsed timestamp. It is a left-outer join: an
// order with no matching product or customer is kept with placeholder
// fields, never dropped. Output preserves input order. Duplicate ids in
// the raw customer/product sequences resolve last-write-wins, same as
// repeated map insertion.
func Enrich(orders []Order, customers []Customer, products []Product) []EnrichedOrder {
	prodByID := make(map[string]Product, len(products))
	for _, p := range products {
		prodByID[p.ProductID] = p
	}
	custByID := make(map[string]Customer, len(customers))
	for _, c := range customers {
		custByID[c.CustomerID] = c
	}

	enriched := make([]EnrichedOrder, 0, len(orders))
	for _, o := range orders {
		e := EnrichedOrder{
			Order:    o,
			Revenue:  float64(o.Quantity) * o.UnitPrice,
			Category: Unknown,
			Segment:  Unknown,
			Country:  Unknown,
		}
		e.Timestamp, e.TSValid = ParseOrderDate(o.OrderDate)
		if p, ok := prodByID[o.ProductID]; ok {
			e.Category = p.Category
		}
		if c, ok := custByID[o.CustomerID]; ok {
			e.Segment = c.Segment
			e.Country = c.Country
		}
		enriched = append(enriched, e)
	}
	return enriched
}
