package dataset

import (
	"strings"
	"testing"

	"orderscope/internal/model"
)

func TestReadOrdersCSV_HeaderMappingAndExtras(t *testing.T) {
	// Extra columns are ignored; order of columns follows the header,
	// not a fixed layout.
	csv := strings.Join([]string{
		"order_date,order_id,customer_id,product_id,quantity,unit_price,discount,channel,payment_method,campaign",
		"2023-01-05T19:30,O1,C1,P1,2,10.50,0.10,Web,PayPal,spring",
	}, "\n")
	var st LoadStats
	orders, err := ReadOrdersCSV(strings.NewReader(csv), &st)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(orders))
	}
	o := orders[0]
	if o.OrderID != "O1" || o.Quantity != 2 || o.UnitPrice != 10.50 || o.Discount != 0.10 {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.Channel != "Web" || o.PaymentMethod != "PayPal" || o.OrderDate != "2023-01-05T19:30" {
		t.Fatalf("unexpected order fields: %+v", o)
	}
	if st.MalformedNumerics != 0 {
		t.Fatalf("no malformed fields expected, counted %d", st.MalformedNumerics)
	}
}

func TestReadOrdersCSV_MalformedNumericsBecomeZero(t *testing.T) {
	csv := strings.Join([]string{
		"order_id,order_date,customer_id,product_id,quantity,unit_price,discount,channel,payment_method",
		"O1,2023-01-05T19:30,C1,P1,two,abc,,Web,PayPal",
	}, "\n")
	var st LoadStats
	orders, err := ReadOrdersCSV(strings.NewReader(csv), &st)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	o := orders[0]
	if o.Quantity != 0 || o.UnitPrice != 0 || o.Discount != 0 {
		t.Fatalf("malformed numerics must degrade to zero: %+v", o)
	}
	if st.MalformedNumerics != 3 {
		t.Fatalf("malformed count = %d, want 3", st.MalformedNumerics)
	}
}

func TestReadCustomersCSV_OriginalColumnLayout(t *testing.T) {
	// The upstream generator writes many more columns; only the three
	// the engine uses are picked up.
	csv := strings.Join([]string{
		"customer_id,first_name,last_name,email,signup_date,city,state,country,segment,activity_score,total_orders,total_spent",
		"C0001,Alex,Smith,alex.smith1@example.com,2022-03-01,London,,UK,VIP,2.31,4,312.50",
	}, "\n")
	customers, err := ReadCustomersCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	c := customers[0]
	if c.CustomerID != "C0001" || c.Segment != "VIP" || c.Country != "UK" {
		t.Fatalf("unexpected customer: %+v", c)
	}
}

func TestReadProductsCSV_Empty(t *testing.T) {
	products, err := ReadProductsCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("want no products, got %+v", products)
	}
}

func TestWriteDirLoadDir_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := model.Dataset{
		Orders: []model.Order{
			{OrderID: "O1", OrderDate: "2023-01-05T19:30", CustomerID: "C1", ProductID: "P1", Quantity: 2, UnitPrice: 10.5, Discount: 0.1, Channel: "Web", PaymentMethod: "PayPal"},
		},
		Customers: []model.Customer{{CustomerID: "C1", Segment: "VIP", Country: "USA"}},
		Products:  []model.Product{{ProductID: "P1", Category: "Toys"}},
	}
	if err := WriteDir(dir, ds); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, st, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.MalformedNumerics != 0 {
		t.Fatalf("round trip must not malform numerics: %+v", st)
	}
	if len(got.Orders) != 1 || got.Orders[0] != ds.Orders[0] {
		t.Fatalf("orders round trip mismatch: %+v", got.Orders)
	}
	if len(got.Customers) != 1 || got.Customers[0] != ds.Customers[0] {
		t.Fatalf("customers round trip mismatch: %+v", got.Customers)
	}
	if len(got.Products) != 1 || got.Products[0] != ds.Products[0] {
		t.Fatalf("products round trip mismatch: %+v", got.Products)
	}
}

func TestLoadDir_MissingFiles(t *testing.T) {
	if _, _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing csv files")
	}
}
