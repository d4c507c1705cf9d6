package ingest

import (
	"testing"

	"orderscope/internal/metrics"
	"orderscope/internal/model"
	"orderscope/internal/store"
)

func testConsumer() (*Consumer, *store.MemoryStore) {
	st := store.NewMemoryStore()
	cfg := Config{
		Bootstrap: "localhost:9092",
		GroupID:   "test",
		Topics:    Topics{Orders: "retail.orders", Customers: "retail.customers", Products: "retail.products"},
	}
	return NewConsumer(cfg, st, metrics.NewRegistry()), st
}

func TestApply_RoutesByTopic(t *testing.T) {
	c, st := testConsumer()

	if err := c.apply("retail.orders", []byte(`{"orderId":"O1","customerId":"C1","productId":"P1","quantity":2,"unitPrice":5}`)); err != nil {
		t.Fatalf("apply order: %v", err)
	}
	if err := c.apply("retail.customers", []byte(`{"customerId":"C1","segment":"VIP","country":"UK"}`)); err != nil {
		t.Fatalf("apply customer: %v", err)
	}
	if err := c.apply("retail.products", []byte(`{"productId":"P1","category":"Toys"}`)); err != nil {
		t.Fatalf("apply product: %v", err)
	}

	ds, err := st.Dataset()
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	if len(ds.Orders) != 1 || len(ds.Customers) != 1 || len(ds.Products) != 1 {
		t.Fatalf("dataset shape: %d/%d/%d", len(ds.Orders), len(ds.Customers), len(ds.Products))
	}
	want := model.Order{OrderID: "O1", CustomerID: "C1", ProductID: "P1", Quantity: 2, UnitPrice: 5}
	if ds.Orders[0] != want {
		t.Fatalf("order = %+v, want %+v", ds.Orders[0], want)
	}
	if ds.Customers[0].Segment != "VIP" || ds.Products[0].Category != "Toys" {
		t.Fatalf("customer/product not staged: %+v %+v", ds.Customers[0], ds.Products[0])
	}
}

func TestApply_BadPayload(t *testing.T) {
	c, st := testConsumer()

	if err := c.apply("retail.orders", []byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
	ds, err := st.Dataset()
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	if len(ds.Orders) != 0 {
		t.Fatalf("bad payload must not stage anything: %+v", ds.Orders)
	}
}

func TestApply_UnexpectedTopic(t *testing.T) {
	c, _ := testConsumer()
	if err := c.apply("retail.refunds", []byte(`{}`)); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
}

func TestApply_DuplicateIDOverwrites(t *testing.T) {
	c, st := testConsumer()

	if err := c.apply("retail.products", []byte(`{"productId":"P1","category":"Toys"}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := c.apply("retail.products", []byte(`{"productId":"P1","category":"Books"}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	ds, err := st.Dataset()
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	if len(ds.Products) != 1 || ds.Products[0].Category != "Books" {
		t.Fatalf("last write must win: %+v", ds.Products)
	}
}
