// Package dataset loads and writes the three raw record files of an
// analysis run. Loading is deliberately forgiving: the engine treats a
// missing or non-numeric quantity, price, or discount as 0 instead of
// rejecting the row, and unknown columns are ignored.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"orderscope/internal/model"
)

// LoadStats counts the degradations applied while loading.
type LoadStats struct {
	MalformedNumerics int
	SkippedRows       int
}

// columnIndex maps lower-cased header names to their positions.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (st *LoadStats) floatField(row []string, idx map[string]int, name string) float64 {
	s := field(row, idx, name)
	if s == "" {
		st.MalformedNumerics++
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		st.MalformedNumerics++
		return 0
	}
	return v
}

func (st *LoadStats) intField(row []string, idx map[string]int, name string) int64 {
	s := field(row, idx, name)
	if s == "" {
		st.MalformedNumerics++
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		st.MalformedNumerics++
		return 0
	}
	return v
}

// ReadOrdersCSV parses an orders.csv stream. The header row names the
// columns; extra columns are skipped.
func ReadOrdersCSV(r io.Reader, st *LoadStats) ([]model.Order, error) {
	rows, idx, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("orders csv: %w", err)
	}
	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, model.Order{
			OrderID:       field(row, idx, "order_id"),
			OrderDate:     field(row, idx, "order_date"),
			CustomerID:    field(row, idx, "customer_id"),
			ProductID:     field(row, idx, "product_id"),
			Quantity:      st.intField(row, idx, "quantity"),
			UnitPrice:     st.floatField(row, idx, "unit_price"),
			Discount:      st.floatField(row, idx, "discount"),
			Channel:       field(row, idx, "channel"),
			PaymentMethod: field(row, idx, "payment_method"),
		})
	}
	return orders, nil
}

// ReadCustomersCSV parses a customers.csv stream.
func ReadCustomersCSV(r io.Reader) ([]model.Customer, error) {
	rows, idx, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("customers csv: %w", err)
	}
	customers := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, model.Customer{
			CustomerID: field(row, idx, "customer_id"),
			Segment:    field(row, idx, "segment"),
			Country:    field(row, idx, "country"),
		})
	}
	return customers, nil
}

// ReadProductsCSV parses a products.csv stream.
func ReadProductsCSV(r io.Reader) ([]model.Product, error) {
	rows, idx, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("products csv: %w", err)
	}
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, model.Product{
			ProductID: field(row, idx, "product_id"),
			Category:  field(row, idx, "category"),
		})
	}
	return products, nil
}

func readAll(r io.Reader) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, map[string]int{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, columnIndex(header), nil
}

// LoadDir loads orders.csv, customers.csv and products.csv from dir.
func LoadDir(dir string) (model.Dataset, LoadStats, error) {
	var ds model.Dataset
	var st LoadStats

	of, err := os.Open(filepath.Join(dir, "orders.csv"))
	if err != nil {
		return ds, st, fmt.Errorf("open orders: %w", err)
	}
	defer of.Close()
	if ds.Orders, err = ReadOrdersCSV(of, &st); err != nil {
		return ds, st, err
	}

	cf, err := os.Open(filepath.Join(dir, "customers.csv"))
	if err != nil {
		return ds, st, fmt.Errorf("open customers: %w", err)
	}
	defer cf.Close()
	if ds.Customers, err = ReadCustomersCSV(cf); err != nil {
		return ds, st, err
	}

	pf, err := os.Open(filepath.Join(dir, "products.csv"))
	if err != nil {
		return ds, st, fmt.Errorf("open products: %w", err)
	}
	defer pf.Close()
	if ds.Products, err = ReadProductsCSV(pf); err != nil {
		return ds, st, err
	}
	return ds, st, nil
}
