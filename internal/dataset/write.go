package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"orderscope/internal/model"
)

// WriteDir writes the three CSV files of a dataset under dir, creating it
// if needed. Column layout matches what the loaders expect.
func WriteDir(dir string, ds model.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := writeCSV(filepath.Join(dir, "orders.csv"), ordersHeader, ordersRows(ds.Orders)); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "customers.csv"), customersHeader, customersRows(ds.Customers)); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "products.csv"), productsHeader, productsRows(ds.Products))
}

var (
	ordersHeader    = []string{"order_id", "order_date", "customer_id", "product_id", "quantity", "unit_price", "discount", "channel", "payment_method"}
	customersHeader = []string{"customer_id", "segment", "country"}
	productsHeader  = []string{"product_id", "category"}
)

func ordersRows(orders []model.Order) [][]string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.OrderID, o.OrderDate, o.CustomerID, o.ProductID,
			strconv.FormatInt(o.Quantity, 10),
			strconv.FormatFloat(o.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(o.Discount, 'f', 2, 64),
			o.Channel, o.PaymentMethod,
		})
	}
	return rows
}

func customersRows(customers []model.Customer) [][]string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{c.CustomerID, c.Segment, c.Country})
	}
	return rows
}

func productsRows(products []model.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.ProductID, p.Category})
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
