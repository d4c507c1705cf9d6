package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"orderscope/internal/model"
)

// ReadOrdersJSONL decodes one order per line. Undecodable lines are
// counted as skipped rather than failing the load.
func ReadOrdersJSONL(r io.Reader, st *LoadStats) ([]model.Order, error) {
	var orders []model.Order
	err := scanJSONL(r, st, func(raw []byte) bool {
		var o model.Order
		if json.Unmarshal(raw, &o) != nil {
			return false
		}
		orders = append(orders, o)
		return true
	})
	return orders, err
}

// ReadCustomersJSONL decodes one customer per line.
func ReadCustomersJSONL(r io.Reader, st *LoadStats) ([]model.Customer, error) {
	var customers []model.Customer
	err := scanJSONL(r, st, func(raw []byte) bool {
		var c model.Customer
		if json.Unmarshal(raw, &c) != nil {
			return false
		}
		customers = append(customers, c)
		return true
	})
	return customers, err
}

// ReadProductsJSONL decodes one product per line.
func ReadProductsJSONL(r io.Reader, st *LoadStats) ([]model.Product, error) {
	var products []model.Product
	err := scanJSONL(r, st, func(raw []byte) bool {
		var p model.Product
		if json.Unmarshal(raw, &p) != nil {
			return false
		}
		products = append(products, p)
		return true
	})
	return products, err
}

func scanJSONL(r io.Reader, st *LoadStats, decode func([]byte) bool) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !decode(line) {
			st.SkippedRows++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan jsonl: %w", err)
	}
	return nil
}
