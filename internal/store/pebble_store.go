package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/pebble"

	"orderscope/internal/model"
)

// PebbleStore implements Store using PebbleDB. Records are stored as JSON
// under prefixed keys, so a full-range scan rebuilds the dataset with
// orders/customers/products already grouped and id-sorted.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func (p *PebbleStore) set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	// NoSync: ingestion favors throughput; the WAL still covers durability.
	if err := p.db.Set([]byte(key), b, pebble.NoSync); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (p *PebbleStore) PutOrder(o model.Order) error {
	return p.set(prefixOrder+o.OrderID, o)
}

func (p *PebbleStore) PutCustomer(c model.Customer) error {
	return p.set(prefixCustomer+c.CustomerID, c)
}

func (p *PebbleStore) PutProduct(pr model.Product) error {
	return p.set(prefixProduct+pr.ProductID, pr)
}

func (p *PebbleStore) Dataset() (model.Dataset, error) {
	var ds model.Dataset
	it, err := p.db.NewIter(nil)
	if err != nil {
		return ds, fmt.Errorf("pebble iter: %w", err)
	}
	defer it.Close()
	for it.First(); it.Valid(); it.Next() {
		key := string(it.Key())
		val := append([]byte(nil), it.Value()...)
		if err := decodeInto(&ds, key, val); err != nil {
			return ds, err
		}
	}
	return ds, nil
}

func decodeInto(ds *model.Dataset, key string, val []byte) error {
	switch {
	case strings.HasPrefix(key, prefixOrder):
		var o model.Order
		if err := json.Unmarshal(val, &o); err != nil {
			return fmt.Errorf("unmarshal %s: %w", key, err)
		}
		ds.Orders = append(ds.Orders, o)
	case strings.HasPrefix(key, prefixCustomer):
		var c model.Customer
		if err := json.Unmarshal(val, &c); err != nil {
			return fmt.Errorf("unmarshal %s: %w", key, err)
		}
		ds.Customers = append(ds.Customers, c)
	case strings.HasPrefix(key, prefixProduct):
		var p model.Product
		if err := json.Unmarshal(val, &p); err != nil {
			return fmt.Errorf("unmarshal %s: %w", key, err)
		}
		ds.Products = append(ds.Products, p)
	}
	return nil
}
