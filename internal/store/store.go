// Package store stages raw dataset records between ingestion and
// analysis. Only raw entities are persisted here — computed results never
// are. Duplicate ids overwrite the previous record, matching the
// last-write-wins semantics of the join lookups.
package store

import (
	"fmt"
	"sort"
	"sync"

	"orderscope/internal/model"
)

// Key prefixes per record kind.
const (
	prefixOrder    = "o#"
	prefixCustomer = "c#"
	prefixProduct  = "p#"
)

// Store abstracts the staging backend.
type Store interface {
	PutOrder(o model.Order) error
	PutCustomer(c model.Customer) error
	PutProduct(p model.Product) error
	// Dataset materializes everything staged so far, orders sorted by id
	// so repeated reads see a stable sequence.
	Dataset() (model.Dataset, error)
	Close() error
}

// MemoryStore is a simple thread-safe map store.
type MemoryStore struct {
	mu        sync.RWMutex
	orders    map[string]model.Order
	customers map[string]model.Customer
	products  map[string]model.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:    make(map[string]model.Order),
		customers: make(map[string]model.Customer),
		products:  make(map[string]model.Product),
	}
}

func (s *MemoryStore) PutOrder(o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.OrderID] = o
	return nil
}

func (s *MemoryStore) PutCustomer(c model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.CustomerID] = c
	return nil
}

func (s *MemoryStore) PutProduct(p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ProductID] = p
	return nil
}

func (s *MemoryStore) Dataset() (model.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ds model.Dataset
	for _, o := range s.orders {
		ds.Orders = append(ds.Orders, o)
	}
	sort.Slice(ds.Orders, func(i, j int) bool { return ds.Orders[i].OrderID < ds.Orders[j].OrderID })
	for _, c := range s.customers {
		ds.Customers = append(ds.Customers, c)
	}
	sort.Slice(ds.Customers, func(i, j int) bool { return ds.Customers[i].CustomerID < ds.Customers[j].CustomerID })
	for _, p := range s.products {
		ds.Products = append(ds.Products, p)
	}
	sort.Slice(ds.Products, func(i, j int) bool { return ds.Products[i].ProductID < ds.Products[j].ProductID })
	return ds, nil
}

func (s *MemoryStore) Close() error { return nil }

// Open selects a backend by name: memory, pebble or badger.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "pebble":
		return NewPebbleStore(dir)
	case "badger":
		return NewBadgerStore(dir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
