package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"orderscope/internal/model"
)

// BadgerStore implements Store using BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(filepath.Clean(dir))
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Close() error { return b.db.Close() }

func (b *BadgerStore) set(key string, v any) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (b *BadgerStore) PutOrder(o model.Order) error {
	return b.set(prefixOrder+o.OrderID, o)
}

func (b *BadgerStore) PutCustomer(c model.Customer) error {
	return b.set(prefixCustomer+c.CustomerID, c)
}

func (b *BadgerStore) PutProduct(p model.Product) error {
	return b.set(prefixProduct+p.ProductID, p)
}

func (b *BadgerStore) Dataset() (model.Dataset, error) {
	var ds model.Dataset
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := decodeInto(&ds, key, val); err != nil {
				return err
			}
		}
		return nil
	})
	return ds, err
}
