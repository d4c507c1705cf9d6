package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"orderscope/internal/dataset"
	"orderscope/internal/model"
)

// Drain assembles a one-shot dataset by reading each feed topic from the
// beginning until no message arrives within the per-topic timeout. Meant
// for small dev topics read by the analyzer, same simplification as
// reading a compacted topic front to back.
func Drain(brokers []string, topics Topics, timeout time.Duration, st *dataset.LoadStats) (model.Dataset, error) {
	var ds model.Dataset

	err := drainTopic(brokers, topics.Orders, timeout, st, func(raw []byte) bool {
		var o model.Order
		if json.Unmarshal(raw, &o) != nil {
			return false
		}
		ds.Orders = append(ds.Orders, o)
		return true
	})
	if err != nil {
		return ds, fmt.Errorf("drain orders: %w", err)
	}

	err = drainTopic(brokers, topics.Customers, timeout, st, func(raw []byte) bool {
		var c model.Customer
		if json.Unmarshal(raw, &c) != nil {
			return false
		}
		ds.Customers = append(ds.Customers, c)
		return true
	})
	if err != nil {
		return ds, fmt.Errorf("drain customers: %w", err)
	}

	err = drainTopic(brokers, topics.Products, timeout, st, func(raw []byte) bool {
		var p model.Product
		if json.Unmarshal(raw, &p) != nil {
			return false
		}
		ds.Products = append(ds.Products, p)
		return true
	})
	if err != nil {
		return ds, fmt.Errorf("drain products: %w", err)
	}
	return ds, nil
}

func drainTopic(brokers []string, topic string, timeout time.Duration, st *dataset.LoadStats, decode func([]byte) bool) error {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil // topic drained
			}
			return fmt.Errorf("read kafka: %w", err)
		}
		if !decode(m.Value) {
			st.SkippedRows++
		}
	}
}
