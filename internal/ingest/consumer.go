// Package ingest feeds raw retail records from Kafka into a staging
// store. The long-running daemon path uses the confluent client with
// manual commits; one-shot dataset assembly for the analyzer uses the
// pure-Go segmentio reader.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	ck "github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"orderscope/internal/metrics"
	"orderscope/internal/model"
	"orderscope/internal/store"
)

// Topics names the three input topics of a retail feed.
type Topics struct {
	Orders    string
	Customers string
	Products  string
}

// Config holds the Kafka settings of the ingest daemon.
type Config struct {
	Bootstrap string
	GroupID   string
	Topics    Topics
}

// Consumer drains the retail feed into a store until its context ends.
type Consumer struct {
	cfg  Config
	st   store.Store
	mreg *metrics.Registry
}

func NewConsumer(cfg Config, st store.Store, mreg *metrics.Registry) *Consumer {
	return &Consumer{cfg: cfg, st: st, mreg: mreg}
}

// Run consumes until ctx is done. Messages that fail to decode or stage
// are counted and skipped; the feed keeps moving.
func (c *Consumer) Run(ctx context.Context) error {
	consumer, err := ck.NewConsumer(&ck.ConfigMap{
		"bootstrap.servers":  c.cfg.Bootstrap,
		"group.id":           c.cfg.GroupID,
		"enable.auto.commit": false,
		"isolation.level":    "read_committed",
		"auto.offset.reset":  "earliest",
	})
	if err != nil {
		return fmt.Errorf("consumer: %w", err)
	}
	defer consumer.Close()

	topics := []string{c.cfg.Topics.Orders, c.cfg.Topics.Customers, c.cfg.Topics.Products}
	if err := consumer.SubscribeTopics(topics, nil); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	log.Printf("ingest started bootstrap=%s topics=%v", c.cfg.Bootstrap, topics)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		msg, err := consumer.ReadMessage(5 * time.Second)
		if err != nil {
			continue
		}
		topic := ""
		if msg.TopicPartition.Topic != nil {
			topic = *msg.TopicPartition.Topic
		}
		if err := c.apply(topic, msg.Value); err != nil {
			log.Printf("ingest skip topic=%s: %v", topic, err)
			c.mreg.RecordsSkipped.Inc()
			continue
		}
		if _, err := consumer.CommitMessage(msg); err != nil {
			log.Printf("ingest commit: %v", err)
		}
	}
}

// apply decodes a record by topic and stages it.
func (c *Consumer) apply(topic string, value []byte) error {
	switch topic {
	case c.cfg.Topics.Orders:
		var o model.Order
		if err := json.Unmarshal(value, &o); err != nil {
			return fmt.Errorf("unmarshal order: %w", err)
		}
		if err := c.st.PutOrder(o); err != nil {
			return fmt.Errorf("stage order: %w", err)
		}
		c.mreg.OrdersIngested.Inc()
	case c.cfg.Topics.Customers:
		var cu model.Customer
		if err := json.Unmarshal(value, &cu); err != nil {
			return fmt.Errorf("unmarshal customer: %w", err)
		}
		if err := c.st.PutCustomer(cu); err != nil {
			return fmt.Errorf("stage customer: %w", err)
		}
		c.mreg.CustomersIngested.Inc()
	case c.cfg.Topics.Products:
		var p model.Product
		if err := json.Unmarshal(value, &p); err != nil {
			return fmt.Errorf("unmarshal product: %w", err)
		}
		if err := c.st.PutProduct(p); err != nil {
			return fmt.Errorf("stage product: %w", err)
		}
		c.mreg.ProductsIngested.Inc()
	default:
		return fmt.Errorf("unexpected topic %q", topic)
	}
	return nil
}
