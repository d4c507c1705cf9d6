package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"orderscope/internal/ingest"
	"orderscope/internal/metrics"
	"orderscope/internal/report"
	"orderscope/internal/store"
)

// Config holds CLI flags for the ingest daemon.
type Config struct {
	KafkaBootstrap string
	GroupID        string
	TopicOrders    string
	TopicCustomers string
	TopicProducts  string

	StoreBackend string
	StoreDir     string

	HTTPAddr string

	// AnalyzeInterval > 0 enables periodic report builds from the staged
	// dataset; reports land in OutputDir.
	AnalyzeInterval time.Duration
	OutputDir       string
}

func main() {
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.KafkaBootstrap, "kafka-bootstrap", "localhost:9092", "kafka bootstrap servers")
	flag.StringVar(&cfg.GroupID, "group-id", "orderscope-ingest", "consumer group id")
	flag.StringVar(&cfg.TopicOrders, "topic-orders", "retail.orders", "orders topic")
	flag.StringVar(&cfg.TopicCustomers, "topic-customers", "retail.customers", "customers topic")
	flag.StringVar(&cfg.TopicProducts, "topic-products", "retail.products", "products topic")
	flag.StringVar(&cfg.StoreBackend, "store-backend", "pebble", "staging store backend: memory|pebble|badger")
	flag.StringVar(&cfg.StoreDir, "store-dir", "./data/store", "staging store directory")
	flag.StringVar(&cfg.HTTPAddr, "http-addr", ":8080", "metrics/health listen address")
	flag.DurationVar(&cfg.AnalyzeInterval, "analyze-interval", 0, "periodic analysis interval (0 disables)")
	flag.StringVar(&cfg.OutputDir, "output", "reports/", "report output folder for periodic analysis")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	st, err := store.Open(cfg.StoreBackend, cfg.StoreDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	mreg := metrics.NewRegistry()
	go func() {
		http.Handle("/metrics", mreg.Handler())
		http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
		})
		_ = http.ListenAndServe(cfg.HTTPAddr, nil)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AnalyzeInterval > 0 {
		go analyzeLoop(ctx, cfg, st, mreg)
	}

	consumer := ingest.NewConsumer(ingest.Config{
		Bootstrap: cfg.KafkaBootstrap,
		GroupID:   cfg.GroupID,
		Topics: ingest.Topics{
			Orders:    cfg.TopicOrders,
			Customers: cfg.TopicCustomers,
			Products:  cfg.TopicProducts,
		},
	}, st, mreg)
	return consumer.Run(ctx)
}

// analyzeLoop periodically materializes the staged dataset and rebuilds
// the report, recording duration and data quality.
func analyzeLoop(ctx context.Context, cfg Config, st store.Store, mreg *metrics.Registry) {
	ticker := time.NewTicker(cfg.AnalyzeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		t0 := time.Now()
		ds, err := st.Dataset()
		if err != nil {
			log.Printf("periodic analysis: dataset: %v", err)
			continue
		}
		mreg.StagedOrders.Set(float64(len(ds.Orders)))

		rep := report.Build(ds, report.DefaultOptions())
		mreg.AnalysisDurationSec.Observe(time.Since(t0).Seconds())
		mreg.UnresolvedJoins.Add(float64(rep.Quality.UnresolvedProducts + rep.Quality.UnresolvedCustomers))
		mreg.UnparseableTimestamps.Add(float64(rep.Quality.UnparseableTimestamps))

		filename := report.TimestampedFilename(cfg.OutputDir, "retail")
		if err := report.ExportJSON(filename, rep); err != nil {
			log.Printf("periodic analysis: export: %v", err)
			continue
		}
		log.Printf("periodic analysis: orders=%d revenue=%.2f -> %s", rep.OrderCount, rep.Summary.TotalRevenue, filename)
	}
}
