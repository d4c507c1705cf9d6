package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"orderscope/internal/dataset"
	"orderscope/internal/ingest"
	"orderscope/internal/model"
	"orderscope/internal/report"
	"orderscope/internal/stats"
	"orderscope/internal/store"
)

// Config holds CLI flags for the analyzer.
type Config struct {
	Input   string // csv|store|kafka
	DataDir string

	StoreBackend string // memory|pebble|badger
	StoreDir     string

	KafkaBootstrap string
	TopicOrders    string
	TopicCustomers string
	TopicProducts  string
	DrainTimeout   time.Duration

	OutputDir  string
	ReportName string

	ChurnWindows   string
	ChannelA       string
	ChannelB       string
	BootstrapIters int
	Seed           int64
}

func main() {
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("analyze failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Input, "input", "csv", "dataset source: csv|store|kafka")
	flag.StringVar(&cfg.DataDir, "data-dir", "./data", "directory with orders.csv, customers.csv, products.csv")
	flag.StringVar(&cfg.StoreBackend, "store-backend", "pebble", "staging store backend: memory|pebble|badger")
	flag.StringVar(&cfg.StoreDir, "store-dir", "./data/store", "staging store directory")
	flag.StringVar(&cfg.KafkaBootstrap, "kafka-bootstrap", "localhost:9092", "kafka bootstrap servers")
	flag.StringVar(&cfg.TopicOrders, "topic-orders", "retail.orders", "orders topic")
	flag.StringVar(&cfg.TopicCustomers, "topic-customers", "retail.customers", "customers topic")
	flag.StringVar(&cfg.TopicProducts, "topic-products", "retail.products", "products topic")
	flag.DurationVar(&cfg.DrainTimeout, "drain-timeout", 10*time.Second, "per-topic kafka drain timeout")
	flag.StringVar(&cfg.OutputDir, "output", "reports/", "report output folder")
	flag.StringVar(&cfg.ReportName, "report-name", "retail", "report file name prefix")
	flag.StringVar(&cfg.ChurnWindows, "churn-windows", "30,60,90", "comma-separated churn window lengths in days")
	flag.StringVar(&cfg.ChannelA, "channel-a", "Web", "first channel for the AOV comparison")
	flag.StringVar(&cfg.ChannelB, "channel-b", "Mobile", "second channel for the AOV comparison")
	flag.IntVar(&cfg.BootstrapIters, "bootstrap-iters", stats.DefaultIterations, "bootstrap resample count")
	flag.Int64Var(&cfg.Seed, "seed", 0, "bootstrap seed (0 = time-based)")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	start := time.Now()

	ds, loadStats, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	log.Printf("loaded orders=%d customers=%d products=%d malformed-numerics=%d skipped-rows=%d",
		len(ds.Orders), len(ds.Customers), len(ds.Products), loadStats.MalformedNumerics, loadStats.SkippedRows)

	opts := report.DefaultOptions()
	opts.ChannelA = cfg.ChannelA
	opts.ChannelB = cfg.ChannelB
	opts.BootstrapIters = cfg.BootstrapIters
	if cfg.Seed != 0 {
		opts.Seed = cfg.Seed
	}
	windows, err := parseWindows(cfg.ChurnWindows)
	if err != nil {
		return err
	}
	if len(windows) > 0 {
		opts.ChurnWindows = windows
	}

	rep := report.Build(ds, opts)

	filename := report.TimestampedFilename(cfg.OutputDir, cfg.ReportName)
	if err := report.ExportJSON(filename, rep); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	log.Printf("revenue=%.2f aov=%.2f repeat-rate=%.3f buyers=%d", rep.Summary.TotalRevenue, rep.Summary.AOV, rep.Summary.RepeatRate, rep.Summary.BuyerCount)
	log.Printf("channel %s=%.2f vs %s=%.2f diff=%.2f ci=[%.2f, %.2f]",
		rep.Channels.ChannelA, rep.Channels.MeanA, rep.Channels.ChannelB, rep.Channels.MeanB,
		rep.Channels.Diff, rep.Channels.Lo, rep.Channels.Hi)
	for _, c := range rep.Churn {
		log.Printf("churn window=%dd rate=%.3f churned=%d/%d", c.WindowDays, c.Rate, c.Churned, c.Buyers)
	}
	log.Printf("report written to %s in %v", filename, time.Since(start))
	return nil
}

func loadDataset(cfg Config) (model.Dataset, dataset.LoadStats, error) {
	var st dataset.LoadStats
	switch cfg.Input {
	case "csv":
		return dataset.LoadDir(cfg.DataDir)
	case "store":
		s, err := store.Open(cfg.StoreBackend, cfg.StoreDir)
		if err != nil {
			return model.Dataset{}, st, fmt.Errorf("open store: %w", err)
		}
		defer s.Close()
		ds, err := s.Dataset()
		return ds, st, err
	case "kafka":
		topics := ingest.Topics{Orders: cfg.TopicOrders, Customers: cfg.TopicCustomers, Products: cfg.TopicProducts}
		ds, err := ingest.Drain(strings.Split(cfg.KafkaBootstrap, ","), topics, cfg.DrainTimeout, &st)
		return ds, st, err
	default:
		return model.Dataset{}, st, fmt.Errorf("unknown input source %q", cfg.Input)
	}
}

func parseWindows(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad churn window %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
