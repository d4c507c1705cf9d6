// Package report assembles the full analysis output handed to the
// presentation layer. A Report is an immutable value object: nothing in
// it refers back to mutable engine state.
package report

import (
	"math/rand"
	"time"

	"orderscope/internal/churn"
	"orderscope/internal/cohort"
	"orderscope/internal/kpi"
	"orderscope/internal/model"
	"orderscope/internal/stats"
)

// Options control the parameterized metrics of a run.
type Options struct {
	ChurnWindows   []int
	ChannelA       string
	ChannelB       string
	BootstrapIters int
	Seed           int64
}

// DefaultOptions mirror the dashboard's fixed choices.
func DefaultOptions() Options {
	return Options{
		ChurnWindows:   []int{30, 60, 90},
		ChannelA:       "Web",
		ChannelB:       "Mobile",
		BootstrapIters: stats.DefaultIterations,
		Seed:           time.Now().UnixNano(),
	}
}

// DataQuality surfaces the degradations the engine applied instead of
// failing: unresolved joins and unparseable timestamps.
type DataQuality struct {
	UnresolvedProducts    int `json:"unresolvedProducts"`
	UnresolvedCustomers   int `json:"unresolvedCustomers"`
	UnparseableTimestamps int `json:"unparseableTimestamps"`
}

// Report is the complete output of one analysis run.
type Report struct {
	GeneratedAt time.Time `json:"generatedAt"`

	OrderCount    int `json:"orderCount"`
	CustomerCount int `json:"customerCount"`
	ProductCount  int `json:"productCount"`

	Summary  kpi.Summary           `json:"summary"`
	Promo    kpi.PromoWindow       `json:"promo"`
	Channels kpi.ChannelComparison `json:"channels"`
	Churn    []churn.Result        `json:"churn"`
	Cohorts  cohort.Matrix         `json:"cohorts"`

	Quality DataQuality `json:"quality"`
}

// Build enriches the dataset once and fans out to every metric. All
// metrics read the same immutable enriched slice; only the bootstrap
// consumes randomness, seeded from opts.
func Build(ds model.Dataset, opts Options) Report {
	enriched := model.Enrich(ds.Orders, ds.Customers, ds.Products)

	r := Report{
		GeneratedAt:   time.Now().UTC(),
		OrderCount:    len(ds.Orders),
		CustomerCount: len(ds.Customers),
		ProductCount:  len(ds.Products),
	}
	for _, e := range enriched {
		if e.Category == model.Unknown {
			r.Quality.UnresolvedProducts++
		}
		if e.Segment == model.Unknown {
			r.Quality.UnresolvedCustomers++
		}
		if !e.TSValid {
			r.Quality.UnparseableTimestamps++
		}
	}

	r.Summary = kpi.Summarize(enriched)
	r.Promo = kpi.Promo(enriched)

	est := stats.NewEstimator(rand.New(rand.NewSource(opts.Seed)), opts.BootstrapIters)
	r.Channels = kpi.CompareChannels(enriched, opts.ChannelA, opts.ChannelB, est)

	for _, w := range opts.ChurnWindows {
		r.Churn = append(r.Churn, churn.Classify(enriched, w))
	}
	r.Cohorts = cohort.Build(enriched)
	return r
}
