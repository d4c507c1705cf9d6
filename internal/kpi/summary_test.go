package kpi

import (
	"math"
	"testing"

	"orderscope/internal/model"
)

func enrich(orders []model.Order, customers []model.Customer, products []model.Product) []model.EnrichedOrder {
	return model.Enrich(orders, customers, products)
}

func TestSummarize_EndToEnd(t *testing.T) {
	// C1 orders $10 and $20 in 2023-01 and $30 in 2023-02; C2 orders $5
	// in 2023-01 and never repeats.
	orders := enrich([]model.Order{
		{OrderID: "o1", CustomerID: "C1", OrderDate: "2023-01-10T10:00", Quantity: 1, UnitPrice: 10},
		{OrderID: "o2", CustomerID: "C1", OrderDate: "2023-01-15T10:00", Quantity: 1, UnitPrice: 20},
		{OrderID: "o3", CustomerID: "C1", OrderDate: "2023-02-03T10:00", Quantity: 1, UnitPrice: 30},
		{OrderID: "o4", CustomerID: "C2", OrderDate: "2023-01-20T10:00", Quantity: 1, UnitPrice: 5},
	}, nil, nil)

	s := Summarize(orders)
	if s.TotalRevenue != 65 {
		t.Fatalf("total revenue = %v, want 65", s.TotalRevenue)
	}
	if s.RepeatRate != 0.5 {
		t.Fatalf("repeat rate = %v, want 0.5", s.RepeatRate)
	}
	if s.MonthlyRevenue[1] != 35 || s.MonthlyRevenue[2] != 30 {
		t.Fatalf("monthly revenue = %+v, want 1:35 2:30", s.MonthlyRevenue)
	}
	if s.AOV != 65.0/4 {
		t.Fatalf("aov = %v, want %v", s.AOV, 65.0/4)
	}
	// C1's 60 of 65 comes from a repeat buyer.
	if math.Abs(s.RepeatRevenueShare-60.0/65.0) > 1e-9 {
		t.Fatalf("repeat revenue share = %v, want %v", s.RepeatRevenueShare, 60.0/65.0)
	}
}

func TestSummarize_EmptyDataset(t *testing.T) {
	s := Summarize(nil)
	if s.TotalRevenue != 0 || s.AOV != 0 || s.RepeatRate != 0 || s.BuyerCount != 0 {
		t.Fatalf("empty dataset must degrade to zeros: %+v", s)
	}
}

func TestSummarize_RepeatRateBounds(t *testing.T) {
	single := enrich([]model.Order{
		{OrderID: "o1", CustomerID: "a", Quantity: 1, UnitPrice: 1},
		{OrderID: "o2", CustomerID: "b", Quantity: 1, UnitPrice: 1},
	}, nil, nil)
	if got := Summarize(single).RepeatRate; got != 0 {
		t.Fatalf("all single-order buyers: repeat rate = %v, want 0", got)
	}

	repeat := enrich([]model.Order{
		{OrderID: "o1", CustomerID: "a", Quantity: 1, UnitPrice: 1},
		{OrderID: "o2", CustomerID: "a", Quantity: 1, UnitPrice: 1},
		{OrderID: "o3", CustomerID: "b", Quantity: 1, UnitPrice: 1},
		{OrderID: "o4", CustomerID: "b", Quantity: 1, UnitPrice: 1},
	}, nil, nil)
	if got := Summarize(repeat).RepeatRate; got != 1 {
		t.Fatalf("all repeat buyers: repeat rate = %v, want 1", got)
	}
}

func TestSummarize_WeekendAndEveningShares(t *testing.T) {
	// 2023-01-07 is a Saturday; 19:00 is an evening hour.
	orders := enrich([]model.Order{
		{OrderID: "o1", CustomerID: "a", OrderDate: "2023-01-07T10:00", Quantity: 1, UnitPrice: 30}, // weekend, not evening
		{OrderID: "o2", CustomerID: "b", OrderDate: "2023-01-09T19:00", Quantity: 1, UnitPrice: 50}, // evening, not weekend
		{OrderID: "o3", CustomerID: "c", OrderDate: "2023-01-10T12:00", Quantity: 1, UnitPrice: 20}, // neither
	}, nil, nil)

	s := Summarize(orders)
	if math.Abs(s.WeekendRevenueShare-0.3) > 1e-9 {
		t.Fatalf("weekend share = %v, want 0.3", s.WeekendRevenueShare)
	}
	if math.Abs(s.EveningRevenueShare-0.5) > 1e-9 {
		t.Fatalf("evening share = %v, want 0.5", s.EveningRevenueShare)
	}
}

func TestSummarize_EveningBoundaryHours(t *testing.T) {
	orders := enrich([]model.Order{
		{OrderID: "o1", CustomerID: "a", OrderDate: "2023-03-01T18:00", Quantity: 1, UnitPrice: 1},
		{OrderID: "o2", CustomerID: "b", OrderDate: "2023-03-01T22:59", Quantity: 1, UnitPrice: 1},
		{OrderID: "o3", CustomerID: "c", OrderDate: "2023-03-01T23:00", Quantity: 1, UnitPrice: 1},
		{OrderID: "o4", CustomerID: "d", OrderDate: "2023-03-01T17:59", Quantity: 1, UnitPrice: 1},
	}, nil, nil)
	s := Summarize(orders)
	if s.EveningRevenueShare != 0.5 {
		t.Fatalf("evening window is [18,22] inclusive by hour: share = %v, want 0.5", s.EveningRevenueShare)
	}
}

func TestSummarize_InvalidTimestampsExcludedFromTimeBuckets(t *testing.T) {
	orders := enrich([]model.Order{
		{OrderID: "o1", CustomerID: "a", OrderDate: "2023-01-07T10:00", Quantity: 1, UnitPrice: 10},
		{OrderID: "o2", CustomerID: "b", OrderDate: "garbage", Quantity: 1, UnitPrice: 90},
	}, nil, nil)
	s := Summarize(orders)
	if s.TotalRevenue != 100 {
		t.Fatalf("unparseable timestamps must still count toward totals: %v", s.TotalRevenue)
	}
	var monthly float64
	for _, v := range s.MonthlyRevenue {
		monthly += v
	}
	if monthly != 10 {
		t.Fatalf("monthly revenue must exclude unparseable timestamps: %+v", s.MonthlyRevenue)
	}
}

func TestSummarize_SeasonalCategoryShares(t *testing.T) {
	orders := enrich([]model.Order{
		{OrderID: "o1", CustomerID: "a", ProductID: "toys", OrderDate: "2023-12-05T10:00", Quantity: 1, UnitPrice: 80},
		{OrderID: "o2", CustomerID: "b", ProductID: "home", OrderDate: "2023-12-06T10:00", Quantity: 1, UnitPrice: 20},
		{OrderID: "o3", CustomerID: "c", ProductID: "outdoor", OrderDate: "2023-07-01T10:00", Quantity: 1, UnitPrice: 40},
	}, nil, []model.Product{
		{ProductID: "toys", Category: "Toys"},
		{ProductID: "home", Category: "Home"},
		{ProductID: "outdoor", Category: "Outdoor"},
	})

	s := Summarize(orders)
	// Holiday mix normalizes against holiday revenue only (100), not the
	// annual total (140).
	if math.Abs(s.CategoryShareHoliday["Toys"]-0.8) > 1e-9 {
		t.Fatalf("holiday toys share = %v, want 0.8", s.CategoryShareHoliday["Toys"])
	}
	if math.Abs(s.CategoryShareSummer["Outdoor"]-1.0) > 1e-9 {
		t.Fatalf("summer outdoor share = %v, want 1.0", s.CategoryShareSummer["Outdoor"])
	}
	if math.Abs(s.CategoryShareAll["Toys"]-80.0/140.0) > 1e-9 {
		t.Fatalf("overall toys share = %v, want %v", s.CategoryShareAll["Toys"], 80.0/140.0)
	}
}

func TestSummarize_ParetoCurve(t *testing.T) {
	orders := enrich([]model.Order{
		{OrderID: "o1", CustomerID: "big", Quantity: 1, UnitPrice: 80},
		{OrderID: "o2", CustomerID: "mid", Quantity: 1, UnitPrice: 15},
		{OrderID: "o3", CustomerID: "small", Quantity: 1, UnitPrice: 5},
	}, nil, nil)
	p := Summarize(orders).Pareto
	if len(p.BuyerRevenue) != 3 || p.BuyerRevenue[0] != 80 || p.BuyerRevenue[2] != 5 {
		t.Fatalf("buyer revenues must sort descending: %+v", p.BuyerRevenue)
	}
	if math.Abs(p.CumulativeShare[0]-0.8) > 1e-9 {
		t.Fatalf("first cumulative share = %v, want 0.8", p.CumulativeShare[0])
	}
	if math.Abs(p.CumulativeShare[2]-1.0) > 1e-9 {
		t.Fatalf("last cumulative share = %v, want 1.0", p.CumulativeShare[2])
	}
}
