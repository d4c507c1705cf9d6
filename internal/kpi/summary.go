package kpi

import (
	"sort"
	"time"

	"orderscope/internal/model"
)

// Summary is the fixed set of descriptive KPIs computed from one enriched
// dataset. All ratios are guarded against empty denominators (divisor
// floored to 1), so a Summary over an empty dataset is all zeros.
type Summary struct {
	TotalRevenue float64 `json:"totalRevenue"`
	OrderCount   int     `json:"orderCount"`
	AOV          float64 `json:"aov"`

	BuyerCount         int     `json:"buyerCount"`
	RepeatRate         float64 `json:"repeatRate"`
	RepeatRevenueShare float64 `json:"repeatRevenueShare"`

	WeekendRevenueShare float64 `json:"weekendRevenueShare"`
	EveningRevenueShare float64 `json:"eveningRevenueShare"`

	ChannelRevenueShare map[string]float64 `json:"channelRevenueShare"`
	PaymentRevenueShare map[string]float64 `json:"paymentRevenueShare"`
	CountryRevenueShare map[string]float64 `json:"countryRevenueShare"`

	// MonthlyRevenue folds all years together by calendar month (1-12).
	// Deliberate simplification carried over from the source system.
	MonthlyRevenue map[int]float64 `json:"monthlyRevenue"`

	CategoryShareAll     map[string]float64 `json:"categoryShareAll"`
	CategoryShareHoliday map[string]float64 `json:"categoryShareHoliday"`
	CategoryShareSummer  map[string]float64 `json:"categoryShareSummer"`

	Pareto Pareto `json:"pareto"`
}

// Pareto is the buyer concentration curve: per-buyer revenues sorted
// descending and the running share of total revenue at each position.
type Pareto struct {
	BuyerRevenue    []float64 `json:"buyerRevenue"`
	CumulativeShare []float64 `json:"cumulativeShare"`
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isEvening(t time.Time) bool {
	h := t.Hour()
	return h >= 18 && h <= 22
}

// Summarize computes the full descriptive KPI set. Orders with an
// unparseable timestamp contribute to totals and categorical shares but
// are excluded from every time-bucketed metric.
func Summarize(orders []model.EnrichedOrder) Summary {
	s := Summary{OrderCount: len(orders)}

	for _, o := range orders {
		s.TotalRevenue += o.Revenue
	}
	orderCount := float64(len(orders))
	if orderCount == 0 {
		orderCount = 1
	}
	s.AOV = s.TotalRevenue / orderCount

	revDenom := s.TotalRevenue
	if revDenom == 0 {
		revDenom = 1
	}

	// Repeat metrics over buyers (customers with >=1 order).
	ordersPerBuyer := GroupSum(orders, ByCustomer, One)
	revenuePerBuyer := GroupSum(orders, ByCustomer, Revenue)
	s.BuyerCount = len(ordersPerBuyer)
	repeatBuyers := 0
	var repeatRevenue float64
	for id, n := range ordersPerBuyer {
		if n > 1 {
			repeatBuyers++
			repeatRevenue += revenuePerBuyer[id]
		}
	}
	buyerDenom := float64(s.BuyerCount)
	if buyerDenom == 0 {
		buyerDenom = 1
	}
	s.RepeatRate = float64(repeatBuyers) / buyerDenom
	s.RepeatRevenueShare = repeatRevenue / revDenom

	// Temporal shares, valid timestamps only.
	var weekendRev, eveningRev float64
	s.MonthlyRevenue = make(map[int]float64)
	for _, o := range orders {
		if !o.TSValid {
			continue
		}
		if isWeekend(o.Timestamp) {
			weekendRev += o.Revenue
		}
		if isEvening(o.Timestamp) {
			eveningRev += o.Revenue
		}
		s.MonthlyRevenue[int(o.Timestamp.Month())] += o.Revenue
	}
	s.WeekendRevenueShare = weekendRev / revDenom
	s.EveningRevenueShare = eveningRev / revDenom

	s.ChannelRevenueShare = ShareMap(GroupSum(orders, func(o model.EnrichedOrder) string { return o.Channel }, Revenue))
	s.PaymentRevenueShare = ShareMap(GroupSum(orders, func(o model.EnrichedOrder) string { return o.PaymentMethod }, Revenue))
	s.CountryRevenueShare = ShareMap(GroupSum(orders, func(o model.EnrichedOrder) string { return o.Country }, Revenue))

	byCategory := func(o model.EnrichedOrder) string { return o.Category }
	s.CategoryShareAll = ShareMap(GroupSum(orders, byCategory, Revenue))
	// Seasonal mixes normalize against their own season's revenue.
	s.CategoryShareHoliday = ShareMap(GroupSum(filterMonths(orders, 11, 12), byCategory, Revenue))
	s.CategoryShareSummer = ShareMap(GroupSum(filterMonths(orders, 6, 7, 8), byCategory, Revenue))

	s.Pareto = paretoCurve(revenuePerBuyer, revDenom)
	return s
}

func filterMonths(orders []model.EnrichedOrder, months ...time.Month) []model.EnrichedOrder {
	var out []model.EnrichedOrder
	for _, o := range orders {
		if !o.TSValid {
			continue
		}
		for _, m := range months {
			if o.Timestamp.Month() == m {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

func paretoCurve(revenuePerBuyer map[string]float64, revDenom float64) Pareto {
	revs := make([]float64, 0, len(revenuePerBuyer))
	for _, v := range revenuePerBuyer {
		revs = append(revs, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(revs)))

	cum := make([]float64, len(revs))
	var running float64
	for i, v := range revs {
		running += v
		cum[i] = running / revDenom
	}
	return Pareto{BuyerRevenue: revs, CumulativeShare: cum}
}
