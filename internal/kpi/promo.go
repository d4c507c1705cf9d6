package kpi

import (
	"time"

	"orderscope/internal/model"
)

// PromoWindow compares the late-November promotional window against the
// rest of the dataset. The window year is inferred from the first order
// carrying a valid timestamp — a single-year heuristic kept from the
// source system; datasets spanning several Novembers fold only the
// inferred year's window.
type PromoWindow struct {
	Year int `json:"year"`

	WindowRevenueShare float64 `json:"windowRevenueShare"`

	// Penetration is the fraction of orders with discount > 0; depth is
	// the average discount over discounted orders only. Orders with no
	// discount never dilute the depth average.
	WindowDiscountRate    float64 `json:"windowDiscountRate"`
	WindowAvgDepth        float64 `json:"windowAvgDepth"`
	NonWindowDiscountRate float64 `json:"nonWindowDiscountRate"`
	NonWindowAvgDepth     float64 `json:"nonWindowAvgDepth"`
}

// Promo computes the promotional-window KPIs. The window runs Nov 20
// 00:00 through Nov 30 23:59 inclusive (implemented as an exclusive
// Dec 1 00:00 upper bound). Orders without a valid timestamp cannot be
// placed on either side and are excluded from the comparison.
func Promo(orders []model.EnrichedOrder) PromoWindow {
	var pw PromoWindow
	for _, o := range orders {
		if o.TSValid {
			pw.Year = o.Timestamp.Year()
			break
		}
	}
	if pw.Year == 0 {
		return pw
	}

	start := time.Date(pw.Year, time.November, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(pw.Year, time.December, 1, 0, 0, 0, 0, time.UTC)

	var windowRev, totalRev float64
	var window, nonWindow []model.EnrichedOrder
	for _, o := range orders {
		if !o.TSValid {
			continue
		}
		totalRev += o.Revenue
		if !o.Timestamp.Before(start) && o.Timestamp.Before(end) {
			windowRev += o.Revenue
			window = append(window, o)
		} else {
			nonWindow = append(nonWindow, o)
		}
	}
	if totalRev == 0 {
		totalRev = 1
	}
	pw.WindowRevenueShare = windowRev / totalRev
	pw.WindowDiscountRate, pw.WindowAvgDepth = discountStats(window)
	pw.NonWindowDiscountRate, pw.NonWindowAvgDepth = discountStats(nonWindow)
	return pw
}

func discountStats(orders []model.EnrichedOrder) (rate, depth float64) {
	discounted := 0
	var depthSum float64
	for _, o := range orders {
		if o.Discount > 0 {
			discounted++
			depthSum += o.Discount
		}
	}
	count := float64(len(orders))
	if count == 0 {
		count = 1
	}
	discCount := float64(discounted)
	if discCount == 0 {
		discCount = 1
	}
	return float64(discounted) / count, depthSum / discCount
}
