// Package churn classifies buyer inactivity against sliding day windows
// anchored at the dataset's most recent order.
package churn

import (
	"time"

	"orderscope/internal/model"
)

// Result is the churn classification for one window length.
type Result struct {
	WindowDays int       `json:"windowDays"`
	Rate       float64   `json:"rate"`
	Churned    int       `json:"churned"`
	Buyers     int       `json:"buyers"`
	Cutoff     time.Time `json:"cutoff"`
}

// Classify marks a buyer churned when their most recent order strictly
// predates endDate minus windowDays, where endDate is the maximum parsed
// timestamp in the dataset. A buyer whose last order lands exactly on the
// cutoff is not churned. Buyers with no parseable timestamps cannot be
// placed on the time axis and are excluded. Each call recomputes from
// scratch so different window lengths can be run against the same data.
func Classify(orders []model.EnrichedOrder, windowDays int) Result {
	lastOrder := make(map[string]time.Time)
	var endDate time.Time
	for _, o := range orders {
		if !o.TSValid {
			continue
		}
		if o.Timestamp.After(endDate) {
			endDate = o.Timestamp
		}
		if o.Timestamp.After(lastOrder[o.CustomerID]) {
			lastOrder[o.CustomerID] = o.Timestamp
		}
	}

	res := Result{WindowDays: windowDays, Buyers: len(lastOrder)}
	if res.Buyers == 0 {
		return res
	}

	res.Cutoff = endDate.AddDate(0, 0, -windowDays)
	for _, last := range lastOrder {
		if last.Before(res.Cutoff) {
			res.Churned++
		}
	}
	res.Rate = float64(res.Churned) / float64(res.Buyers)
	return res
}
