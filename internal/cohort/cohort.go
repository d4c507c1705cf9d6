// Package cohort builds the monthly acquisition-cohort retention matrix.
package cohort

import (
	"sort"

	"orderscope/internal/model"
)

// Matrix is the cohort-by-month retention table. Months is the sorted
// union of every cohort key and every active month, ascending (YYYY-MM
// sorts chronologically). Cells[i][j] is nil when month j precedes cohort
// i's own month — a cohort cannot retain before it exists — otherwise the
// fraction of cohort i's buyers active in month j.
type Matrix struct {
	Months  []string     `json:"months"`
	Cohorts []string     `json:"cohorts"`
	Cells   [][]*float64 `json:"cells"`
}

const monthKeyLayout = "2006-01"

// Build derives the retention matrix from the enriched orders. Orders
// without a valid timestamp carry no month and are ignored throughout.
func Build(orders []model.EnrichedOrder) Matrix {
	// Stable sort by timestamp so each buyer's first order is the first
	// occurrence in scan order.
	sorted := make([]model.EnrichedOrder, 0, len(orders))
	for _, o := range orders {
		if o.TSValid {
			sorted = append(sorted, o)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	// Cohort membership: buyers grouped by the month of their first order.
	cohorts := make(map[string]map[string]struct{})
	firstSeen := make(map[string]struct{})
	for _, o := range sorted {
		if _, ok := firstSeen[o.CustomerID]; ok {
			continue
		}
		firstSeen[o.CustomerID] = struct{}{}
		key := o.Timestamp.Format(monthKeyLayout)
		if cohorts[key] == nil {
			cohorts[key] = make(map[string]struct{})
		}
		cohorts[key][o.CustomerID] = struct{}{}
	}

	// Distinct active buyers per calendar month, over all orders.
	active := make(map[string]map[string]struct{})
	for _, o := range sorted {
		key := o.Timestamp.Format(monthKeyLayout)
		if active[key] == nil {
			active[key] = make(map[string]struct{})
		}
		active[key][o.CustomerID] = struct{}{}
	}

	m := Matrix{
		Months:  monthAxis(cohorts, active),
		Cohorts: sortedKeys(cohorts),
	}
	m.Cells = make([][]*float64, len(m.Cohorts))
	for i, ck := range m.Cohorts {
		row := make([]*float64, len(m.Months))
		members := cohorts[ck]
		size := float64(len(members))
		if size == 0 {
			size = 1
		}
		for j, mk := range m.Months {
			if mk < ck {
				continue // undefined before the cohort exists
			}
			retained := 0
			for id := range members {
				if _, ok := active[mk][id]; ok {
					retained++
				}
			}
			v := float64(retained) / size
			row[j] = &v
		}
		m.Cells[i] = row
	}
	return m
}

func monthAxis(cohorts, active map[string]map[string]struct{}) []string {
	seen := make(map[string]struct{})
	for k := range cohorts {
		seen[k] = struct{}{}
	}
	for k := range active {
		seen[k] = struct{}{}
	}
	axis := make([]string, 0, len(seen))
	for k := range seen {
		axis = append(axis, k)
	}
	sort.Strings(axis)
	return axis
}

func sortedKeys(m map[string]map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
