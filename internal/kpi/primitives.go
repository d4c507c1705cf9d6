package kpi

import "orderscope/internal/model"

// GroupSum returns, for each distinct key produced by keyFn, the sum of
// valFn over the orders sharing that key. Pure and total: no error paths.
func GroupSum[K comparable](orders []model.EnrichedOrder, keyFn func(model.EnrichedOrder) K, valFn func(model.EnrichedOrder) float64) map[K]float64 {
	sums := make(map[K]float64)
	for _, o := range orders {
		sums[keyFn(o)] += valFn(o)
	}
	return sums
}

// ShareMap divides each value by the total of all values. A zero total is
// replaced by 1 so an empty or all-zero input yields all-zero shares
// instead of a division fault.
func ShareMap[K comparable](sums map[K]float64) map[K]float64 {
	var total float64
	for _, v := range sums {
		total += v
	}
	if total == 0 {
		total = 1
	}
	shares := make(map[K]float64, len(sums))
	for k, v := range sums {
		shares[k] = v / total
	}
	return shares
}

// Revenue is the standard valFn for revenue aggregations.
func Revenue(o model.EnrichedOrder) float64 { return o.Revenue }

// One counts orders: GroupSum with One yields per-key order counts.
func One(model.EnrichedOrder) float64 { return 1 }

// ByCustomer keys an order by its buyer.
func ByCustomer(o model.EnrichedOrder) string { return o.CustomerID }
