package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"orderscope/internal/dataset"
	"orderscope/internal/model"
)

func main() {
	var (
		customers int
		products  int
		orders    int
		outDir    string
		seed      int64
	)
	flag.IntVar(&customers, "customers", 500, "number of customers to generate")
	flag.IntVar(&products, "products", 50, "number of products to generate")
	flag.IntVar(&orders, "orders", 1000, "number of orders to generate")
	flag.StringVar(&outDir, "output", "./data", "output directory for the CSV files")
	flag.Int64Var(&seed, "seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(seed))
	ds := generate(rng, customers, products, orders)
	if err := dataset.WriteDir(outDir, ds); err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	log.Printf("generated %d customers, %d products, %d orders to %s",
		len(ds.Customers), len(ds.Products), len(ds.Orders), outDir)
}

var (
	categories = []string{"Electronics", "Apparel", "Home", "Beauty", "Outdoor", "Toys"}
	segments   = []string{"New", "Returning", "VIP"}
	countries  = []string{"USA", "Canada", "UK", "Australia", "Germany", "France"}
	channels   = []string{"Web", "Mobile"}
	payments   = []string{"Credit Card", "PayPal", "Apple Pay", "Google Pay"}
)

func generate(rng *rand.Rand, nCustomers, nProducts, nOrders int) model.Dataset {
	var ds model.Dataset

	for i := 1; i <= nCustomers; i++ {
		ds.Customers = append(ds.Customers, model.Customer{
			CustomerID: fmt.Sprintf("C%04d", i),
			Segment:    weightedString(rng, segments, []float64{0.5, 0.35, 0.15}),
			Country:    countries[rng.Intn(len(countries))],
		})
	}
	for i := 1; i <= nProducts; i++ {
		ds.Products = append(ds.Products, model.Product{
			ProductID: fmt.Sprintf("P%03d", i),
			Category:  categories[rng.Intn(len(categories))],
		})
	}

	days := lastYear()
	dayWeights := make([]float64, len(days))
	for i, d := range days {
		dayWeights[i] = seasonMultiplier(d.Month()) * weekdayMultiplier(d)
	}

	promoStart := time.Date(time.Now().Year(), time.November, 20, 0, 0, 0, 0, time.UTC)
	promoEnd := time.Date(time.Now().Year(), time.November, 30, 23, 59, 0, 0, time.UTC)

	for i := 1; i <= nOrders; i++ {
		day := days[weightedIndex(rng, dayWeights)]
		hour := weightedIndex(rng, hourWeights())
		ts := time.Date(day.Year(), day.Month(), day.Day(), hour, rng.Intn(60), 0, 0, time.UTC)

		// Heavy-tailed buyer activity: low ids order far more often.
		cust := ds.Customers[int(float64(nCustomers)*rng.Float64()*rng.Float64())]
		prod := ds.Products[rng.Intn(nProducts)]

		discount := 0.0
		if rng.Float64() < 0.15 {
			discount = []float64{0.05, 0.10, 0.15}[rng.Intn(3)]
		}
		if !ts.Before(promoStart) && !ts.After(promoEnd) {
			promo := []float64{0.20, 0.25, 0.30}[rng.Intn(3)]
			if promo > discount {
				discount = promo
			}
		}

		price := 8 + rng.Float64()*492
		ds.Orders = append(ds.Orders, model.Order{
			OrderID:       fmt.Sprintf("O%05d", i),
			OrderDate:     ts.Format("2006-01-02T15:04"),
			CustomerID:    cust.CustomerID,
			ProductID:     prod.ProductID,
			Quantity:      int64(1 + rng.Intn(4)),
			UnitPrice:     float64(int(price*(1-discount)*100)) / 100,
			Discount:      discount,
			Channel:       weightedString(rng, channels, []float64{0.6, 0.4}),
			PaymentMethod: weightedString(rng, payments, []float64{0.5, 0.2, 0.15, 0.15}),
		})
	}
	return ds
}

func lastYear() []time.Time {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	days := make([]time.Time, 365)
	for i := range days {
		days[i] = today.AddDate(0, 0, i-364)
	}
	return days
}

// Holiday spike, summer dip, small back-to-school bump.
func seasonMultiplier(m time.Month) float64 {
	switch {
	case m == time.November || m == time.December:
		return 1.8
	case m == time.June || m == time.July:
		return 0.85
	case m == time.September:
		return 1.15
	case m == time.March || m == time.April:
		return 1.1
	default:
		return 1.0
	}
}

func weekdayMultiplier(d time.Time) float64 {
	switch d.Weekday() {
	case time.Friday, time.Saturday:
		return 1.15
	case time.Sunday:
		return 1.1
	default:
		return 0.95
	}
}

// Evenings dominate, lunch hours get a smaller bump.
func hourWeights() []float64 {
	w := make([]float64, 24)
	for h := range w {
		switch {
		case h >= 18 && h <= 22:
			w[h] = 0.6
		case h >= 12 && h <= 14:
			w[h] = 0.4
		default:
			w[h] = 0.2
		}
	}
	return w
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	var upto float64
	for i, w := range weights {
		upto += w
		if upto >= r {
			return i
		}
	}
	return len(weights) - 1
}

func weightedString(rng *rand.Rand, items []string, weights []float64) string {
	return items[weightedIndex(rng, weights)]
}
