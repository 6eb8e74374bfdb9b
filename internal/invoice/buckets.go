package invoice

import (
	"strconv"
	"time"

	"invoicr/internal/model"
)

// Bucket is one bar of the revenue chart.
type Bucket struct {
	Label string
	Value float64
}

// MonthlyBuckets groups invoices into the last 12 calendar months
// (oldest first, ending at now's month), summing stored amounts by
// calendar year+month of CreatedAt. Empty months stay in the result
// with value 0.
func MonthlyBuckets(invoices []model.Invoice, now time.Time) []Bucket {
	buckets := make([]Bucket, 0, 12)
	for i := 11; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		var sum float64
		for _, inv := range invoices {
			if inv.CreatedAt.Year() == month.Year() && inv.CreatedAt.Month() == month.Month() {
				sum += inv.Amount
			}
		}
		buckets = append(buckets, Bucket{Label: month.Format("Jan 06"), Value: sum})
	}
	return buckets
}

// YearlyBuckets groups invoices into the last 5 calendar years, oldest
// first, ending at now's year.
func YearlyBuckets(invoices []model.Invoice, now time.Time) []Bucket {
	buckets := make([]Bucket, 0, 5)
	for i := 4; i >= 0; i-- {
		year := now.Year() - i
		var sum float64
		for _, inv := range invoices {
			if inv.CreatedAt.Year() == year {
				sum += inv.Amount
			}
		}
		buckets = append(buckets, Bucket{Label: strconv.Itoa(year), Value: sum})
	}
	return buckets
}

// ChartScale is the divisor for bar heights: the largest bucket value,
// floored at 1 so an all-zero chart still renders.
func ChartScale(buckets []Bucket) float64 {
	maxV := 1.0
	for _, b := range buckets {
		if b.Value > maxV {
			maxV = b.Value
		}
	}
	return maxV
}
