package budget

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Palette is the fixed set of chart colours, assigned cyclically.
var Palette = []string{
	"#4ade80", "#60a5fa", "#f59e0b", "#ef4444",
	"#8b5cf6", "#06b6d4", "#f97316", "#ec4899",
}

// ChartItem is one bar or slice.
type ChartItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
}

// ChartData builds chart items from cost entries. Entries whose amount parses
// to a positive number are kept; each gets a colour by its position among the
// kept entries, and unnamed entries are labelled by label(n) with n 1-based.
// The result is sorted by amount, largest first.
func ChartData(costs []CostEntry, label func(n int) string) []ChartItem {
	var items []ChartItem
	for _, c := range costs {
		d, err := ParseAmount(c.Amount)
		if err != nil {
			continue
		}
		i := len(items)
		name := c.Name
		if name == "" && label != nil {
			name = label(i + 1)
		}
		items = append(items, ChartItem{
			Name:   name,
			Amount: d.InexactFloat64(),
			Color:  Palette[i%len(Palette)],
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount > items[j].Amount
	})
	return items
}

// ChartStats summarises chart items for the chart footers.
type ChartStats struct {
	Total   float64   `json:"total"`
	Count   int       `json:"count"`
	Average float64   `json:"average"`
	Highest ChartItem `json:"highest"`
	Lowest  ChartItem `json:"lowest"`
	Range   float64   `json:"range"`
}

// Stats computes totals over items, which must already be sorted descending.
// The zero value is returned for an empty slice.
func Stats(items []ChartItem) ChartStats {
	if len(items) == 0 {
		return ChartStats{}
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Amount))
	}
	st := ChartStats{
		Total:   total.InexactFloat64(),
		Count:   len(items),
		Highest: items[0],
		Lowest:  items[len(items)-1],
	}
	st.Average = st.Total / float64(st.Count)
	st.Range = st.Highest.Amount - st.Lowest.Amount
	return st
}

// Share returns amount as a fraction of total, 0 when total is not positive.
func Share(amount, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return amount / total
}
