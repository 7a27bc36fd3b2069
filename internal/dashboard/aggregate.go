package dashboard

import (
	"sort"

	"github.com/primex/opportunity-dashboard/internal/domain"
)

// countBy counts records per key, most frequent first. Ties keep first-seen
// order.
func countBy(records []domain.Opportunity, key func(domain.Opportunity) string) []CategoryCount {
	index := make(map[string]int)
	var out []CategoryCount
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, CategoryCount{Label: k})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

func topN(counts []CategoryCount, n int) []CategoryCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

func sumValue(records []domain.Opportunity) float64 {
	var total float64
	for _, r := range records {
		total += r.TotalValue
	}
	return total
}

// meanOf returns the mean of f over records and false for an empty set.
func meanOf(records []domain.Opportunity, f func(domain.Opportunity) float64) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}
	var total float64
	for _, r := range records {
		total += f(r)
	}
	return total / float64(len(records)), true
}

func byType(o domain.Opportunity) string         { return o.Type }
func byMunicipality(o domain.Opportunity) string { return o.Municipality }
func byPriority(o domain.Opportunity) string     { return o.Priority }
