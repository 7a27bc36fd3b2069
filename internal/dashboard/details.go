package dashboard

import (
	"sort"
	"strings"

	"github.com/primex/opportunity-dashboard/internal/domain"
)

const (
	topMunicipalitiesDetails = 5

	// NoHighPriorityMessage is shown when the filtered set has no high
	// priority record.
	NoHighPriorityMessage = "No high-priority opportunities found for this selection."

	emptyMetric = "-"
)

func buildDetails(records []domain.Opportunity, selected string) Details {
	if selected == "" {
		selected = domain.FilterAll
	}
	filtered := domain.FilterByType(records, selected)

	d := Details{
		Options:           append([]string{domain.FilterAll}, domain.DistinctTypes(records)...),
		Selected:          selected,
		Heading:           "Summary for " + strings.ToLower(selected) + " opportunities",
		Count:             len(filtered),
		MeanScoreLabel:    emptyMetric,
		MeanValueLabel:    emptyMetric,
		HighPriority:      highPriorityRows(filtered),
		TopMunicipalities: topN(countBy(filtered, byMunicipality), topMunicipalitiesDetails),
	}
	if d.TopMunicipalities == nil {
		d.TopMunicipalities = []CategoryCount{}
	}

	if mean, ok := meanOf(filtered, func(o domain.Opportunity) float64 { return o.Score }); ok {
		d.MeanScore = mean
		d.MeanScoreLabel = formatScore(mean)
	}
	if mean, ok := meanOf(filtered, func(o domain.Opportunity) float64 { return o.TotalValue }); ok {
		d.MeanValue = mean
		d.MeanValueLabel = FormatBRL(mean)
	}
	return d
}

func highPriorityRows(records []domain.Opportunity) []HighPriorityRow {
	high := domain.FilterByPriority(records, domain.PriorityHigh)
	rows := make([]HighPriorityRow, 0, len(high))
	for _, r := range high {
		rows = append(rows, HighPriorityRow{
			Type:            r.Type,
			Municipality:    r.Municipality,
			Value:           r.TotalValue,
			ValueLabel:      FormatBRL(r.TotalValue),
			Score:           r.Score,
			SuggestedAction: r.SuggestedAction,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	return rows
}
