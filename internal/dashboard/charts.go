package dashboard

import (
	"cmp"
	"slices"

	"github.com/primex/opportunity-dashboard/internal/domain"
)

// Plotly qualitative palettes, reproduced so the server decides colors.
var (
	pastelPalette = []string{
		"rgb(102, 197, 204)", "rgb(246, 207, 113)", "rgb(248, 156, 116)",
		"rgb(220, 176, 242)", "rgb(135, 197, 95)", "rgb(158, 185, 243)",
		"rgb(254, 136, 177)", "rgb(201, 219, 116)", "rgb(139, 224, 164)",
		"rgb(180, 151, 231)", "rgb(179, 179, 179)",
	}
	set2Palette = []string{
		"rgb(102,194,165)", "rgb(252,141,98)", "rgb(141,160,203)",
		"rgb(231,138,195)", "rgb(166,216,84)", "rgb(255,217,47)",
		"rgb(229,196,148)", "rgb(179,179,179)",
	}
)

const topMunicipalitiesChart = 10

func buildCharts(records []domain.Opportunity) Charts {
	points := make([]ScatterPoint, 0, len(records))
	for _, r := range records {
		points = append(points, ScatterPoint{
			ID:              r.ID,
			Value:           r.TotalValue,
			Score:           r.Score,
			Priority:        r.Priority,
			Municipality:    r.Municipality,
			Status:          r.Status,
			Type:            r.Type,
			SuggestedAction: r.SuggestedAction,
		})
	}
	// The front end draws one scatter series per priority in point order.
	slices.SortStableFunc(points, func(a, b ScatterPoint) int {
		return cmp.Compare(priorityRank(a.Priority), priorityRank(b.Priority))
	})

	return Charts{
		Priority: PieChart{
			Title:  "Distribution by Priority",
			Slices: byPriorityOrder(countBy(records, byPriority)),
			Colors: domain.PriorityChartColors(),
		},
		ByType: BarChart{
			Title:   "Opportunities by Type",
			XLabel:  "Opportunity Type",
			YLabel:  "Count",
			Bars:    countBy(records, byType),
			Palette: pastelPalette,
		},
		ScoreValue: ScatterChart{
			Title:  "Score vs. Opportunity Value",
			XLabel: "Total Value (R$)",
			YLabel: "Opportunity Score",
			Points: points,
			Colors: domain.PriorityChartColors(),
		},
		TopMunicipalities: BarChart{
			Title:   "Top 10 Municipalities by Opportunity Count",
			XLabel:  "Municipality",
			YLabel:  "Opportunities",
			Bars:    topN(countBy(records, byMunicipality), topMunicipalitiesChart),
			Palette: set2Palette,
		},
	}
}

// priorityRank places known priorities from most to least urgent, ahead of
// any unknown label.
func priorityRank(label string) int {
	if i := slices.Index(domain.PriorityOrder, label); i >= 0 {
		return i
	}
	return len(domain.PriorityOrder)
}

func byPriorityOrder(counts []CategoryCount) []CategoryCount {
	slices.SortStableFunc(counts, func(a, b CategoryCount) int {
		return cmp.Compare(priorityRank(a.Label), priorityRank(b.Label))
	})
	return counts
}
