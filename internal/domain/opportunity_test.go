package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestDeriveTotalValue(t *testing.T) {
	tests := []struct {
		name string
		opp  Opportunity
		want float64
	}{
		{"construction value wins", Opportunity{ConstructionValue: ptr(1_500_000), InvestmentValue: ptr(9)}, 1_500_000},
		{"investment when no construction", Opportunity{InvestmentValue: ptr(2_500_000), EstimatedValue: ptr(1)}, 2_500_000},
		{"estimated as last resort", Opportunity{EstimatedValue: ptr(800_000)}, 800_000},
		{"zero when all missing", Opportunity{}, 0},
		{"present zero counts", Opportunity{ConstructionValue: ptr(0), InvestmentValue: ptr(5)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTotalValue(tt.opp))
		})
	}
}

func TestReference(t *testing.T) {
	assert.Equal(t, "001/2024", Opportunity{PermitNumber: "001/2024"}.Reference())
	assert.Equal(t, "CETESB-2024-001", Opportunity{ProcessNumber: "CETESB-2024-001"}.Reference())
}

func TestCloneOpportunities_IsDeep(t *testing.T) {
	orig := []Opportunity{{ID: 1, InvestmentValue: ptr(10), Geo: &Geo{Lat: 1, Lon: 2}}}

	clone := CloneOpportunities(orig)
	*clone[0].InvestmentValue = 99
	clone[0].Geo.Lat = 50
	clone[0].Municipality = "Osasco"

	assert.Equal(t, 10.0, *orig[0].InvestmentValue)
	assert.Equal(t, 1.0, orig[0].Geo.Lat)
	assert.Empty(t, orig[0].Municipality)
}

func TestMarkerColor(t *testing.T) {
	assert.Equal(t, "red", MarkerColor("High"))
	assert.Equal(t, "orange", MarkerColor("Medium"))
	assert.Equal(t, "green", MarkerColor("Low"))
	assert.Equal(t, "blue", MarkerColor("Urgent"))
	assert.Equal(t, "blue", MarkerColor(""))
}

func TestIsKnownPriority(t *testing.T) {
	for _, p := range PriorityOrder {
		assert.True(t, IsKnownPriority(p))
	}
	assert.False(t, IsKnownPriority("Alta"))
}

func TestFilterByType(t *testing.T) {
	records := []Opportunity{
		{ID: 1, Type: TypeConstructionPermit},
		{ID: 2, Type: TypeEnvironmentalLicense},
		{ID: 3, Type: TypeConstructionPermit},
	}

	got := FilterByType(records, TypeConstructionPermit)
	assert.Equal(t, []Opportunity{records[0], records[2]}, got)

	assert.Equal(t, records, FilterByType(records, FilterAll))
	assert.Equal(t, records, FilterByType(records, ""))
	assert.Empty(t, FilterByType(records, "construction permit"), "match is exact")
}

func TestDistinctTypes_FirstSeenOrder(t *testing.T) {
	records := []Opportunity{
		{Type: "B", Municipality: "X"},
		{Type: "A", Municipality: "Y"},
		{Type: "B", Municipality: "X"},
	}
	assert.Equal(t, []string{"B", "A"}, DistinctTypes(records))
	assert.Equal(t, []string{"X", "Y"}, DistinctMunicipalities(records))
}

func TestNotifyf_NilNotifier(t *testing.T) {
	assert.NotPanics(t, func() { Notifyf(nil, NoticeInfo, "x %d", 1) })

	var n Notices
	Notifyf(&n, NoticeError, "failed %s", "here")
	assert.Equal(t, Notices{{Level: NoticeError, Message: "failed here"}}, n)
}
