package domain

import "time"

// Opportunity types present in the sample dataset.
const (
	TypeConstructionPermit   = "Construction Permit"
	TypeEnvironmentalLicense = "Environmental License"
	TypeSubdivision          = "Subdivision"
	TypeRoadInfrastructure   = "Road Infrastructure"
	TypeIndustrialZone       = "Industrial Zone"
)

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Opportunity is one construction, licensing or infrastructure event the
// dashboard tracks.
type Opportunity struct {
	ID            int    `json:"id"`
	Type          string `json:"type"`
	PermitNumber  string `json:"permit_number,omitempty"`
	ProcessNumber string `json:"process_number,omitempty"`

	// Source value fields. At most one is normally set; TotalValue is
	// derived from them by DeriveTotalValue.
	ConstructionValue *float64 `json:"construction_value,omitempty"`
	InvestmentValue   *float64 `json:"investment_value,omitempty"`
	EstimatedValue    *float64 `json:"estimated_value,omitempty"`
	TotalValue        float64  `json:"total_value"`

	Municipality    string    `json:"municipality"`
	Status          string    `json:"status"`
	Score           float64   `json:"score"`    // 0.0–1.0, not enforced
	Priority        string    `json:"priority"` // High, Medium or Low, not enforced
	SuggestedAction string    `json:"suggested_action"`
	CollectedAt     time.Time `json:"collected_at"`
	Address         string    `json:"address"`

	// Geo is nil until the address has been resolved.
	Geo *Geo `json:"geo,omitempty"`
}

// Reference returns the type-specific reference number.
func (o Opportunity) Reference() string {
	if o.PermitNumber != "" {
		return o.PermitNumber
	}
	return o.ProcessNumber
}

// HasCoordinates reports whether the record was geocoded.
func (o Opportunity) HasCoordinates() bool {
	return o.Geo != nil
}

// DeriveTotalValue returns the first present value among construction,
// investment and estimated value, or 0 when none is set.
func DeriveTotalValue(o Opportunity) float64 {
	for _, v := range []*float64{o.ConstructionValue, o.InvestmentValue, o.EstimatedValue} {
		if v != nil {
			return *v
		}
	}
	return 0
}

// CloneOpportunities returns a deep copy so callers can attach coordinates
// without mutating shared records.
func CloneOpportunities(in []Opportunity) []Opportunity {
	out := make([]Opportunity, len(in))
	for i, o := range in {
		o.ConstructionValue = cloneFloat(o.ConstructionValue)
		o.InvestmentValue = cloneFloat(o.InvestmentValue)
		o.EstimatedValue = cloneFloat(o.EstimatedValue)
		if o.Geo != nil {
			g := *o.Geo
			o.Geo = &g
		}
		out[i] = o
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
