package dashboard

import "github.com/primex/opportunity-dashboard/internal/domain"

// View is everything one dashboard render shows.
type View struct {
	Title     string                `json:"title"`
	Subtitle  string                `json:"subtitle"`
	Notices   domain.Notices        `json:"notices"`
	Geocoding domain.GeocodeSummary `json:"geocoding"`
	Overview  Overview              `json:"overview"`
	Charts    Charts                `json:"charts"`
	Map       MapView               `json:"map"`
	Details   Details               `json:"details"`
	Footer    Footer                `json:"footer"`
}

// Overview holds the headline metric tiles.
type Overview struct {
	TotalOpportunities int     `json:"total_opportunities"`
	OpportunityTypes   int     `json:"opportunity_types"`
	Municipalities     int     `json:"municipalities"`
	TotalValue         float64 `json:"total_value"`
	TotalValueLabel    string  `json:"total_value_label"`
}

// CategoryCount is one bar or slice of a categorical chart.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type PieChart struct {
	Title  string            `json:"title"`
	Slices []CategoryCount   `json:"slices"`
	Colors map[string]string `json:"colors"`
}

type BarChart struct {
	Title   string          `json:"title"`
	XLabel  string          `json:"x_label"`
	YLabel  string          `json:"y_label"`
	Bars    []CategoryCount `json:"bars"`
	Palette []string        `json:"palette"`
}

type ScatterPoint struct {
	ID              int     `json:"id"`
	Value           float64 `json:"value"`
	Score           float64 `json:"score"`
	Priority        string  `json:"priority"`
	Municipality    string  `json:"municipality"`
	Status          string  `json:"status"`
	Type            string  `json:"type"`
	SuggestedAction string  `json:"suggested_action"`
}

type ScatterChart struct {
	Title  string            `json:"title"`
	XLabel string            `json:"x_label"`
	YLabel string            `json:"y_label"`
	Points []ScatterPoint    `json:"points"`
	Colors map[string]string `json:"colors"`
}

// Charts groups the four dashboard charts.
type Charts struct {
	Priority          PieChart     `json:"priority"`
	ByType            BarChart     `json:"by_type"`
	ScoreValue        ScatterChart `json:"score_value"`
	TopMunicipalities BarChart     `json:"top_municipalities"`
}

// Marker is one geocoded opportunity on the map.
type Marker struct {
	ID      int     `json:"id"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Tooltip string  `json:"tooltip"`
	Popup   string  `json:"popup"`
	Color   string  `json:"color"`
}

type MapView struct {
	Center  *domain.Geo `json:"center,omitempty"`
	Zoom    int         `json:"zoom"`
	Tiles   string      `json:"tiles"`
	Markers []Marker    `json:"markers"`
	Warning string      `json:"warning,omitempty"`
}

// HighPriorityRow is one line of the high-priority table.
type HighPriorityRow struct {
	Type            string  `json:"type"`
	Municipality    string  `json:"municipality"`
	Value           float64 `json:"value"`
	ValueLabel      string  `json:"value_label"`
	Score           float64 `json:"score"`
	SuggestedAction string  `json:"suggested_action"`
}

// Details is the filtered analysis section.
type Details struct {
	Options           []string          `json:"options"`
	Selected          string            `json:"selected"`
	Heading           string            `json:"heading"`
	Count             int               `json:"count"`
	MeanScore         float64           `json:"mean_score"`
	MeanScoreLabel    string            `json:"mean_score_label"`
	MeanValue         float64           `json:"mean_value"`
	MeanValueLabel    string            `json:"mean_value_label"`
	HighPriority      []HighPriorityRow `json:"high_priority"`
	TopMunicipalities []CategoryCount   `json:"top_municipalities"`
}

type Footer struct {
	Company     string `json:"company"`
	Tagline     string `json:"tagline"`
	Email       string `json:"email"`
	WhatsApp    string `json:"whatsapp"`
	GeneratedAt string `json:"generated_at"`
}
