package dashboard

import (
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/primex/opportunity-dashboard/internal/domain"
)

const (
	mapZoom  = 9
	mapTiles = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"

	// NoCoordinatesWarning replaces the map when nothing was geocoded.
	NoCoordinatesWarning = "No records with valid coordinates to show on the map."
)

var popupPolicy = bluemonday.UGCPolicy()

func buildMap(records []domain.Opportunity) MapView {
	view := MapView{Zoom: mapZoom, Tiles: mapTiles, Markers: []Marker{}}

	var sumLat, sumLon float64
	for _, r := range records {
		if !r.HasCoordinates() {
			continue
		}
		sumLat += r.Geo.Lat
		sumLon += r.Geo.Lon
		view.Markers = append(view.Markers, Marker{
			ID:      r.ID,
			Lat:     r.Geo.Lat,
			Lon:     r.Geo.Lon,
			Tooltip: markerTooltip(r),
			Popup:   markerPopup(r),
			Color:   domain.MarkerColor(r.Priority),
		})
	}

	if len(view.Markers) == 0 {
		view.Warning = NoCoordinatesWarning
		return view
	}
	n := float64(len(view.Markers))
	view.Center = &domain.Geo{Lat: sumLat / n, Lon: sumLon / n}
	return view
}

func markerTooltip(r domain.Opportunity) string {
	return r.Type + " - " + r.Municipality
}

// markerPopup renders the popup fragment. Field values are escaped before
// the policy pass so free text never becomes markup.
func markerPopup(r domain.Opportunity) string {
	esc := html.EscapeString
	raw := fmt.Sprintf(`<div>`+
		`<h4>%s - %s</h4>`+
		`<p><strong>Address:</strong> %s</p>`+
		`<p><strong>Value:</strong> %s</p>`+
		`<p><strong>Score:</strong> %s</p>`+
		`<p><strong>Priority:</strong> %s</p>`+
		`<p><strong>Suggested Action:</strong> %s</p>`+
		`<p><strong>Status:</strong> %s</p>`+
		`</div>`,
		esc(r.Type), esc(r.Municipality),
		esc(orNA(r.Address)),
		esc(FormatBRL(r.TotalValue)),
		esc(formatScore(r.Score)),
		esc(orNA(r.Priority)),
		esc(orNA(r.SuggestedAction)),
		esc(orNA(r.Status)),
	)
	return popupPolicy.Sanitize(raw)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
