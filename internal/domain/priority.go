package domain

// Priority labels.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Marker colors understood by the map front end.
const (
	MarkerRed    = "red"
	MarkerOrange = "orange"
	MarkerGreen  = "green"
	MarkerBlue   = "blue"
)

// PriorityOrder lists the known priorities from most to least urgent.
var PriorityOrder = []string{PriorityHigh, PriorityMedium, PriorityLow}

var markerColors = map[string]string{
	PriorityHigh:   MarkerRed,
	PriorityMedium: MarkerOrange,
	PriorityLow:    MarkerGreen,
}

// chartColors is the hex palette used for priority series in charts.
var chartColors = map[string]string{
	PriorityHigh:   "#e74c3c",
	PriorityMedium: "#f39c12",
	PriorityLow:    "#27ae60",
}

// MarkerColor maps a priority label to a map marker color. Unknown labels
// fall back to blue.
func MarkerColor(priority string) string {
	if c, ok := markerColors[priority]; ok {
		return c
	}
	return MarkerBlue
}

// PriorityChartColors returns a copy of the priority to hex color map.
func PriorityChartColors() map[string]string {
	out := make(map[string]string, len(chartColors))
	for k, v := range chartColors {
		out[k] = v
	}
	return out
}

// IsKnownPriority reports whether the label is one of High, Medium or Low.
func IsKnownPriority(priority string) bool {
	_, ok := markerColors[priority]
	return ok
}
