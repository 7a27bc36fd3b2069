package domain

import "time"

// ExportRecord is one opportunity as published to the export topic.
type ExportRecord struct {
	Opportunity
	ExportedAt time.Time `json:"exported_at"`
}

// NewExportRecords stamps every record with the same export time.
func NewExportRecords(records []Opportunity, exportedAt time.Time) []ExportRecord {
	out := make([]ExportRecord, len(records))
	for i, r := range records {
		out[i] = ExportRecord{Opportunity: r, ExportedAt: exportedAt.UTC()}
	}
	return out
}
