package domain

import (
	"context"
	"log/slog"
)

// GeocodeSummary describes one coordinate attachment pass.
type GeocodeSummary struct {
	UniqueAddresses int `json:"unique_addresses"`
	Resolved        int `json:"resolved"`
	Unresolved      int `json:"unresolved"`
}

// AttachCoordinates resolves each record's address in order and sets Geo on
// the records that resolved. Records without an address, and every record
// when resolver is nil, keep a nil Geo (graceful degradation). Progress and
// failures are reported through n.
func AttachCoordinates(ctx context.Context, records []Opportunity, resolver AddressResolver, n Notifier, logger *slog.Logger) GeocodeSummary {
	var summary GeocodeSummary
	if resolver == nil {
		Notifyf(n, NoticeWarning, "Geocoding is disabled; the map will be empty.")
		summary.Unresolved = len(records)
		return summary
	}

	summary.UniqueAddresses = countUniqueAddresses(records)
	if summary.UniqueAddresses == 0 {
		Notifyf(n, NoticeWarning, "No addresses found for geocoding.")
		summary.Unresolved = len(records)
		return summary
	}

	Notifyf(n, NoticeInfo, "Geocoding %d unique addresses. This may take a while.", summary.UniqueAddresses)
	for i := range records {
		rec := &records[i]
		if rec.Address == "" {
			summary.Unresolved++
			continue
		}
		geo, ok := resolver.Resolve(ctx, rec.Address, n)
		if !ok {
			summary.Unresolved++
			continue
		}
		rec.Geo = &Geo{Lat: geo.Lat, Lon: geo.Lon}
		summary.Resolved++
		logger.Debug("geocoded opportunity",
			"opportunity_id", rec.ID,
			"progress", i+1,
			"total", len(records),
		)
	}
	Notifyf(n, NoticeSuccess, "Geocoding complete.")

	return summary
}

func countUniqueAddresses(records []Opportunity) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Address == "" {
			continue
		}
		seen[r.Address] = struct{}{}
	}
	return len(seen)
}
