package domain

import (
	"context"
	"errors"
)

// Geocoding failure classes. Backends wrap one of these so the retry policy
// can tell transient failures from everything else.
var (
	ErrGeocoderTimeout = errors.New("geocoder timed out")
	ErrGeocoderService = errors.New("geocoder service error")
)

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Found reports whether the provider located the address.
func (r GeocodingResult) Found() bool {
	return r.Lat != 0 || r.Lon != 0
}

// Geocoder converts a free-text address into coordinates. A lookup that
// finds nothing returns a zero result and a nil error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodingResult, error)
}

// AddressResolver resolves an address to coordinates, reporting failures as
// notices instead of errors. The boolean is false when the address could not
// be resolved.
type AddressResolver interface {
	Resolve(ctx context.Context, address string, n Notifier) (Geo, bool)
}

// IsRetryable reports whether err is a timeout or service error.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrGeocoderTimeout) || errors.Is(err, ErrGeocoderService)
}
