// Package domain models the opportunity records shown on the PRIMEX
// monitoring dashboard.
//
// # Records
//
// An [Opportunity] is one sample construction permit, environmental license,
// subdivision, road infrastructure project or industrial zone. Records carry
// up to three source value fields (construction, investment and estimated
// value). The displayed TotalValue is always derived by [DeriveTotalValue]:
// the first present field in that order, or zero.
//
// Score is expected to lie in [0,1] and Priority to be one of High, Medium
// or Low. Neither is enforced; unknown priorities render with the default
// blue marker (see [MarkerColor]).
//
// # Geocoding
//
// Coordinates are derived per render by [AttachCoordinates] through an
// [AddressResolver]. Resolvers never fail a render: they report problems as
// [Notice] values and return "absent". Backends implementing [Geocoder] wrap
// [ErrGeocoderTimeout] or [ErrGeocoderService] for transient failures, which
// the [RetryPolicy] retries:
//
//	attempt 1 ──fail(transient)──▶ wait 2s ──▶ attempt 2 ──▶ wait 2s ──▶ attempt 3 ──▶ give up
//	attempt 1 ──fail(other)──────▶ give up
package domain
