package domain

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock resolver ---

type mockResolver struct {
	results map[string]Geo
	calls   []string
}

func (m *mockResolver) Resolve(_ context.Context, address string, _ Notifier) (Geo, bool) {
	m.calls = append(m.calls, address)
	g, ok := m.results[address]
	return g, ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestAttachCoordinates_NilResolver(t *testing.T) {
	records := []Opportunity{{ID: 1, Address: "Rua A, 1"}}
	var notices Notices

	summary := AttachCoordinates(context.Background(), records, nil, &notices, discardLogger())

	assert.Nil(t, records[0].Geo)
	assert.Equal(t, 1, summary.Unresolved)
	assert.Len(t, notices, 1)
	assert.Equal(t, NoticeWarning, notices[0].Level)
}

func TestAttachCoordinates_ResolvesInOrder(t *testing.T) {
	res := &mockResolver{results: map[string]Geo{
		"Rua A, 1": {Lat: -23.55, Lon: -46.63},
		"Rua B, 2": {Lat: -23.46, Lon: -46.53},
	}}
	records := []Opportunity{
		{ID: 1, Address: "Rua A, 1"},
		{ID: 2, Address: "Rua B, 2"},
		{ID: 3, Address: "Rua A, 1"},
	}
	var notices Notices

	summary := AttachCoordinates(context.Background(), records, res, &notices, discardLogger())

	assert.Equal(t, []string{"Rua A, 1", "Rua B, 2", "Rua A, 1"}, res.calls)
	assert.Equal(t, GeocodeSummary{UniqueAddresses: 2, Resolved: 3}, summary)
	assert.Equal(t, &Geo{Lat: -23.55, Lon: -46.63}, records[0].Geo)
	assert.Equal(t, &Geo{Lat: -23.46, Lon: -46.53}, records[1].Geo)
	assert.Equal(t, records[0].Geo, records[2].Geo)

	assert.Equal(t, Notices{
		{Level: NoticeInfo, Message: "Geocoding 2 unique addresses. This may take a while."},
		{Level: NoticeSuccess, Message: "Geocoding complete."},
	}, notices)
}

func TestAttachCoordinates_UnresolvedKeepsNilGeo(t *testing.T) {
	res := &mockResolver{results: map[string]Geo{}}
	records := []Opportunity{{ID: 1, Address: "Nowhere"}}

	summary := AttachCoordinates(context.Background(), records, res, nil, discardLogger())

	assert.Nil(t, records[0].Geo)
	assert.Equal(t, 1, summary.Unresolved)
	assert.Equal(t, 0, summary.Resolved)
}

func TestAttachCoordinates_NoAddresses(t *testing.T) {
	res := &mockResolver{}
	records := []Opportunity{{ID: 1}, {ID: 2}}
	var notices Notices

	summary := AttachCoordinates(context.Background(), records, res, &notices, discardLogger())

	assert.Empty(t, res.calls)
	assert.Equal(t, 2, summary.Unresolved)
	assert.Equal(t, Notices{{Level: NoticeWarning, Message: "No addresses found for geocoding."}}, notices)
}

func TestAttachCoordinates_SkipsEmptyAddress(t *testing.T) {
	res := &mockResolver{results: map[string]Geo{"Rua A, 1": {Lat: 1, Lon: 2}}}
	records := []Opportunity{{ID: 1, Address: "Rua A, 1"}, {ID: 2}}

	summary := AttachCoordinates(context.Background(), records, res, nil, discardLogger())

	assert.Equal(t, []string{"Rua A, 1"}, res.calls)
	assert.Equal(t, 1, summary.Resolved)
	assert.Equal(t, 1, summary.Unresolved)
	assert.Nil(t, records[1].Geo)
}
