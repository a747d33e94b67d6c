package flightdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Init(filepath.Join(t.TempDir(), "flights.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestSaveAndGetSummary(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	s := Summary{
		FlightID:   "E2B8A9FF-123B-49AB-B330-44CEAB68D465",
		Departure:  "EGLL",
		Arrival:    "EGKK",
		Points:     120,
		TouchDowns: 1,
		Collapses:  7,
		LastSeen:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, d.SaveSummary(ctx, s))

	got, err := d.GetSummary(ctx, s.FlightID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "EGLL", got.Departure)
	assert.Equal(t, "EGKK", got.Arrival)
	assert.EqualValues(t, 120, got.Points)
	assert.EqualValues(t, 1, got.TouchDowns)
	assert.EqualValues(t, 7, got.Collapses)
	assert.Equal(t, s.LastSeen, got.LastSeen)
}

func TestSaveSummary_AccumulatesAcrossReconnects(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	flightID := "E2B8A9FF-123B-49AB-B330-44CEAB68D465"

	require.NoError(t, d.SaveSummary(ctx, Summary{FlightID: flightID, Points: 10, LastSeen: time.Now()}))
	require.NoError(t, d.SaveSummary(ctx, Summary{FlightID: flightID, Departure: "EGLL", Points: 5, TouchDowns: 1, LastSeen: time.Now()}))

	got, err := d.GetSummary(ctx, flightID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 15, got.Points)
	assert.EqualValues(t, 1, got.TouchDowns)
	assert.Equal(t, "EGLL", got.Departure)
}

func TestGetSummary_NilForUnknownFlight(t *testing.T) {
	d := newTestDB(t)
	got, err := d.GetSummary(context.Background(), "AB1234")
	require.NoError(t, err)
	assert.Nil(t, got)
}
