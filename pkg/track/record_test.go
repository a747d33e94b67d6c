package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_TrackPointRoundtrip(t *testing.T) {
	tp := &TrackPoint{
		TsMs: 123, Lat: 51.4, Lng: -0.45, HdgTrue: 270, AltAMSL: 1000, AltAGL: 900,
		GndElevation: 80, Crs: 90, IAS: 140, TAS: 145, GS: 150, APMaster: true,
		GearPct: 100, Flaps: 2, OnGnd: false, OnRwy: true, WindVel: 12, WindDir: 220,
		Distance: 3.5,
	}
	buf := encodeRecord(Record{Point: tp})
	assert.Len(t, buf, recordSlotSize)

	got, err := decodeRecord(buf)
	require.NoError(t, err)
	require.NotNil(t, got.Point)
	assert.Nil(t, got.TouchDown)
	assert.Equal(t, *tp, *got.Point)
	assert.EqualValues(t, 123, got.Ts())
}

func TestRecord_TouchDownRoundtrip(t *testing.T) {
	td := &TouchDown{TsMs: 55, Bank: 1, HdgMag: 2, HdgTrue: 3, VelNrm: 4, Pitch: 5, Lat: 6, Lng: 7}
	buf := encodeRecord(Record{TouchDown: td})

	got, err := decodeRecord(buf)
	require.NoError(t, err)
	require.NotNil(t, got.TouchDown)
	assert.Nil(t, got.Point)
	assert.Equal(t, *td, *got.TouchDown)
}

func TestRecord_EqualForDedup(t *testing.T) {
	a := Record{Point: &TrackPoint{TsMs: 1, Lat: 10, Lng: 20, Distance: 0}}
	b := Record{Point: &TrackPoint{TsMs: 2, Lat: 10, Lng: 20, Distance: 9.9}}
	assert.True(t, a.equalForDedup(b))

	c := Record{Point: &TrackPoint{TsMs: 3, Lat: 10.0001, Lng: 20}}
	assert.False(t, a.equalForDedup(c))

	td1 := Record{TouchDown: &TouchDown{TsMs: 1, Lat: 10, Lng: 20}}
	td2 := Record{TouchDown: &TouchDown{TsMs: 2, Lat: 10, Lng: 20}}
	assert.False(t, td1.equalForDedup(td2))
}

func TestDecodeRecord_InsufficientData(t *testing.T) {
	_, err := decodeRecord(make([]byte, 4))
	require.Error(t, err)
	te, ok := AsTrackError(err)
	require.True(t, ok)
	assert.Equal(t, ErrInsufficientData, te.Kind)
}
