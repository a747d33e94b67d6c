package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/tangomike/tm-grpc/pkg/geoindex"
	"github.com/tangomike/tm-grpc/pkg/track"
	"github.com/tangomike/tm-grpc/pkg/trackpb"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := track.NewStore(t.TempDir())
	geo := geoindex.Build([]geoindex.Airport{
		{Ident: "EGLL", Lat: 51.4706, Lng: -0.461941},
	})
	return New(store, geo, nil, nil)
}

func seedFlight(t *testing.T, s *Server, flightID string, n int) {
	t.Helper()
	tf, err := s.store.OpenOrCreate(flightID)
	require.NoError(t, err)
	defer tf.Close()
	for i := 1; i <= n; i++ {
		_, err := tf.Append(track.Record{Point: &track.TrackPoint{TsMs: uint64(i), Lat: float64(i), Lng: float64(i)}})
		require.NoError(t, err)
	}
	_, err = tf.Append(track.Record{TouchDown: &track.TouchDown{TsMs: uint64(n + 1), Lat: float64(n), Lng: float64(n)}})
	require.NoError(t, err)
}

func TestServer_GetTrack_SplitsPointsAndTouchDowns(t *testing.T) {
	s := newTestServer(t)
	flightID := "E2B8A9FF-123B-49AB-B330-44CEAB68D465"
	seedFlight(t, s, flightID, 3)

	resp, err := s.GetTrack(context.Background(), &trackpb.TrackRequest{FlightID: flightID})
	require.NoError(t, err)
	assert.Equal(t, flightID, resp.FlightID)
	require.Len(t, resp.Points, 3)
	require.Len(t, resp.TouchDowns, 1)
	assert.EqualValues(t, 1, resp.Points[0].TsMs)
	assert.EqualValues(t, 4, resp.TouchDowns[0].TsMs)
}

func TestServer_GetTrack_MissingFlight(t *testing.T) {
	s := newTestServer(t)
	_, err := s.GetTrack(context.Background(), &trackpb.TrackRequest{FlightID: "E2B8A9FF-123B-49AB-B330-44CEAB68D465"})
	require.Error(t, err)
}

func TestServer_GetActiveFlights_EmptyInitially(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.GetActiveFlights(context.Background(), &trackpb.NoParams{})
	require.NoError(t, err)
	assert.Empty(t, resp.FlightIDs)
}

// fakeServerStream is a minimal grpc.ServerStream stand-in for testing
// DownloadTrackStream without a real connection.
type fakeServerStream struct {
	ctx context.Context
	out []*trackpb.TrackMessage
}

func (f *fakeServerStream) SetHeader(metadata.MD) error  { return nil }
func (f *fakeServerStream) SendHeader(metadata.MD) error { return nil }
func (f *fakeServerStream) SetTrailer(metadata.MD)       {}
func (f *fakeServerStream) Context() context.Context     { return f.ctx }
func (f *fakeServerStream) SendMsg(m any) error {
	f.out = append(f.out, m.(*trackpb.TrackMessage))
	return nil
}
func (f *fakeServerStream) RecvMsg(m any) error { return nil }

var _ grpc.ServerStream = (*fakeServerStream)(nil)

func TestServer_DownloadTrackStream_RejectsUnknownFlight(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stream := &downloadStub{fakeServerStream: &fakeServerStream{ctx: ctx}}

	err := s.DownloadTrackStream(&trackpb.DownloadTrackStreamRequest{FlightID: "E2B8A9FF-123B-49AB-B330-44CEAB68D465"}, stream)
	require.Error(t, err)
}

// downloadStub adapts fakeServerStream to trackpb.DownloadTrackStream_Server.
type downloadStub struct {
	*fakeServerStream
}

func (d *downloadStub) Send(m *trackpb.TrackMessage) error {
	return d.SendMsg(m)
}
