// Package server implements trackpb.TrackServiceServer over the
// ingest, tail, track, geoindex, and activeset packages.
package server

import (
	"context"

	"github.com/tangomike/tm-grpc/pkg/activeset"
	"github.com/tangomike/tm-grpc/pkg/flightdb"
	"github.com/tangomike/tm-grpc/pkg/geoindex"
	"github.com/tangomike/tm-grpc/pkg/ingest"
	"github.com/tangomike/tm-grpc/pkg/regclient"
	"github.com/tangomike/tm-grpc/pkg/tail"
	"github.com/tangomike/tm-grpc/pkg/track"
	"github.com/tangomike/tm-grpc/pkg/tracker"
	"github.com/tangomike/tm-grpc/pkg/trackpb"
)

// Server implements trackpb.TrackServiceServer.
type Server struct {
	store  *track.Store
	geo    *geoindex.Index
	active *activeset.Set
	stats  *tracker.Tracker
	ingest *ingest.Engine
}

// New wires a Server over a track store and geo index, constructing its
// own active-flight set, ingest stats tracker, and ingest engine. db
// may be nil to disable flight summaries.
func New(store *track.Store, geo *geoindex.Index, reg *regclient.Client, db *flightdb.DB) *Server {
	active := activeset.New()
	stats := tracker.New()
	return &Server{
		store:  store,
		geo:    geo,
		active: active,
		stats:  stats,
		ingest: ingest.New(store, geo, active, stats, reg, db),
	}
}

// Stats exposes the ingest statistics tracker for diagnostics.
func (s *Server) Stats() *tracker.Tracker { return s.stats }

func (s *Server) UploadTrackStream(stream trackpb.UploadTrackStream_Server) error {
	return s.ingest.Handle(stream)
}

func (s *Server) DownloadTrackStream(req *trackpb.DownloadTrackStreamRequest, stream trackpb.DownloadTrackStream_Server) error {
	tf, err := s.store.Open(req.FlightID)
	if err != nil {
		return trackpb.StatusFromError(err)
	}
	defer tf.Close()

	if err := tail.Run(stream.Context(), tf, req.StartAtMs, stream); err != nil {
		return trackpb.StatusFromError(err)
	}
	return nil
}

func (s *Server) GetTrack(ctx context.Context, req *trackpb.TrackRequest) (*trackpb.TrackResponse, error) {
	tf, err := s.store.Open(req.FlightID)
	if err != nil {
		return nil, trackpb.StatusFromError(err)
	}
	defer tf.Close()

	records, err := tf.ReadAll()
	if err != nil {
		return nil, trackpb.StatusFromError(err)
	}
	h, err := tf.GetHeader()
	if err != nil {
		return nil, trackpb.StatusFromError(err)
	}

	resp := &trackpb.TrackResponse{
		FlightID:  h.FlightID(),
		Departure: h.Departure(),
		Arrival:   h.Arrival(),
	}
	for _, r := range records {
		if r.Point != nil {
			resp.Points = append(resp.Points, trackpb.PointToWire(r.Point))
		}
		if r.TouchDown != nil {
			resp.TouchDowns = append(resp.TouchDowns, trackpb.TouchDownToWire(r.TouchDown))
		}
	}
	return resp, nil
}

func (s *Server) GetActiveFlights(ctx context.Context, req *trackpb.NoParams) (*trackpb.ActiveFlightsResponse, error) {
	return &trackpb.ActiveFlightsResponse{FlightIDs: s.active.Snapshot()}, nil
}
