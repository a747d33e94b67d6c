package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/tangomike/tm-grpc/pkg/activeset"
	"github.com/tangomike/tm-grpc/pkg/flightdb"
	"github.com/tangomike/tm-grpc/pkg/geoindex"
	"github.com/tangomike/tm-grpc/pkg/regclient"
	"github.com/tangomike/tm-grpc/pkg/track"
	"github.com/tangomike/tm-grpc/pkg/tracker"
	"github.com/tangomike/tm-grpc/pkg/trackpb"
)

// inboundQueueCapacity bounds a connection's inbound frame queue. A
// slow-appending server backs up without unbounded memory growth,
// applying backpressure to the client's send calls once full.
const inboundQueueCapacity = 100

// Engine runs the UploadTrackStream handler.
type Engine struct {
	store  *track.Store
	geo    *geoindex.Index
	active *activeset.Set
	stats  *tracker.Tracker
	reg    *regclient.Client
	db     *flightdb.DB
}

// New builds an ingest Engine over the given dependencies. db may be
// nil, in which case no flight summaries are recorded.
func New(store *track.Store, geo *geoindex.Index, active *activeset.Set, stats *tracker.Tracker, reg *regclient.Client, db *flightdb.DB) *Engine {
	return &Engine{store: store, geo: geo, active: active, stats: stats, reg: reg, db: db}
}

// Handle drives one client's bidirectional ingest stream to completion.
func (e *Engine) Handle(stream trackpb.UploadTrackStream_Server) error {
	ctx := stream.Context()
	md, _ := metadata.FromIncomingContext(ctx)
	meta, err := MetaFromContext(md)
	if err != nil {
		return err
	}

	remote := "unknown"
	if p, ok := peer.FromContext(ctx); ok {
		remote = p.Addr.String()
	}
	slog.Info("ingest stream connected", "remote", remote, "flight_id", meta.FlightID)

	// Two concurrent upload streams for the same flight would each hold
	// their own *track.File handle with its own last-point cache; reject
	// the second one outright.
	if !e.active.TryAdd(meta.FlightID) {
		return status.Errorf(codes.AlreadyExists, "ingest: flight %s already has an active upload stream", meta.FlightID)
	}

	tf, err := e.store.OpenOrCreate(meta.FlightID)
	if err != nil {
		e.active.Remove(meta.FlightID)
		return trackpb.StatusFromError(err)
	}
	defer tf.Close()

	if e.reg != nil && e.reg.Enabled() {
		go e.reg.CheckFlightIDAdvisory(context.Background(), meta.FlightID, meta.AuthToken)
	}

	defer func() {
		e.active.Remove(meta.FlightID)
		e.saveSummary(tf, meta.FlightID)
		e.stats.Forget(meta.FlightID)
		slog.Info("ingest stream disconnected", "remote", remote, "flight_id", meta.FlightID)
	}()

	inbound := make(chan *trackpb.UploadTrackStreamRequest, inboundQueueCapacity)
	recvErrCh := make(chan error, 1)
	go func() {
		defer close(inbound)
		for {
			req, err := stream.Recv()
			if err != nil {
				recvErrCh <- err
				return
			}
			select {
			case inbound <- req:
			case <-ctx.Done():
				recvErrCh <- ctx.Err()
				return
			}
		}
	}()

	for req := range inbound {
		resp, err := e.process(tf, meta.FlightID, req)
		if err != nil {
			e.stats.TrackAppendError(meta.FlightID)
			return trackpb.StatusFromError(err)
		}
		if resp != nil {
			if err := stream.Send(resp); err != nil {
				return err
			}
		}
	}

	if recvErr := <-recvErrCh; recvErr != nil && !errors.Is(recvErr, io.EOF) {
		return recvErr
	}
	return nil
}

// process answers one inbound frame. A request with neither Track nor
// Echo set is a protocol violation and terminates the stream.
func (e *Engine) process(tf *track.File, flightID string, req *trackpb.UploadTrackStreamRequest) (*trackpb.UploadTrackStreamResponse, error) {
	switch {
	case req.Track != nil:
		if err := e.appendTrackMessage(tf, flightID, req.Track); err != nil {
			return nil, err
		}
		return &trackpb.UploadTrackStreamResponse{
			Ack: &trackpb.UploadTrackStreamAck{RequestID: req.RequestID},
		}, nil
	case req.Echo != nil:
		e.stats.TrackEchoAnswered(flightID)
		return &trackpb.UploadTrackStreamResponse{
			Ack: &trackpb.UploadTrackStreamAck{
				RequestID: req.RequestID,
				Echo: &trackpb.EchoResponse{
					ClientTimestampUs: req.Echo.ClientTimestampUs,
					ServerTimestampUs: uint64(time.Now().UnixMicro()),
				},
			},
		}, nil
	default:
		return nil, fmt.Errorf("ingest: request %d carries neither a track message nor an echo probe", req.RequestID)
	}
}

func (e *Engine) appendTrackMessage(tf *track.File, flightID string, msg *trackpb.TrackMessage) error {
	rec, ok := msg.ToRecord()
	if !ok {
		slog.Error("track message carries no point or touchdown", "flight_id", flightID)
		return fmt.Errorf("ingest: track message for flight %s carries no variant", flightID)
	}
	switch {
	case rec.Point != nil:
		if rec.Point.OnGnd {
			e.autoTagDeparture(tf, rec.Point.Lng, rec.Point.Lat)
		}
		collapsed, err := tf.Append(rec)
		if err != nil {
			return err
		}
		if collapsed {
			e.stats.TrackDedupCollapse(flightID)
		}
		e.stats.TrackPointAppended(flightID)
	case rec.TouchDown != nil:
		e.autoTagArrival(tf, rec.TouchDown.Lng, rec.TouchDown.Lat)
		if _, err := tf.Append(rec); err != nil {
			return err
		}
		e.stats.TrackTouchDownAppended(flightID)
	}
	return nil
}

// saveSummary records the flight's accumulated ingest counters and
// header airports on stream disconnect, so totals survive a restart.
func (e *Engine) saveSummary(tf *track.File, flightID string) {
	if e.db == nil {
		return
	}
	st := e.stats.Snapshot()[flightID]
	dep, _ := tf.Departure()
	arr, _ := tf.Arrival()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := e.db.SaveSummary(ctx, flightdb.Summary{
		FlightID:   flightID,
		Departure:  dep,
		Arrival:    arr,
		Points:     st.PointsAppended,
		TouchDowns: st.TouchDownsAppended,
		Collapses:  st.DedupCollapses,
		LastSeen:   time.Now(),
	})
	if err != nil {
		slog.Warn("failed to save flight summary", "flight_id", flightID, "error", err)
	}
}

func (e *Engine) autoTagDeparture(tf *track.File, lng, lat float64) {
	dep, err := tf.Departure()
	if err != nil || dep != "" {
		return
	}
	if a, ok := e.geo.Nearest(lng, lat); ok {
		if err := tf.SetDeparture(a.Ident); err != nil {
			slog.Warn("failed to set departure", "error", err)
		}
	}
}

func (e *Engine) autoTagArrival(tf *track.File, lng, lat float64) {
	arr, err := tf.Arrival()
	if err != nil || arr != "" {
		return
	}
	if a, ok := e.geo.Nearest(lng, lat); ok {
		if err := tf.SetArrival(a.Ident); err != nil {
			slog.Warn("failed to set arrival", "error", err)
		}
	}
}
