// Package tail implements the DownloadTrackStream replay engine: send
// history after start_at_ms, then poll the file once a second for newly
// appended records until the client disconnects.
package tail

import (
	"context"
	"time"

	"github.com/tangomike/tm-grpc/pkg/track"
	"github.com/tangomike/tm-grpc/pkg/trackpb"
)

// pollInterval matches the original service's 1s tail poll; this Go
// port uses a ticker instead of a sleep loop but the cadence is the
// same external behavior. Variable (not const) so tests can shrink it.
var pollInterval = time.Second

// Sender is the subset of trackpb.DownloadTrackStream_Server tail needs,
// kept narrow so tests can fake it without a real grpc.ServerStream.
type Sender interface {
	Send(*trackpb.TrackMessage) error
}

// Run streams tf's history after startAtMs, then polls for new records
// until ctx is canceled (the client disconnecting) or a read fails.
func Run(ctx context.Context, tf *track.File, startAtMs uint64, send Sender) error {
	count, err := tf.Count()
	if err != nil {
		return err
	}

	idx := 0
	for idx < int(count) {
		if err := sendIfAfter(tf, idx, startAtMs, send); err != nil {
			return err
		}
		idx++
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			newCount, err := tf.Count()
			if err != nil {
				return err
			}
			for idx < int(newCount) {
				if err := sendRecord(tf, idx, send); err != nil {
					return err
				}
				idx++
			}
		}
	}
}

func sendIfAfter(tf *track.File, idx int, startAtMs uint64, send Sender) error {
	r, err := tf.ReadAt(idx)
	if err != nil {
		return err
	}
	if r.Ts() <= startAtMs {
		return nil
	}
	return send.Send(trackpb.RecordToWire(r))
}

func sendRecord(tf *track.File, idx int, send Sender) error {
	r, err := tf.ReadAt(idx)
	if err != nil {
		return err
	}
	return send.Send(trackpb.RecordToWire(r))
}
