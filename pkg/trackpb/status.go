package trackpb

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tangomike/tm-grpc/pkg/track"
)

// StatusFromError maps a track.Error to the gRPC status code closest to
// its meaning; anything else comes back as Internal.
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}
	var te *track.Error
	if !errors.As(err, &te) {
		return status.Error(codes.Internal, err.Error())
	}
	if te.Kind == track.ErrNotFound {
		return status.Error(codes.NotFound, te.Error())
	}
	return status.Error(codes.Internal, te.Error())
}

// ErrMissingMetadata is returned when a required ingest header is absent
// from the stream's metadata.
func ErrMissingMetadata(key string) error {
	return status.Errorf(codes.InvalidArgument, "trackpb: missing required metadata %q", key)
}
