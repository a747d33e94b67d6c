// Package ingest implements the bidirectional UploadTrackStream engine:
// per-connection metadata extraction, append with auto-tagging, echo
// probes, and active-flight bookkeeping.
package ingest

import (
	"google.golang.org/grpc/metadata"

	"github.com/tangomike/tm-grpc/pkg/trackpb"
)

// FlightMeta is the set of headers a client must (and may) send when
// opening an ingest stream.
type FlightMeta struct {
	FlightID        string
	ATCID           string
	AuthToken       string
	ATCType         string
	ATCFlightNumber string
	AircraftTitle   string
}

const (
	keyFlightID  = "x-flight-id"
	keyATCID     = "x-atc-id"
	keyAuthToken = "x-auth-token"
	keyATCType   = "x-atc-type"
	keyFlightNum = "x-atc-flight-number"
	keyTitle     = "x-title"
)

func extractKey(md metadata.MD, key string) (string, bool) {
	values := md.Get(key)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func extractRequiredKey(md metadata.MD, key string) (string, error) {
	v, ok := extractKey(md, key)
	if !ok {
		return "", trackpb.ErrMissingMetadata(key)
	}
	return v, nil
}

// MetaFromContext builds a FlightMeta from an incoming stream's
// metadata, erroring if a required header is missing.
func MetaFromContext(md metadata.MD) (FlightMeta, error) {
	var m FlightMeta
	var err error
	if m.FlightID, err = extractRequiredKey(md, keyFlightID); err != nil {
		return FlightMeta{}, err
	}
	if m.ATCID, err = extractRequiredKey(md, keyATCID); err != nil {
		return FlightMeta{}, err
	}
	if m.AuthToken, err = extractRequiredKey(md, keyAuthToken); err != nil {
		return FlightMeta{}, err
	}
	m.ATCType, _ = extractKey(md, keyATCType)
	m.ATCFlightNumber, _ = extractKey(md, keyFlightNum)
	m.AircraftTitle, _ = extractKey(md, keyTitle)
	return m, nil
}
