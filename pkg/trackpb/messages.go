// Package trackpb defines the wire messages and gRPC service contract
// for the track ingest/egress engine. There is no protoc toolchain in
// this environment, so the messages are hand-authored in a shape close to
// what protoc-gen-go would produce (a grpc.ServiceDesc, typed stream
// wrappers; each oneof is a struct with one optional pointer field per
// variant rather than a wrapper interface) and serialized with a custom
// JSON codec registered under the "tm-json" content-subtype instead of
// real protobuf wire bytes. See codec.go.
package trackpb

// TrackPoint mirrors track.TrackPoint on the wire. Distance is always
// zero from a client and filled in by the server on append.
type TrackPoint struct {
	TsMs         uint64  `json:"ts_ms"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	HdgTrue      float64 `json:"hdg_true"`
	AltAMSL      float64 `json:"alt_amsl"`
	AltAGL       float64 `json:"alt_agl"`
	GndElevation float64 `json:"gnd_elevation"`
	Crs          float64 `json:"crs"`
	IAS          float64 `json:"ias"`
	TAS          float64 `json:"tas"`
	GS           float64 `json:"gs"`
	APMaster     bool    `json:"ap_master"`
	GearPct      int64   `json:"gear_pct"`
	Flaps        int64   `json:"flaps"`
	OnGnd        bool    `json:"on_gnd"`
	OnRwy        bool    `json:"on_rwy"`
	WindVel      float64 `json:"wind_vel"`
	WindDir      float64 `json:"wind_dir"`
	Distance     float64 `json:"distance"`
}

// TouchDown mirrors track.TouchDown on the wire.
type TouchDown struct {
	TsMs    uint64  `json:"ts_ms"`
	Bank    float64 `json:"bank"`
	HdgMag  float64 `json:"hdg_mag"`
	HdgTrue float64 `json:"hdg_true"`
	VelNrm  float64 `json:"vel_nrm"`
	Pitch   float64 `json:"pitch"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// TrackMessage is the {TrackPoint, TouchDown} union as sent on the wire;
// exactly one field is populated.
type TrackMessage struct {
	Point     *TrackPoint `json:"point,omitempty"`
	TouchDown *TouchDown  `json:"touch_down,omitempty"`
}

// EchoRequest is an inline keepalive/clock-sync probe a client may send
// on the upload stream. ClientTimestampUs is echoed back unchanged.
type EchoRequest struct {
	ClientTimestampUs uint64 `json:"client_timestamp_us"`
}

// EchoResponse answers an EchoRequest with both the client's original
// timestamp and the server's wall-clock time it was answered at, giving
// the client everything it needs for a round-trip clock-sync estimate.
type EchoResponse struct {
	ClientTimestampUs uint64 `json:"client_timestamp_us"`
	ServerTimestampUs uint64 `json:"server_timestamp_us"`
}

// UploadTrackStreamRequest is one frame sent by the client on the
// bidirectional ingest stream: a client-assigned, monotonically
// increasing RequestID plus either a track message to append or an
// echo probe.
type UploadTrackStreamRequest struct {
	RequestID uint64        `json:"request_id"`
	Track     *TrackMessage `json:"track,omitempty"`
	Echo      *EchoRequest  `json:"echo,omitempty"`
}

// UploadTrackStreamAck acknowledges one request, carrying the client's
// RequestID back and, for an EchoRequest, the echo payload.
type UploadTrackStreamAck struct {
	RequestID uint64        `json:"request_id"`
	Echo      *EchoResponse `json:"echo,omitempty"`
}

// UploadTrackStreamResponse is one frame sent by the server on the
// ingest stream: always an ack carrying the originating RequestID.
type UploadTrackStreamResponse struct {
	Ack *UploadTrackStreamAck `json:"ack"`
}

// DownloadTrackStreamRequest starts a replay-then-follow stream for one
// flight, starting after StartAtMs (0 replays the full history).
type DownloadTrackStreamRequest struct {
	FlightID  string `json:"flight_id"`
	StartAtMs uint64 `json:"start_at_ms"`
}

// TrackRequest asks for a single flight's full history.
type TrackRequest struct {
	FlightID string `json:"flight_id"`
}

// TrackResponse is the reply to GetTrack: the flight's identity and
// airports from the file header, plus its full history split by variant.
type TrackResponse struct {
	FlightID   string        `json:"flight_id"`
	Departure  string        `json:"departure"`
	Arrival    string        `json:"arrival"`
	Points     []*TrackPoint `json:"points"`
	TouchDowns []*TouchDown  `json:"touchdowns"`
}

// NoParams is the empty request for GetActiveFlights.
type NoParams struct{}

// ActiveFlightsResponse lists the flight ids currently being ingested.
type ActiveFlightsResponse struct {
	FlightIDs []string `json:"flight_ids"`
}
