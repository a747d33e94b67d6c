package trackpb

import (
	"context"

	"google.golang.org/grpc"
)

// TrackServiceClient is the client-side contract, mirroring
// TrackServiceServer.
type TrackServiceClient interface {
	UploadTrackStream(ctx context.Context, opts ...grpc.CallOption) (UploadTrackStream_Client, error)
	DownloadTrackStream(ctx context.Context, in *DownloadTrackStreamRequest, opts ...grpc.CallOption) (DownloadTrackStream_Client, error)
	GetTrack(ctx context.Context, in *TrackRequest, opts ...grpc.CallOption) (*TrackResponse, error)
	GetActiveFlights(ctx context.Context, in *NoParams, opts ...grpc.CallOption) (*ActiveFlightsResponse, error)
}

type trackServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTrackServiceClient wraps cc with the tm-json codec already selected
// for every call, so callers never need to remember CallContentSubtype.
func NewTrackServiceClient(cc grpc.ClientConnInterface) TrackServiceClient {
	return &trackServiceClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

// UploadTrackStream_Client is the client-side view of the bidirectional
// ingest stream.
type UploadTrackStream_Client interface {
	Send(*UploadTrackStreamRequest) error
	Recv() (*UploadTrackStreamResponse, error)
	grpc.ClientStream
}

type uploadTrackStreamClient struct {
	grpc.ClientStream
}

func (c *uploadTrackStreamClient) Send(m *UploadTrackStreamRequest) error {
	return c.ClientStream.SendMsg(m)
}

func (c *uploadTrackStreamClient) Recv() (*UploadTrackStreamResponse, error) {
	m := new(UploadTrackStreamResponse)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *trackServiceClient) UploadTrackStream(ctx context.Context, opts ...grpc.CallOption) (UploadTrackStream_Client, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], "/"+ServiceName+"/UploadTrackStream", withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return &uploadTrackStreamClient{stream}, nil
}

// DownloadTrackStream_Client is the client-side view of the replay
// stream.
type DownloadTrackStream_Client interface {
	Recv() (*TrackMessage, error)
	grpc.ClientStream
}

type downloadTrackStreamClient struct {
	grpc.ClientStream
}

func (c *downloadTrackStreamClient) Recv() (*TrackMessage, error) {
	m := new(TrackMessage)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *trackServiceClient) DownloadTrackStream(ctx context.Context, in *DownloadTrackStreamRequest, opts ...grpc.CallOption) (DownloadTrackStream_Client, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[1], "/"+ServiceName+"/DownloadTrackStream", withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &downloadTrackStreamClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *trackServiceClient) GetTrack(ctx context.Context, in *TrackRequest, opts ...grpc.CallOption) (*TrackResponse, error) {
	out := new(TrackResponse)
	err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetTrack", in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackServiceClient) GetActiveFlights(ctx context.Context, in *NoParams, opts ...grpc.CallOption) (*ActiveFlightsResponse, error) {
	out := new(ActiveFlightsResponse)
	err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetActiveFlights", in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
