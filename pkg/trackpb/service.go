package trackpb

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the gRPC service name under which these methods are
// registered, as protoc-gen-go-grpc would name it from a
// "tangomike.track.v1.TrackService" package/service declaration.
const ServiceName = "tangomike.track.v1.TrackService"

// TrackServiceServer is the server-side contract for the ingest/egress
// engine: the four operations from the component design.
type TrackServiceServer interface {
	UploadTrackStream(stream UploadTrackStream_Server) error
	DownloadTrackStream(req *DownloadTrackStreamRequest, stream DownloadTrackStream_Server) error
	GetTrack(ctx context.Context, req *TrackRequest) (*TrackResponse, error)
	GetActiveFlights(ctx context.Context, req *NoParams) (*ActiveFlightsResponse, error)
}

// UploadTrackStream_Server is the server-side view of the bidirectional
// ingest stream.
type UploadTrackStream_Server interface {
	Send(*UploadTrackStreamResponse) error
	Recv() (*UploadTrackStreamRequest, error)
	grpc.ServerStream
}

type uploadTrackStreamServer struct {
	grpc.ServerStream
}

func (s *uploadTrackStreamServer) Send(m *UploadTrackStreamResponse) error {
	return s.ServerStream.SendMsg(m)
}

func (s *uploadTrackStreamServer) Recv() (*UploadTrackStreamRequest, error) {
	m := new(UploadTrackStreamRequest)
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// DownloadTrackStream_Server is the server-side view of the
// history-then-live replay stream.
type DownloadTrackStream_Server interface {
	Send(*TrackMessage) error
	grpc.ServerStream
}

type downloadTrackStreamServer struct {
	grpc.ServerStream
}

func (s *downloadTrackStreamServer) Send(m *TrackMessage) error {
	return s.ServerStream.SendMsg(m)
}

func handlerUploadTrackStream(srv any, stream grpc.ServerStream) error {
	return srv.(TrackServiceServer).UploadTrackStream(&uploadTrackStreamServer{stream})
}

func handlerDownloadTrackStream(srv any, stream grpc.ServerStream) error {
	req := new(DownloadTrackStreamRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(TrackServiceServer).DownloadTrackStream(req, &downloadTrackStreamServer{stream})
}

func handlerGetTrack(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TrackRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrackServiceServer).GetTrack(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetTrack"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TrackServiceServer).GetTrack(ctx, req.(*TrackRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handlerGetActiveFlights(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NoParams)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrackServiceServer).GetActiveFlights(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetActiveFlights"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TrackServiceServer).GetActiveFlights(ctx, req.(*NoParams))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is registered on a *grpc.Server via RegisterTrackServiceServer.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrackServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetTrack", Handler: handlerGetTrack},
		{MethodName: "GetActiveFlights", Handler: handlerGetActiveFlights},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "UploadTrackStream",
			Handler:       handlerUploadTrackStream,
			ServerStreams: true,
			ClientStreams: true,
		},
		{
			StreamName:    "DownloadTrackStream",
			Handler:       handlerDownloadTrackStream,
			ServerStreams: true,
		},
	},
	Metadata: "track.proto",
}

// RegisterTrackServiceServer registers srv's handlers on s.
func RegisterTrackServiceServer(s grpc.ServiceRegistrar, srv TrackServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
