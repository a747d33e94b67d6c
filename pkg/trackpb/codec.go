package trackpb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype this package's codec is
// registered under; clients must set it via grpc.CallContentSubtype so
// requests are framed as "application/grpc+tm-json" instead of the
// default protobuf wire format.
const CodecName = "tm-json"

// jsonCodec implements encoding.Codec by marshaling/unmarshaling the
// message structs in this package as JSON. grpc-go calls Marshal/
// Unmarshal once per frame; the length-prefixed framing itself is
// handled by grpc-go regardless of codec.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("trackpb: marshal: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("trackpb: unmarshal: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
