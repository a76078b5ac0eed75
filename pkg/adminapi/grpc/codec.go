package grpcapi

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// jsonCodec marshals RPC payloads as JSON instead of protocol buffers.
// AddressSpaceAdmin's messages are hand-maintained Go structs rather
// than protoc-gen-go output (this environment has no protoc toolchain
// available), so the server is constructed with grpc.ForceServerCodec
// using this codec rather than relying on the default "proto" codec,
// which requires proto.Message-implementing types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return "json" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// codecName is passed to grpc.CallContentSubtype by clients dialing this
// service.
const codecName = "json"

// CallOption returns the grpc.CallOption a client must pass on every
// AddressSpaceAdmin call so the server's jsonCodec is selected instead
// of the default proto codec.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(codecName)
}
