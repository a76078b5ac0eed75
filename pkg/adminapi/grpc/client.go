package grpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// AddressSpaceAdminClient is the client-side counterpart of
// AddressSpaceAdminServer; this and addressSpaceAdminClient below are the
// part protoc-gen-go-grpc would normally generate alongside the server
// stubs.
type AddressSpaceAdminClient interface {
	GetNode(ctx context.Context, in *GetNodeRequest, opts ...grpc.CallOption) (*GetNodeResponse, error)
	BrowseReferences(ctx context.Context, in *BrowseReferencesRequest, opts ...grpc.CallOption) (*BrowseReferencesResponse, error)
	RegisterExternalNamespace(ctx context.Context, in *RegisterExternalNamespaceRequest, opts ...grpc.CallOption) (*RegisterExternalNamespaceResponse, error)
}

type addressSpaceAdminClient struct {
	cc *grpc.ClientConn
}

// NewAddressSpaceAdminClient wraps cc in an AddressSpaceAdminClient,
// always invoking through the hand-rolled jsonCodec content subtype (see
// codec.go) rather than the default proto codec.
func NewAddressSpaceAdminClient(cc *grpc.ClientConn) AddressSpaceAdminClient {
	return &addressSpaceAdminClient{cc: cc}
}

func (c *addressSpaceAdminClient) GetNode(ctx context.Context, in *GetNodeRequest, opts ...grpc.CallOption) (*GetNodeResponse, error) {
	out := new(GetNodeResponse)
	opts = append(opts, CallOption())
	if err := c.cc.Invoke(ctx, "/addressspace.v1.AddressSpaceAdmin/GetNode", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *addressSpaceAdminClient) BrowseReferences(ctx context.Context, in *BrowseReferencesRequest, opts ...grpc.CallOption) (*BrowseReferencesResponse, error) {
	out := new(BrowseReferencesResponse)
	opts = append(opts, CallOption())
	if err := c.cc.Invoke(ctx, "/addressspace.v1.AddressSpaceAdmin/BrowseReferences", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *addressSpaceAdminClient) RegisterExternalNamespace(ctx context.Context, in *RegisterExternalNamespaceRequest, opts ...grpc.CallOption) (*RegisterExternalNamespaceResponse, error) {
	out := new(RegisterExternalNamespaceResponse)
	opts = append(opts, CallOption())
	if err := c.cc.Invoke(ctx, "/addressspace.v1.AddressSpaceAdmin/RegisterExternalNamespace", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
