package grpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// AddressSpaceAdminServer is the interface a concrete implementation
// (Server) must satisfy. This and _ServiceDesc below are the part
// protoc-gen-go-grpc would normally generate from
// proto/addressspace.proto (package addressspace.v1); written by hand here since this
// environment has no protoc toolchain to invoke.
type AddressSpaceAdminServer interface {
	GetNode(context.Context, *GetNodeRequest) (*GetNodeResponse, error)
	BrowseReferences(context.Context, *BrowseReferencesRequest) (*BrowseReferencesResponse, error)
	RegisterExternalNamespace(context.Context, *RegisterExternalNamespaceRequest) (*RegisterExternalNamespaceResponse, error)
}

func _AddressSpaceAdmin_GetNode_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetNodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AddressSpaceAdminServer).GetNode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/addressspace.v1.AddressSpaceAdmin/GetNode"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AddressSpaceAdminServer).GetNode(ctx, req.(*GetNodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AddressSpaceAdmin_BrowseReferences_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(BrowseReferencesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AddressSpaceAdminServer).BrowseReferences(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/addressspace.v1.AddressSpaceAdmin/BrowseReferences"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AddressSpaceAdminServer).BrowseReferences(ctx, req.(*BrowseReferencesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AddressSpaceAdmin_RegisterExternalNamespace_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterExternalNamespaceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AddressSpaceAdminServer).RegisterExternalNamespace(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/addressspace.v1.AddressSpaceAdmin/RegisterExternalNamespace"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AddressSpaceAdminServer).RegisterExternalNamespace(ctx, req.(*RegisterExternalNamespaceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// _AddressSpaceAdmin_ServiceDesc is the grpc.ServiceDesc a generated
// _grpc.pb.go would expose as AddressSpaceAdmin_ServiceDesc.
var _AddressSpaceAdmin_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "addressspace.v1.AddressSpaceAdmin",
	HandlerType: (*AddressSpaceAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetNode", Handler: _AddressSpaceAdmin_GetNode_Handler},
		{MethodName: "BrowseReferences", Handler: _AddressSpaceAdmin_BrowseReferences_Handler},
		{MethodName: "RegisterExternalNamespace", Handler: _AddressSpaceAdmin_RegisterExternalNamespace_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "addressspace/v1/addressspace.proto",
}

// RegisterAddressSpaceAdminServer registers srv on s, the way a
// generated RegisterAddressSpaceAdminServer function would.
func RegisterAddressSpaceAdminServer(s grpc.ServiceRegistrar, srv AddressSpaceAdminServer) {
	s.RegisterService(&_AddressSpaceAdmin_ServiceDesc, srv)
}
