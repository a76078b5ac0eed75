package grpcapi

import (
	"fmt"

	"google.golang.org/grpc"

	"github.com/northlake-labs/opcua-server/pkg/adminapi/auth"
	cpstore "github.com/northlake-labs/opcua-server/pkg/controlplane/store"
	"github.com/northlake-labs/opcua-server/pkg/ua/service"
)

// NewGRPCServer builds a *grpc.Server exposing AddressSpaceAdmin over
// svc, authenticated by authSvc's bearer tokens. Registered on top of
// the hand-rolled jsonCodec (see codec.go) rather than the default
// proto codec. RegisterExternalNamespace records are kept in memory
// only; use NewGRPCServerWithConfig to persist them.
func NewGRPCServer(svc *service.Service, authSvc *auth.Service) *grpc.Server {
	s := grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.UnaryInterceptor(auth.UnaryServerInterceptor(authSvc)),
	)
	RegisterAddressSpaceAdminServer(s, NewServer(svc))
	return s
}

// NewGRPCServerWithConfig builds the same server as NewGRPCServer, but
// additionally opens a persistent namespace registry when regCfg is
// non-nil. The returned close function releases the registry's
// connection pool and is always safe to call, even when regCfg is nil.
func NewGRPCServerWithConfig(svc *service.Service, authSvc *auth.Service, regCfg *cpstore.Config) (*grpc.Server, func(), error) {
	srv := NewServer(svc)
	closeRegistry := func() {}

	if regCfg != nil {
		registry, err := cpstore.Open(*regCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open namespace registry: %w", err)
		}
		srv = srv.WithRegistry(registry)
		closeRegistry = func() { _ = registry.Close() }
	}

	s := grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.UnaryInterceptor(auth.UnaryServerInterceptor(authSvc)),
	)
	RegisterAddressSpaceAdminServer(s, srv)
	return s, closeRegistry, nil
}
