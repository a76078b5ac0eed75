// Package grpcapi implements the AddressSpaceAdmin gRPC service
// (spec.md §6's admin/control surface, additive): GetNode,
// BrowseReferences, and RegisterExternalNamespace, letting an operator
// inspect a running server's address space without an OPC UA client.
//
// Grounded on the teacher's control-plane gRPC shape (a ServiceDesc plus
// hand-rolled method handlers matching protoc-gen-go-grpc's output) and
// authenticated the way pkg/controlplane/api/middleware.JWTAuth
// authenticates its HTTP surface, adapted here to a unary server
// interceptor.
package grpcapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	cpstore "github.com/northlake-labs/opcua-server/pkg/controlplane/store"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/service"
)

// Server implements AddressSpaceAdminServer against a running Service.
type Server struct {
	svc *service.Service

	mu              sync.RWMutex
	namespaceRecord map[uint32]RegisterExternalNamespaceRequest

	// registry, if set, persists RegisterExternalNamespace calls beyond
	// the in-memory namespaceRecord map (see WithRegistry).
	registry *cpstore.Store
}

// NewServer returns a Server reading from svc's Store. Registrations
// recorded via RegisterExternalNamespace are kept in memory only unless
// WithRegistry attaches a persistent registry.
func NewServer(svc *service.Service) *Server {
	return &Server{svc: svc, namespaceRecord: make(map[uint32]RegisterExternalNamespaceRequest)}
}

// WithRegistry attaches a persistent namespace registry, returning s for
// chaining.
func (s *Server) WithRegistry(registry *cpstore.Store) *Server {
	s.registry = registry
	return s
}

// GetNode looks up a single node's head attributes.
func (s *Server) GetNode(ctx context.Context, req *GetNodeRequest) (*GetNodeResponse, error) {
	id, err := parseNodeID(req.NodeID)
	if err != nil {
		return nil, grpcstatus.Error(codes.InvalidArgument, err.Error())
	}

	n, _, found := s.svc.Store.Get(id)
	if !found {
		return &GetNodeResponse{Status: "BadNodeIdUnknown"}, nil
	}

	head := n.Head()
	return &GetNodeResponse{
		Status:         "Good",
		NodeClass:      n.Class().String(),
		BrowseName:     head.BrowseName.Name,
		DisplayName:    head.DisplayName.Text,
		Description:    head.Description.Text,
		ReferenceCount: len(head.References),
	}, nil
}

// BrowseReferences lists a node's outgoing and inverse references.
func (s *Server) BrowseReferences(ctx context.Context, req *BrowseReferencesRequest) (*BrowseReferencesResponse, error) {
	id, err := parseNodeID(req.NodeID)
	if err != nil {
		return nil, grpcstatus.Error(codes.InvalidArgument, err.Error())
	}

	n, _, found := s.svc.Store.Get(id)
	if !found {
		return &BrowseReferencesResponse{Status: "BadNodeIdUnknown"}, nil
	}

	refs := n.Head().References
	out := make([]ReferenceInfo, len(refs))
	for i, r := range refs {
		out[i] = ReferenceInfo{
			ReferenceTypeID: r.ReferenceTypeID.String(),
			TargetID:        r.TargetID.String(),
			IsInverse:       r.IsInverse,
		}
	}
	return &BrowseReferencesResponse{Status: "Good", References: out}, nil
}

// RegisterExternalNamespace records an external namespace's metadata for
// operator visibility (see the RegisterExternalNamespaceRequest doc
// comment for why this stops short of wiring a live delegate).
func (s *Server) RegisterExternalNamespace(ctx context.Context, req *RegisterExternalNamespaceRequest) (*RegisterExternalNamespaceResponse, error) {
	if req.URI == "" {
		return nil, grpcstatus.Error(codes.InvalidArgument, "uri must not be empty")
	}

	s.mu.Lock()
	s.namespaceRecord[req.NamespaceIndex] = *req
	s.mu.Unlock()

	if s.registry != nil {
		err := s.registry.Upsert(ctx, cpstore.NamespaceRegistration{
			NamespaceIndex: req.NamespaceIndex,
			URI:            req.URI,
			Description:    req.Description,
		})
		if err != nil {
			return nil, grpcstatus.Errorf(codes.Internal, "persist registration: %v", err)
		}
	}

	return &RegisterExternalNamespaceResponse{Status: "Good"}, nil
}

// parseNodeID parses the numeric ("ns=<index>;i=<id>") and string
// ("ns=<index>;s=<id>") forms of the debug encoding produced by
// nodeid.NodeId.String back into a NodeId; GUID (g=) and byte-string (b=)
// forms are rejected with an error. This is an
// admin-surface-only concern: the core package never needs to parse a
// NodeId back from its debug rendering.
func parseNodeID(s string) (nodeid.NodeId, error) {
	parts := strings.SplitN(s, ";", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "ns=") {
		return nodeid.NodeId{}, fmt.Errorf("grpcapi: malformed node id %q", s)
	}
	ns, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "ns="), 10, 16)
	if err != nil {
		return nodeid.NodeId{}, fmt.Errorf("grpcapi: malformed namespace index in %q: %w", s, err)
	}

	kv := strings.SplitN(parts[1], "=", 2)
	if len(kv) != 2 {
		return nodeid.NodeId{}, fmt.Errorf("grpcapi: malformed identifier in %q", s)
	}

	switch kv[0] {
	case "i":
		n, err := strconv.ParseUint(kv[1], 10, 32)
		if err != nil {
			return nodeid.NodeId{}, fmt.Errorf("grpcapi: malformed numeric identifier in %q: %w", s, err)
		}
		return nodeid.NewNumeric(uint16(ns), uint32(n)), nil
	case "s":
		return nodeid.NewString(uint16(ns), kv[1]), nil
	default:
		return nodeid.NodeId{}, fmt.Errorf("grpcapi: unsupported identifier type %q in %q", kv[0], s)
	}
}
