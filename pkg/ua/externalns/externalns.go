// Package externalns defines the optional external-namespace contract
// (spec.md §4.6, §6): a batch read/write delegate that a
// Service_Read/Service_Write fan-out consults before falling back to the
// single-item path, keyed by the NodeId's namespace index.
//
// Grounded on the teacher's external-volume delegation in
// pkg/metadata/volume.go, where a namespace-scoped backend is consulted
// for a subset of a batch request before the default store handles the
// rest.
package externalns

import (
	"context"

	"github.com/northlake-labs/opcua-server/pkg/ua/attribute"
	"github.com/northlake-labs/opcua-server/pkg/ua/datasource"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

// Namespace is implemented by a registered external namespace. Indices
// name positions into the original request's item array; a namespace's
// ReadNodes/WriteNodes is called at most once per batch, with exactly
// the indices whose NodeId.NamespaceIndex matches the index this
// Namespace was registered under.
type Namespace interface {
	// NamespaceIndex is the namespace index this delegate owns.
	NamespaceIndex() uint16

	// ReadNodes reads items[i] for each i in indices, writing the result
	// into results[i]. Indices outside the caller-supplied set must not
	// be touched.
	ReadNodes(ctx context.Context, items []attribute.ReadRequest, indices []int, results []datasource.DataValue) status.Code

	// WriteNodes writes items[i] for each i in indices, writing the
	// status into results[i].
	WriteNodes(ctx context.Context, items []attribute.WriteRequest, indices []int, results []status.Code) status.Code
}

// Registry is a set of Namespace delegates keyed by namespace index,
// consulted by package service before the single-item path.
type Registry struct {
	namespaces map[uint16]Namespace
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{namespaces: make(map[uint16]Namespace)}
}

// Register adds ns, replacing any previously registered delegate for the
// same namespace index.
func (r *Registry) Register(ns Namespace) {
	r.namespaces[ns.NamespaceIndex()] = ns
}

// Lookup returns the delegate for a namespace index, if any.
func (r *Registry) Lookup(nsIndex uint16) (Namespace, bool) {
	if r == nil {
		return nil, false
	}
	ns, ok := r.namespaces[nsIndex]
	return ns, ok
}
