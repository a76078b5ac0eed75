package grpcapi

// NodeIDString is the "ns=<index>;<i|s>=<identifier>" subset of the debug
// encoding produced by nodeid.NodeId.String (GUID and byte-string forms
// are not accepted), used here as the wire form for
// the admin surface (spec.md §6 defers the full OPC UA binary NodeId
// encoding to a transport layer outside this core).

// GetNodeRequest asks for a single node's head attributes.
type GetNodeRequest struct {
	NodeID string `json:"node_id"`
}

// GetNodeResponse reports a node's class and common attributes, or a
// non-Good Status if the node was not found.
type GetNodeResponse struct {
	Status        string `json:"status"`
	NodeClass     string `json:"node_class,omitempty"`
	BrowseName    string `json:"browse_name,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	Description   string `json:"description,omitempty"`
	ReferenceCount int   `json:"reference_count,omitempty"`
}

// BrowseReferencesRequest asks for the outgoing/inverse references of a
// node.
type BrowseReferencesRequest struct {
	NodeID string `json:"node_id"`
}

// ReferenceInfo describes one edge reported by BrowseReferences.
type ReferenceInfo struct {
	ReferenceTypeID string `json:"reference_type_id"`
	TargetID        string `json:"target_id"`
	IsInverse       bool   `json:"is_inverse"`
}

// BrowseReferencesResponse lists a node's references, or a non-Good
// Status if the node was not found.
type BrowseReferencesResponse struct {
	Status     string          `json:"status"`
	References []ReferenceInfo `json:"references,omitempty"`
}

// RegisterExternalNamespaceRequest records an external namespace for
// operator visibility. Registration here is administrative bookkeeping:
// wiring the live externalns.Namespace delegate that actually services
// reads/writes for the namespace is a deployment-time decision (made via
// configuration, not this RPC), since the delegate's read/write
// semantics are backend-specific and cannot be safely constructed from a
// bare namespace index and URI.
type RegisterExternalNamespaceRequest struct {
	NamespaceIndex uint32 `json:"namespace_index"`
	URI            string `json:"uri"`
	Description    string `json:"description,omitempty"`
}

// RegisterExternalNamespaceResponse acknowledges a registration.
type RegisterExternalNamespaceResponse struct {
	Status string `json:"status"`
}
