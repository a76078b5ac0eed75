package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for address-space service operations. Follows
// OpenTelemetry semantic-convention style (dotted namespaces), the same
// layout the teacher's internal/telemetry used for its protocol
// attributes, generalized from "fs.*"/"nfs.*" to the OPC UA service
// surface.
const (
	AttrServiceName   = "opcua.service"          // Read, Write, Browse, ...
	AttrRequestID     = "opcua.request_id"       // caller-supplied correlation id
	AttrNodeID        = "opcua.node_id"          // NodeId under operation, string-encoded
	AttrAttributeID   = "opcua.attribute_id"     // numeric attribute id
	AttrNamespaceIdx  = "opcua.namespace_index"  // NodeId namespace index
	AttrIndexRange    = "opcua.index_range"      // NumericRange string
	AttrBatchSize     = "opcua.batch_size"       // number of items in a batch
	AttrStatus        = "opcua.status"           // resulting status code
	AttrStatusMsg     = "opcua.status_msg"       // human-readable status name
	AttrRetryAttempt  = "opcua.retry_attempt"     // edit-node CAS retry attempt
	AttrDelegateCount = "opcua.delegate_count"   // items delegated to an external namespace
	AttrStoreName     = "opcua.store_name"       // NodeStore backend identifier
	AttrBucket        = "opcua.blobstore.bucket" // S3 bucket for blob-backed DataSources
)

// ServiceName returns an attribute for the service call name.
func ServiceName(name string) attribute.KeyValue {
	return attribute.String(AttrServiceName, name)
}

// RequestID returns an attribute for the request correlation id.
func RequestID(id string) attribute.KeyValue {
	return attribute.String(AttrRequestID, id)
}

// NodeID returns an attribute for a NodeId, string-encoded.
func NodeID(id string) attribute.KeyValue {
	return attribute.String(AttrNodeID, id)
}

// AttributeID returns an attribute for a numeric attribute id.
func AttributeID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrAttributeID, int64(id))
}

// NamespaceIndex returns an attribute for a NodeId's namespace index.
func NamespaceIndex(idx uint16) attribute.KeyValue {
	return attribute.Int64(AttrNamespaceIdx, int64(idx))
}

// IndexRange returns an attribute for a NumericRange string.
func IndexRange(r string) attribute.KeyValue {
	return attribute.String(AttrIndexRange, r)
}

// BatchSize returns an attribute for the number of items in a batch.
func BatchSize(n int) attribute.KeyValue {
	return attribute.Int(AttrBatchSize, n)
}

// Status returns an attribute for the resulting status code.
func Status(code uint32) attribute.KeyValue {
	return attribute.Int64(AttrStatus, int64(code))
}

// StatusMsg returns an attribute for the human-readable status name.
func StatusMsg(msg string) attribute.KeyValue {
	return attribute.String(AttrStatusMsg, msg)
}

// RetryAttempt returns an attribute for an edit-node CAS retry attempt.
func RetryAttempt(n int) attribute.KeyValue {
	return attribute.Int(AttrRetryAttempt, n)
}

// DelegateCount returns an attribute for the number of items delegated
// to an external namespace.
func DelegateCount(n int) attribute.KeyValue {
	return attribute.Int(AttrDelegateCount, n)
}

// StoreName returns an attribute for the NodeStore backend identifier.
func StoreName(name string) attribute.KeyValue {
	return attribute.String(AttrStoreName, name)
}

// Bucket returns an attribute for an S3 bucket name.
func Bucket(name string) attribute.KeyValue {
	return attribute.String(AttrBucket, name)
}

// StartServiceSpan starts a span for a Read/Write/Browse service call,
// the OPC UA analogue of the teacher's StartNFSSpan/StartProtocolSpan
// convenience constructors.
func StartServiceSpan(ctx context.Context, service string, batchSize int, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{ServiceName(service), BatchSize(batchSize)}, attrs...)
	return StartSpan(ctx, "opcua."+service, trace.WithAttributes(allAttrs...))
}

// StartEditSpan starts a span for an edit-node CAS retry loop iteration.
func StartEditSpan(ctx context.Context, nodeID string, attempt int) (context.Context, trace.Span) {
	return StartSpan(ctx, "opcua.edit_node", trace.WithAttributes(NodeID(nodeID), RetryAttempt(attempt)))
}
