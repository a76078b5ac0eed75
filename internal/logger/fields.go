package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Service & Operation
	// ========================================================================
	KeyServiceName = "service"     // Service call name: Read, Write, Browse, etc.
	KeyRequestID   = "request_id"  // Caller-supplied request correlation id
	KeyStatus      = "status"      // OPC UA status code (numeric)
	KeyStatusMsg   = "status_msg"  // Human-readable status name (e.g. BadNodeIdUnknown)
	KeyBatchSize   = "batch_size"  // Number of items in a Read/Write batch
	KeyMaxAge      = "max_age"     // Requested maxAge for a Read batch
	KeyTimestamps  = "timestamps"  // TimestampsToReturn value for a Read batch

	// ========================================================================
	// Address Space
	// ========================================================================
	KeyNodeID         = "node_id"         // NodeId under operation, string-encoded
	KeyAttributeID    = "attribute_id"    // Numeric attribute id
	KeyAttributeName  = "attribute_name"  // Attribute name (Value, DisplayName, etc.)
	KeyNodeClass      = "node_class"      // Node class of the node under operation
	KeyNamespaceIndex = "namespace_index" // NamespaceIndex of a NodeId
	KeyIndexRange     = "index_range"     // NumericRange string on a Value access
	KeyDataType       = "data_type"       // DataType NodeId of a Variant

	// ========================================================================
	// Copy-on-write Edit
	// ========================================================================
	KeyVersion      = "version"       // NodeStore entry version
	KeyRetryAttempt = "retry_attempt" // Edit-node CAS retry attempt number
	KeyMaxRetries   = "max_retries"   // Maximum CAS retry attempts

	// ========================================================================
	// External Namespace Delegation
	// ========================================================================
	KeyDelegateCount = "delegate_count" // Number of items delegated to an external namespace

	// ========================================================================
	// Storage Backend
	// ========================================================================
	KeyStoreName = "store_name" // NodeStore backend identifier: memory, badger, postgres
	KeyStoreType = "store_type" // Store backend kind
	KeyBucket    = "bucket"     // S3 bucket name for blob-backed DataSources
	KeyKey       = "key"        // Object key in blob storage
	KeyRegion    = "region"     // Cloud region
	KeyAttempt   = "attempt"    // Generic retry attempt number

	// ========================================================================
	// Client Identification
	// ========================================================================
	KeyClientAddr = "client_addr" // Admin-API client address
	KeySubject    = "subject"     // Authenticated JWT subject

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorCode  = "error_code"  // Numeric error code
	KeyOperation  = "operation"   // Sub-operation type for complex operations
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// ----------------------------------------------------------------------------
// Distributed Tracing
// ----------------------------------------------------------------------------

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// ----------------------------------------------------------------------------
// Service & Operation
// ----------------------------------------------------------------------------

// ServiceName returns a slog.Attr for the service call name
func ServiceName(name string) slog.Attr {
	return slog.String(KeyServiceName, name)
}

// RequestID returns a slog.Attr for the request correlation id
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Status returns a slog.Attr for an OPC UA status code
func Status(code uint32) slog.Attr {
	return slog.Uint64(KeyStatus, uint64(code))
}

// StatusMsg returns a slog.Attr for the human-readable status name
func StatusMsg(msg string) slog.Attr {
	return slog.String(KeyStatusMsg, msg)
}

// BatchSize returns a slog.Attr for the number of items in a batch
func BatchSize(n int) slog.Attr {
	return slog.Int(KeyBatchSize, n)
}

// MaxAge returns a slog.Attr for a Read batch's requested maxAge
func MaxAge(ms float64) slog.Attr {
	return slog.Float64(KeyMaxAge, ms)
}

// Timestamps returns a slog.Attr for a Read batch's TimestampsToReturn value
func Timestamps(v int) slog.Attr {
	return slog.Int(KeyTimestamps, v)
}

// ----------------------------------------------------------------------------
// Address Space
// ----------------------------------------------------------------------------

// NodeID returns a slog.Attr for a NodeId, string-encoded
func NodeID(id string) slog.Attr {
	return slog.String(KeyNodeID, id)
}

// AttributeID returns a slog.Attr for a numeric attribute id
func AttributeID(id uint32) slog.Attr {
	return slog.Uint64(KeyAttributeID, uint64(id))
}

// AttributeName returns a slog.Attr for an attribute's name
func AttributeName(name string) slog.Attr {
	return slog.String(KeyAttributeName, name)
}

// NodeClass returns a slog.Attr for a node's class
func NodeClass(class string) slog.Attr {
	return slog.String(KeyNodeClass, class)
}

// NamespaceIndex returns a slog.Attr for a NodeId's namespace index
func NamespaceIndex(idx uint16) slog.Attr {
	return slog.Uint64(KeyNamespaceIndex, uint64(idx))
}

// IndexRange returns a slog.Attr for a NumericRange string
func IndexRange(r string) slog.Attr {
	return slog.String(KeyIndexRange, r)
}

// DataType returns a slog.Attr for a Variant's DataType NodeId
func DataType(id string) slog.Attr {
	return slog.String(KeyDataType, id)
}

// ----------------------------------------------------------------------------
// Copy-on-write Edit
// ----------------------------------------------------------------------------

// Version returns a slog.Attr for a NodeStore entry version
func Version(v uint64) slog.Attr {
	return slog.Uint64(KeyVersion, v)
}

// RetryAttempt returns a slog.Attr for an edit-node CAS retry attempt
func RetryAttempt(n int) slog.Attr {
	return slog.Int(KeyRetryAttempt, n)
}

// MaxRetries returns a slog.Attr for the maximum CAS retry attempts
func MaxRetries(n int) slog.Attr {
	return slog.Int(KeyMaxRetries, n)
}

// ----------------------------------------------------------------------------
// External Namespace Delegation
// ----------------------------------------------------------------------------

// DelegateCount returns a slog.Attr for the number of items delegated to an
// external namespace
func DelegateCount(n int) slog.Attr {
	return slog.Int(KeyDelegateCount, n)
}

// ----------------------------------------------------------------------------
// Storage Backend
// ----------------------------------------------------------------------------

// StoreName returns a slog.Attr for the NodeStore backend identifier
func StoreName(name string) slog.Attr {
	return slog.String(KeyStoreName, name)
}

// StoreType returns a slog.Attr for the store backend kind
func StoreType(t string) slog.Attr {
	return slog.String(KeyStoreType, t)
}

// Bucket returns a slog.Attr for an S3 bucket name
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// Key returns a slog.Attr for an object key in blob storage
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// Region returns a slog.Attr for a cloud region
func Region(r string) slog.Attr {
	return slog.String(KeyRegion, r)
}

// Attempt returns a slog.Attr for a generic retry attempt number
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// ----------------------------------------------------------------------------
// Client Identification
// ----------------------------------------------------------------------------

// ClientAddr returns a slog.Attr for an admin-API client address
func ClientAddr(addr string) slog.Attr {
	return slog.String(KeyClientAddr, addr)
}

// Subject returns a slog.Attr for an authenticated JWT subject
func Subject(sub string) slog.Attr {
	return slog.String(KeySubject, sub)
}

// ----------------------------------------------------------------------------
// Operation Metadata
// ----------------------------------------------------------------------------

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for numeric error code
func ErrorCode(code int) slog.Attr {
	return slog.Int(KeyErrorCode, code)
}

// Operation returns a slog.Attr for sub-operation type
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}
