package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds request-scoped logging context for a single Read or
// Write service call.
type LogContext struct {
	TraceID     string    // OpenTelemetry trace ID
	SpanID      string    // OpenTelemetry span ID
	ServiceName string    // Service call name (Read, Write, Browse, etc.)
	RequestID   string    // Caller-supplied request correlation id
	NodeID      string    // NodeId under operation, string-encoded
	AttributeID uint32    // Attribute id under operation
	StatusCode  uint32    // Resulting OPC UA status code
	StartTime   time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for a service call identified by
// requestID.
func NewLogContext(requestID string) *LogContext {
	return &LogContext{
		RequestID: requestID,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:     lc.TraceID,
		SpanID:      lc.SpanID,
		ServiceName: lc.ServiceName,
		RequestID:   lc.RequestID,
		NodeID:      lc.NodeID,
		AttributeID: lc.AttributeID,
		StatusCode:  lc.StatusCode,
		StartTime:   lc.StartTime,
	}
}

// WithServiceName returns a copy with the service call name set
func (lc *LogContext) WithServiceName(name string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.ServiceName = name
	}
	return clone
}

// WithNode returns a copy with the node id and attribute id set
func (lc *LogContext) WithNode(nodeID string, attributeID uint32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.NodeID = nodeID
		clone.AttributeID = attributeID
	}
	return clone
}

// WithStatus returns a copy with the resulting status code set
func (lc *LogContext) WithStatus(code uint32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.StatusCode = code
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
