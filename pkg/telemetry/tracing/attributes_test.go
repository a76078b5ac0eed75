package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeHelpers(t *testing.T) {
	t.Run("ServiceName", func(t *testing.T) {
		attr := ServiceName("Read")
		assert.Equal(t, AttrServiceName, string(attr.Key))
		assert.Equal(t, "Read", attr.Value.AsString())
	})

	t.Run("RequestID", func(t *testing.T) {
		attr := RequestID("req-1")
		assert.Equal(t, AttrRequestID, string(attr.Key))
		assert.Equal(t, "req-1", attr.Value.AsString())
	})

	t.Run("NodeID", func(t *testing.T) {
		attr := NodeID("ns=1;i=1001")
		assert.Equal(t, AttrNodeID, string(attr.Key))
		assert.Equal(t, "ns=1;i=1001", attr.Value.AsString())
	})

	t.Run("AttributeID", func(t *testing.T) {
		attr := AttributeID(13)
		assert.Equal(t, AttrAttributeID, string(attr.Key))
		assert.Equal(t, int64(13), attr.Value.AsInt64())
	})

	t.Run("NamespaceIndex", func(t *testing.T) {
		attr := NamespaceIndex(2)
		assert.Equal(t, AttrNamespaceIdx, string(attr.Key))
		assert.Equal(t, int64(2), attr.Value.AsInt64())
	})

	t.Run("IndexRange", func(t *testing.T) {
		attr := IndexRange("1:10")
		assert.Equal(t, AttrIndexRange, string(attr.Key))
		assert.Equal(t, "1:10", attr.Value.AsString())
	})

	t.Run("BatchSize", func(t *testing.T) {
		attr := BatchSize(50)
		assert.Equal(t, AttrBatchSize, string(attr.Key))
		assert.Equal(t, int64(50), attr.Value.AsInt64())
	})

	t.Run("Status", func(t *testing.T) {
		attr := Status(0)
		assert.Equal(t, AttrStatus, string(attr.Key))
		assert.Equal(t, int64(0), attr.Value.AsInt64())
	})

	t.Run("StatusMsg", func(t *testing.T) {
		attr := StatusMsg("Good")
		assert.Equal(t, AttrStatusMsg, string(attr.Key))
		assert.Equal(t, "Good", attr.Value.AsString())
	})

	t.Run("RetryAttempt", func(t *testing.T) {
		attr := RetryAttempt(2)
		assert.Equal(t, AttrRetryAttempt, string(attr.Key))
		assert.Equal(t, int64(2), attr.Value.AsInt64())
	})

	t.Run("DelegateCount", func(t *testing.T) {
		attr := DelegateCount(3)
		assert.Equal(t, AttrDelegateCount, string(attr.Key))
		assert.Equal(t, int64(3), attr.Value.AsInt64())
	})

	t.Run("StoreName", func(t *testing.T) {
		attr := StoreName("badger")
		assert.Equal(t, AttrStoreName, string(attr.Key))
		assert.Equal(t, "badger", attr.Value.AsString())
	})

	t.Run("Bucket", func(t *testing.T) {
		attr := Bucket("my-bucket")
		assert.Equal(t, AttrBucket, string(attr.Key))
		assert.Equal(t, "my-bucket", attr.Value.AsString())
	})
}

func TestStartServiceSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartServiceSpan(ctx, "Read", 10, NodeID("ns=1;i=1001"))
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	newCtx2, span2 := StartServiceSpan(ctx, "Write", 1)
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestStartEditSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartEditSpan(ctx, "ns=1;i=1001", 1)
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()
}
