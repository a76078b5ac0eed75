package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlake-labs/opcua-server/pkg/ua/attribute"
	"github.com/northlake-labs/opcua-server/pkg/ua/datasource"
	"github.com/northlake-labs/opcua-server/pkg/ua/externalns"
	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore/memory"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
	"github.com/northlake-labs/opcua-server/pkg/ua/variant"
)

func newStore(t *testing.T, id nodeid.NodeId) *memory.Store {
	t.Helper()
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.VariableNode{
		Head:  node.Head{ID: id, DisplayName: nodeid.LocalizedText{Text: "v"}},
		Value: node.VariableValue{Kind: node.ValueSourceVariant, Variant: variant.NewScalarCopy(int32(1), types.Int32)},
	}))
	return s
}

// ============================================================================
// Read Batch Tests
// ============================================================================

func TestService_Read_EmptyBatch(t *testing.T) {
	t.Parallel()

	svc := New(memory.New(), nil)
	_, code := svc.Read(context.Background(), 0, attribute.TimestampsBoth, nil)
	assert.Equal(t, status.BadNothingToDo, code)
}

func TestService_Read_NegativeMaxAge(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	svc := New(newStore(t, id), nil)
	_, code := svc.Read(context.Background(), -1, attribute.TimestampsBoth, []attribute.ReadRequest{{NodeID: id, AttributeID: attribute.IDDisplayName}})
	assert.Equal(t, status.BadMaxAgeInvalid, code)
}

func TestService_Read_InvalidTimestampsToReturn(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	svc := New(newStore(t, id), nil)
	_, code := svc.Read(context.Background(), 0, attribute.TimestampsToReturn(99), []attribute.ReadRequest{{NodeID: id, AttributeID: attribute.IDDisplayName}})
	assert.Equal(t, status.BadTimestampsToReturnInvalid, code)
}

func TestService_Read_FansOutEachItem(t *testing.T) {
	t.Parallel()

	idA := nodeid.NewNumeric(1, 1)
	idB := nodeid.NewNumeric(1, 2)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: idA, DisplayName: nodeid.LocalizedText{Text: "a"}}}))
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: idB, DisplayName: nodeid.LocalizedText{Text: "b"}}}))

	svc := New(s, nil)
	results, code := svc.Read(context.Background(), 0, attribute.TimestampsBoth, []attribute.ReadRequest{
		{NodeID: idA, AttributeID: attribute.IDDisplayName},
		{NodeID: idB, AttributeID: attribute.IDDisplayName},
	})
	require.Equal(t, status.Good, code)
	require.Len(t, results, 2)
	assert.Equal(t, nodeid.LocalizedText{Text: "a"}, results[0].Value.Value.Data)
	assert.Equal(t, nodeid.LocalizedText{Text: "b"}, results[1].Value.Value.Data)
}

func TestService_Read_UnknownNodeYieldsStatusOnly(t *testing.T) {
	t.Parallel()

	svc := New(memory.New(), nil)
	results, code := svc.Read(context.Background(), 0, attribute.TimestampsBoth, []attribute.ReadRequest{
		{NodeID: nodeid.NewNumeric(1, 404), AttributeID: attribute.IDDisplayName},
	})
	require.Equal(t, status.Good, code)
	assert.Equal(t, status.BadNodeIDUnknown, results[0].Value.Status)
}

// ============================================================================
// Write Batch Tests
// ============================================================================

func TestService_Write_EmptyBatch(t *testing.T) {
	t.Parallel()

	svc := New(memory.New(), nil)
	_, code := svc.Write(context.Background(), nil)
	assert.Equal(t, status.BadNothingToDo, code)
}

func TestService_Write_FansOutEachItem(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := newStore(t, id)
	svc := New(s, nil)

	results, code := svc.Write(context.Background(), []attribute.WriteRequest{
		{NodeID: id, AttributeID: attribute.IDValue, Value: datasource.DataValue{HasValue: true, Value: variant.NewScalarCopy(int32(5), types.Int32)}},
	})
	require.Equal(t, status.Good, code)
	assert.Equal(t, []status.Code{status.Good}, results)

	n, _, _ := s.Get(id)
	assert.Equal(t, int32(5), n.(*node.VariableNode).Value.Variant.Data)
}

// ============================================================================
// External Namespace Delegation Tests
// ============================================================================

type countingNamespace struct {
	index    uint16
	readHits int
}

func (c *countingNamespace) NamespaceIndex() uint16 { return c.index }

func (c *countingNamespace) ReadNodes(ctx context.Context, items []attribute.ReadRequest, indices []int, results []datasource.DataValue) status.Code {
	c.readHits++
	for _, i := range indices {
		results[i] = datasource.DataValue{HasValue: true, Value: variant.NewScalarCopy(int32(77), types.Int32)}
	}
	return status.Good
}

func (c *countingNamespace) WriteNodes(ctx context.Context, items []attribute.WriteRequest, indices []int, results []status.Code) status.Code {
	for _, i := range indices {
		results[i] = status.Good
	}
	return status.Good
}

func TestService_Read_DelegatesMatchingNamespaceOnce(t *testing.T) {
	t.Parallel()

	reg := externalns.NewRegistry()
	ns := &countingNamespace{index: 5}
	reg.Register(ns)

	svc := New(memory.New(), reg)
	results, code := svc.Read(context.Background(), 0, attribute.TimestampsBoth, []attribute.ReadRequest{
		{NodeID: nodeid.NewNumeric(5, 1), AttributeID: attribute.IDValue},
		{NodeID: nodeid.NewNumeric(5, 2), AttributeID: attribute.IDValue},
	})
	require.Equal(t, status.Good, code)
	assert.Equal(t, 1, ns.readHits, "a namespace's ReadNodes must be called exactly once per batch")
	assert.Equal(t, int32(77), results[0].Value.Value.Data)
	assert.Equal(t, int32(77), results[1].Value.Value.Data)
}

func TestService_Read_UnmatchedNamespaceFallsBackToStore(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(9, 1)
	s := newStore(t, id)
	reg := externalns.NewRegistry()
	reg.Register(&countingNamespace{index: 5})

	svc := New(s, reg)
	results, code := svc.Read(context.Background(), 0, attribute.TimestampsBoth, []attribute.ReadRequest{
		{NodeID: id, AttributeID: attribute.IDDisplayName},
	})
	require.Equal(t, status.Good, code)
	assert.Equal(t, nodeid.LocalizedText{Text: "v"}, results[0].Value.Value.Data)
}
