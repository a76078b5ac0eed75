package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlake-labs/opcua-server/pkg/ua/datasource"
	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore/memory"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
	"github.com/northlake-labs/opcua-server/pkg/ua/variant"
)

func valueOf(v *variant.Variant) datasource.DataValue {
	return datasource.DataValue{HasValue: true, Value: v}
}

// ============================================================================
// Write - Guard Tests
// ============================================================================

func TestWrite_NoValue(t *testing.T) {
	t.Parallel()

	s := memory.New()
	code := Write(s, WriteRequest{NodeID: nodeid.NewNumeric(1, 1), AttributeID: IDDisplayName})
	assert.Equal(t, status.BadNoData, code)
}

func TestWrite_UnknownAttributeID(t *testing.T) {
	t.Parallel()

	s := memory.New()
	code := Write(s, WriteRequest{
		NodeID:      nodeid.NewNumeric(1, 1),
		AttributeID: ID(999),
		Value:       valueOf(variant.NewScalarCopy(int32(1), types.Int32)),
	})
	assert.Equal(t, status.BadAttributeIDInvalid, code)
}

func TestWrite_IndexRangeOnNonValueAttribute(t *testing.T) {
	t.Parallel()

	s := memory.New()
	code := Write(s, WriteRequest{
		NodeID:      nodeid.NewNumeric(1, 1),
		AttributeID: IDDisplayName,
		IndexRange:  "0",
		Value:       valueOf(variant.NewScalarCopy(nodeid.LocalizedText{Text: "x"}, types.LocalizedText)),
	})
	assert.Equal(t, status.BadIndexRangeNoData, code)
}

func TestWrite_UnknownNode(t *testing.T) {
	t.Parallel()

	s := memory.New()
	code := Write(s, WriteRequest{
		NodeID:      nodeid.NewNumeric(1, 404),
		AttributeID: IDDisplayName,
		Value:       valueOf(variant.NewScalarCopy(nodeid.LocalizedText{Text: "x"}, types.LocalizedText)),
	})
	assert.Equal(t, status.BadNodeIDUnknown, code)
}

func TestWrite_AttributeIllegalForClass(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: id}}))

	code := Write(s, WriteRequest{
		NodeID:      id,
		AttributeID: IDIsAbstract,
		Value:       valueOf(variant.NewScalarCopy(true, types.Boolean)),
	})
	assert.Equal(t, status.BadNodeClassInvalid, code)
}

func TestWrite_NodeId_NotSupported(t *testing.T) {
	t.Parallel()

	// spec scenario 4.
	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: id}}))

	code := Write(s, WriteRequest{
		NodeID:      id,
		AttributeID: IDNodeId,
		Value:       valueOf(variant.NewScalarCopy(id, types.NodeID)),
	})
	assert.Equal(t, status.BadWriteNotSupported, code)
}

// ============================================================================
// Write - Value (VARIANT) Tests
// ============================================================================

func TestWrite_Value_TypeMismatchLeavesNodeUnchanged(t *testing.T) {
	t.Parallel()

	// spec scenario 5: writing an Int32 Variable's Value with a
	// BrowseName-typed variant fails BAD_TYPE_MISMATCH, node unchanged.
	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.VariableNode{
		Head:  node.Head{ID: id},
		Value: node.VariableValue{Kind: node.ValueSourceVariant, Variant: variant.NewScalarCopy(int32(7), types.Int32)},
	}))

	code := Write(s, WriteRequest{
		NodeID:      id,
		AttributeID: IDValue,
		Value:       valueOf(variant.NewScalarCopy(uint16(1), types.QualifiedName)),
	})
	assert.Equal(t, status.BadTypeMismatch, code)

	n, _, _ := s.Get(id)
	got := n.(*node.VariableNode).Value.Variant
	assert.Equal(t, int32(7), got.Data, "node must be left unchanged on write failure")
}

func TestWrite_Value_ScalarMove(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.VariableNode{
		Head:  node.Head{ID: id},
		Value: node.VariableValue{Kind: node.ValueSourceVariant, Variant: variant.NewScalarCopy(int32(7), types.Int32)},
	}))

	code := Write(s, WriteRequest{
		NodeID:      id,
		AttributeID: IDValue,
		Value:       valueOf(variant.NewScalarCopy(int32(99), types.Int32)),
	})
	require.Equal(t, status.Good, code)

	n, _, _ := s.Get(id)
	assert.Equal(t, int32(99), n.(*node.VariableNode).Value.Variant.Data)
}

func TestWrite_Value_RangeWriteSubrange(t *testing.T) {
	t.Parallel()

	// spec scenario 6.
	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.VariableNode{
		Head: node.Head{ID: id},
		Value: node.VariableValue{
			Kind:    node.ValueSourceVariant,
			Variant: variant.NewArrayCopy([]int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 10, types.Int32),
		},
	}))

	code := Write(s, WriteRequest{
		NodeID:      id,
		AttributeID: IDValue,
		IndexRange:  "2:4",
		Value:       valueOf(variant.NewArrayCopy([]int32{9, 9, 9}, 3, types.Int32)),
	})
	require.Equal(t, status.Good, code)

	n, _, _ := s.Get(id)
	assert.Equal(t, []int32{0, 1, 9, 9, 9, 5, 6, 7, 8, 9}, n.(*node.VariableNode).Value.Variant.Data)
}

func TestWrite_Value_DataSourceDelegatesBeforeEditNode(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	ds := &recordingDataSource{}
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.VariableNode{
		Head:  node.Head{ID: id},
		Value: node.VariableValue{Kind: node.ValueSourceDataSource, DataSource: ds},
	}))

	newVal := variant.NewScalarCopy(int32(5), types.Int32)
	code := Write(s, WriteRequest{NodeID: id, AttributeID: IDValue, Value: valueOf(newVal)})
	require.Equal(t, status.Good, code)
	assert.Same(t, newVal, ds.written)
}

type recordingDataSource struct {
	written *variant.Variant
}

func (r *recordingDataSource) Read(handle any, id nodeid.NodeId, wantSourceTimestamp bool, rng variant.NumericRange, out *datasource.DataValue) status.Code {
	return status.Good
}

func (r *recordingDataSource) Write(handle any, id nodeid.NodeId, val *variant.Variant, rng variant.NumericRange) status.Code {
	r.written = val
	return status.Good
}

// ============================================================================
// Write - Head/Typed-Field Datatype Guard Tests
// ============================================================================

func TestWrite_DisplayName_WrongTypeRejected(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: id}}))

	code := Write(s, WriteRequest{
		NodeID:      id,
		AttributeID: IDDisplayName,
		Value:       valueOf(variant.NewScalarCopy(int32(1), types.Int32)),
	})
	assert.Equal(t, status.BadTypeMismatch, code)
}

func TestWrite_DisplayName_Succeeds(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: id}}))

	code := Write(s, WriteRequest{
		NodeID:      id,
		AttributeID: IDDisplayName,
		Value:       valueOf(variant.NewScalarCopy(nodeid.LocalizedText{Text: "Hello"}, types.LocalizedText)),
	})
	require.Equal(t, status.Good, code)

	n, _, _ := s.Get(id)
	assert.Equal(t, "Hello", n.Head().DisplayName.Text)
}

func TestWrite_DataType_NotSupported(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.VariableNode{Head: node.Head{ID: id}}))

	code := Write(s, WriteRequest{
		NodeID:      id,
		AttributeID: IDDataType,
		Value:       valueOf(variant.NewScalarCopy(id, types.NodeID)),
	})
	assert.Equal(t, status.BadWriteNotSupported, code)
}
