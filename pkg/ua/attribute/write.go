package attribute

import (
	"github.com/northlake-labs/opcua-server/pkg/ua/datasource"
	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
	"github.com/northlake-labs/opcua-server/pkg/ua/variant"
)

// WriteRequest is a single-item attribute write (spec.md §4.5 input).
type WriteRequest struct {
	NodeID      nodeid.NodeId
	AttributeID ID
	IndexRange  string
	Value       datasource.DataValue
}

// validAttributeID reports whether attr is one of the 22 AttributeIds
// this core dispatches. An id outside this range is "unknown" (spec.md
// §4.5 step 4 "unknown id → BAD_ATTRIBUTE_ID_INVALID"), distinct from a
// known id illegal for the target's node class (BAD_NODE_CLASS_INVALID).
func validAttributeID(attr ID) bool {
	return attr >= IDNodeId && attr <= IDUserExecutable
}

// Write performs one attribute write against store, following spec.md
// §4.5's algorithm.
func Write(store nodestore.Store, req WriteRequest) status.Code {
	// Step 1: a write with no value is never meaningful.
	if !req.Value.HasValue || req.Value.Value == nil {
		return status.BadNoData
	}

	if !validAttributeID(req.AttributeID) {
		return status.BadAttributeIDInvalid
	}

	var rng variant.NumericRange
	if req.IndexRange != "" {
		if req.AttributeID != IDValue {
			return status.BadIndexRangeNoData
		}
		var code status.Code
		rng, code = variant.ParseNumericRange(req.IndexRange)
		if code != status.Good {
			return code
		}
	}

	n, _, found := store.Get(req.NodeID)
	if !found {
		return status.BadNodeIDUnknown
	}
	if !classAllowed(req.AttributeID, n.Class()) {
		return status.BadNodeClassInvalid
	}

	// Step 2: a DATASOURCE-backed Variable's Value bypasses edit-node
	// entirely — the data source callback is the single owner of that
	// value's storage.
	if req.AttributeID == IDValue {
		if code, delegated := delegateToDataSource(n, req.NodeID, req.Value.Value, rng); delegated {
			return code
		}
	}

	// Step 3: everything else goes through the edit-node protocol.
	return Edit(store, req.NodeID, func(cp node.Node) status.Code {
		return writeAttribute(cp, req.AttributeID, rng, req.Value.Value)
	})
}

func delegateToDataSource(n node.Node, id nodeid.NodeId, val *variant.Variant, rng variant.NumericRange) (status.Code, bool) {
	switch v := n.(type) {
	case *node.VariableNode:
		if v.Value.Kind == node.ValueSourceDataSource {
			return v.Value.DataSource.Write(v.Value.Handle, id, val, rng), true
		}
	case *node.VariableTypeNode:
		if v.Value.Kind == node.ValueSourceDataSource {
			return v.Value.DataSource.Write(v.Value.Handle, id, val, rng), true
		}
	}
	return status.Good, false
}

// writeAttribute applies one attribute write to a node copy already
// owned by the edit-node protocol. The (attributeId, node class)
// combination is guaranteed legal by the caller's classAllowed check;
// this function only enforces the per-attribute datatype guard and the
// fixed set of write-not-supported attributes.
func writeAttribute(n node.Node, attr ID, rng variant.NumericRange, newVal *variant.Variant) status.Code {
	h := n.Head()

	switch attr {
	case IDNodeId, IDNodeClass:
		return status.BadWriteNotSupported
	case IDBrowseName:
		qn, code := expectScalar[nodeid.QualifiedName](newVal, types.QualifiedName)
		if code != status.Good {
			return code
		}
		h.BrowseName = qn
		return status.Good
	case IDDisplayName:
		lt, code := expectScalar[nodeid.LocalizedText](newVal, types.LocalizedText)
		if code != status.Good {
			return code
		}
		h.DisplayName = lt
		return status.Good
	case IDDescription:
		lt, code := expectScalar[nodeid.LocalizedText](newVal, types.LocalizedText)
		if code != status.Good {
			return code
		}
		h.Description = lt
		return status.Good
	case IDWriteMask:
		m, code := expectScalar[uint32](newVal, types.UInt32)
		if code != status.Good {
			return code
		}
		h.WriteMask = m
		return status.Good
	case IDUserWriteMask:
		m, code := expectScalar[uint32](newVal, types.UInt32)
		if code != status.Good {
			return code
		}
		h.UserWriteMask = m
		return status.Good
	}

	switch v := n.(type) {
	case *node.ReferenceTypeNode:
		switch attr {
		case IDIsAbstract:
			return writeBool(&v.IsAbstract, newVal)
		case IDSymmetric:
			return writeBool(&v.Symmetric, newVal)
		case IDInverseName:
			lt, code := expectScalar[nodeid.LocalizedText](newVal, types.LocalizedText)
			if code != status.Good {
				return code
			}
			v.InverseName = lt
			return status.Good
		}

	case *node.ObjectTypeNode:
		if attr == IDIsAbstract {
			return writeBool(&v.IsAbstract, newVal)
		}

	case *node.VariableTypeNode:
		switch attr {
		case IDIsAbstract:
			return writeBool(&v.IsAbstract, newVal)
		case IDValue:
			return writeValue(&v.Value, rng, newVal)
		case IDDataType:
			return status.BadWriteNotSupported
		case IDValueRank:
			return writeInt32(&v.ValueRank, newVal)
		case IDArrayDimensions:
			dims, code := expectInt32Array(newVal)
			if code != status.Good {
				return code
			}
			v.ArrayDimensions = dims
			return status.Good
		}

	case *node.DataTypeNode:
		if attr == IDIsAbstract {
			return writeBool(&v.IsAbstract, newVal)
		}

	case *node.ViewNode:
		switch attr {
		case IDContainsNoLoops:
			return writeBool(&v.ContainsNoLoops, newVal)
		case IDEventNotifier:
			return writeByte(&v.EventNotifier, newVal)
		}

	case *node.ObjectNode:
		if attr == IDEventNotifier {
			return writeByte(&v.EventNotifier, newVal)
		}

	case *node.VariableNode:
		switch attr {
		case IDValue:
			return writeValue(&v.Value, rng, newVal)
		case IDDataType:
			return status.BadWriteNotSupported
		case IDValueRank:
			return writeInt32(&v.ValueRank, newVal)
		case IDArrayDimensions:
			dims, code := expectInt32Array(newVal)
			if code != status.Good {
				return code
			}
			v.ArrayDimensions = dims
			return status.Good
		case IDAccessLevel:
			return writeByte(&v.AccessLevel, newVal)
		case IDUserAccessLevel:
			return writeByte(&v.UserAccessLevel, newVal)
		case IDMinimumSamplingInterval:
			d, code := expectScalar[float64](newVal, types.Double)
			if code != status.Good {
				return code
			}
			v.MinimumSamplingInterval = d
			return status.Good
		case IDHistorizing:
			return writeBool(&v.Historizing, newVal)
		}

	case *node.MethodNode:
		switch attr {
		case IDExecutable:
			return writeBool(&v.Executable, newVal)
		case IDUserExecutable:
			return writeBool(&v.UserExecutable, newVal)
		}
	}

	// classAllowed already confirmed this (attr, class) pair is legal,
	// so reaching here means every case above fell through — it cannot
	// happen for a real caller.
	return status.BadInternalError
}

// writeValue implements spec.md §4.5 step 6: the Value attribute's
// coercion-then-move (no range) or set_range_copy (with range) into a
// VARIANT-backed Variable/VariableType. The DATASOURCE branch never
// reaches here — Write delegates it before entering edit-node.
func writeValue(vv *node.VariableValue, rng variant.NumericRange, newVal *variant.Variant) status.Code {
	coerced, code := variant.Coerce(vv.Variant.Type, newVal)
	if code != status.Good {
		return code
	}

	if len(rng) == 0 {
		// Move: the caller's DataValue is not reused after Write
		// returns, so reassigning the field is the whole of "release
		// old, install new" under Go's GC.
		vv.Variant = coerced
	} else {
		code = variant.SetRangeCopy(vv.Variant, coerced.Data, int(coerced.ArrayLength), rng)
		if code != status.Good {
			return code
		}
	}

	if vv.OnWrite != nil {
		vv.OnWrite(vv.Handle, nodeid.NodeId{}, vv.Variant, rng)
	}
	return status.Good
}

func expectScalar[T any](v *variant.Variant, want *types.Descriptor) (T, status.Code) {
	var zero T
	if v == nil || v.Type != want || !v.IsScalar() {
		return zero, status.BadTypeMismatch
	}
	val, ok := v.Data.(T)
	if !ok {
		return zero, status.BadTypeMismatch
	}
	return val, status.Good
}

func expectInt32Array(v *variant.Variant) ([]int32, status.Code) {
	if v == nil || v.Type != types.Int32 || v.IsScalar() {
		return nil, status.BadTypeMismatch
	}
	dims, ok := v.Data.([]int32)
	if !ok {
		return nil, status.BadTypeMismatch
	}
	return append([]int32(nil), dims...), status.Good
}

func writeBool(dst *bool, v *variant.Variant) status.Code {
	b, code := expectScalar[bool](v, types.Boolean)
	if code != status.Good {
		return code
	}
	*dst = b
	return status.Good
}

func writeByte(dst *byte, v *variant.Variant) status.Code {
	b, code := expectScalar[byte](v, types.Byte)
	if code != status.Good {
		return code
	}
	*dst = b
	return status.Good
}

func writeInt32(dst *int32, v *variant.Variant) status.Code {
	n, code := expectScalar[int32](v, types.Int32)
	if code != status.Good {
		return code
	}
	*dst = n
	return status.Good
}
