package attribute

import (
	"time"

	"github.com/northlake-labs/opcua-server/pkg/ua/datasource"
	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
	"github.com/northlake-labs/opcua-server/pkg/ua/variant"
)

// Clock lets tests substitute a deterministic time source; the zero value
// (nil) uses time.Now.
type Clock func() time.Time

// ReadRequest is a single-item attribute read (spec.md §4.4 input).
type ReadRequest struct {
	NodeID             nodeid.NodeId
	AttributeID        ID
	IndexRange         string // empty means "no range"
	DataEncoding       DataEncoding
	TimestampsToReturn TimestampsToReturn
}

// Read performs one attribute read against store, following spec.md
// §4.4's seven-step algorithm exactly. now defaults to time.Now when nil.
func Read(store nodestore.Store, req ReadRequest, now Clock) datasource.DataValue {
	if now == nil {
		now = time.Now
	}

	// Step 1: data encoding guard.
	if req.DataEncoding.Name != "" && req.DataEncoding.Name != "DefaultBinary" {
		return statusOnly(status.BadDataEncodingInvalid)
	}

	// Step 2: index range only legal for Value.
	var rng variant.NumericRange
	if req.IndexRange != "" {
		if req.AttributeID != IDValue {
			return statusOnly(status.BadIndexRangeNoData)
		}
		var code status.Code
		rng, code = variant.ParseNumericRange(req.IndexRange)
		if code != status.Good {
			return statusOnly(code)
		}
	}

	// Step 3: node lookup.
	n, _, found := store.Get(req.NodeID)
	if !found {
		return statusOnly(status.BadNodeIDUnknown)
	}

	// Step 4: class guard.
	if !classAllowed(req.AttributeID, n.Class()) {
		return statusOnly(status.BadAttributeIDInvalid)
	}

	dv, code := readAttribute(n, req.AttributeID, rng)
	if code != status.Good {
		return statusOnly(code)
	}

	stampTimestamps(&dv, req.TimestampsToReturn, now)
	dv.HasStatus = true
	dv.Status = status.Good
	return dv
}

// readAttribute dispatches on AttributeID and returns the attribute's
// value, or a status code on failure. Head-field and node-class-specific
// branches are spec.md §4.4's table; the Value branch is step 5/6.
func readAttribute(n node.Node, attr ID, rng variant.NumericRange) (datasource.DataValue, status.Code) {
	h := n.Head()

	switch attr {
	case IDNodeId:
		return scalarResult(variant.NewScalarCopy(h.ID, types.NodeID))
	case IDNodeClass:
		return scalarResult(variant.NewScalarCopy(int32(n.Class()), types.Int32))
	case IDBrowseName:
		return scalarResult(variant.NewScalarCopy(h.BrowseName, types.QualifiedName))
	case IDDisplayName:
		return scalarResult(variant.NewScalarCopy(h.DisplayName, types.LocalizedText))
	case IDDescription:
		return scalarResult(variant.NewScalarCopy(h.Description, types.LocalizedText))
	case IDWriteMask:
		return scalarResult(variant.NewScalarCopy(h.WriteMask, types.UInt32))
	case IDUserWriteMask:
		return scalarResult(variant.NewScalarCopy(h.UserWriteMask, types.UInt32))
	}

	switch v := n.(type) {
	case *node.ReferenceTypeNode:
		switch attr {
		case IDIsAbstract:
			return scalarResult(variant.NewScalarCopy(v.IsAbstract, types.Boolean))
		case IDSymmetric:
			return scalarResult(variant.NewScalarCopy(v.Symmetric, types.Boolean))
		case IDInverseName:
			return scalarResult(variant.NewScalarCopy(v.InverseName, types.LocalizedText))
		}
	case *node.ObjectTypeNode:
		if attr == IDIsAbstract {
			return scalarResult(variant.NewScalarCopy(v.IsAbstract, types.Boolean))
		}
	case *node.VariableTypeNode:
		switch attr {
		case IDIsAbstract:
			return scalarResult(variant.NewScalarCopy(v.IsAbstract, types.Boolean))
		case IDValue:
			return readValue(v.Value, rng)
		case IDDataType:
			return readDataTypeOrDims(v.Value, attr, v.DataType, v.ArrayDimensions, rng)
		case IDValueRank:
			return scalarResult(variant.NewScalarCopy(v.ValueRank, types.Int32))
		case IDArrayDimensions:
			return readDataTypeOrDims(v.Value, attr, v.DataType, v.ArrayDimensions, rng)
		}
	case *node.DataTypeNode:
		if attr == IDIsAbstract {
			return scalarResult(variant.NewScalarCopy(v.IsAbstract, types.Boolean))
		}
	case *node.ViewNode:
		switch attr {
		case IDContainsNoLoops:
			return scalarResult(variant.NewScalarCopy(v.ContainsNoLoops, types.Boolean))
		case IDEventNotifier:
			return scalarResult(variant.NewScalarCopy(v.EventNotifier, types.Byte))
		}
	case *node.ObjectNode:
		if attr == IDEventNotifier {
			return scalarResult(variant.NewScalarCopy(v.EventNotifier, types.Byte))
		}
	case *node.VariableNode:
		switch attr {
		case IDValue:
			return readValue(v.Value, rng)
		case IDDataType:
			return readDataTypeOrDims(v.Value, attr, v.DataType, v.ArrayDimensions, rng)
		case IDArrayDimensions:
			return readDataTypeOrDims(v.Value, attr, v.DataType, v.ArrayDimensions, rng)
		case IDValueRank:
			return scalarResult(variant.NewScalarCopy(v.ValueRank, types.Int32))
		case IDAccessLevel:
			return scalarResult(variant.NewScalarCopy(v.AccessLevel, types.Byte))
		case IDUserAccessLevel:
			return scalarResult(variant.NewScalarCopy(v.UserAccessLevel, types.Byte))
		case IDMinimumSamplingInterval:
			return scalarResult(variant.NewScalarCopy(v.MinimumSamplingInterval, types.Double))
		case IDHistorizing:
			return scalarResult(variant.NewScalarCopy(v.Historizing, types.Boolean))
		}
	case *node.MethodNode:
		switch attr {
		case IDExecutable:
			return scalarResult(variant.NewScalarCopy(v.Executable, types.Boolean))
		case IDUserExecutable:
			return scalarResult(variant.NewScalarCopy(v.UserExecutable, types.Boolean))
		}
	}

	return datasource.DataValue{}, status.BadAttributeIDInvalid
}

// readValue implements spec.md §4.4 step 5: the Value attribute's
// VARIANT-vs-DATASOURCE dispatch.
func readValue(vv node.VariableValue, rng variant.NumericRange) (datasource.DataValue, status.Code) {
	switch vv.Kind {
	case node.ValueSourceVariant:
		if vv.OnRead != nil {
			vv.OnRead(vv.Handle, nodeid.NodeId{}, vv.Variant, rng)
		}
		if len(rng) == 0 {
			return scalarResult(variant.Borrow(vv.Variant))
		}
		out, code := variant.CopyRange(vv.Variant, rng)
		if code != status.Good {
			return datasource.DataValue{}, code
		}
		return scalarResult(out)

	case node.ValueSourceDataSource:
		var dv datasource.DataValue
		code := vv.DataSource.Read(vv.Handle, nodeid.NodeId{}, false, rng, &dv)
		if code != status.Good {
			return datasource.DataValue{}, code
		}
		return dv, status.Good

	default:
		return datasource.DataValue{}, status.BadInternalError
	}
}

// readDataTypeOrDims implements spec.md §4.4 step 6: for a DATASOURCE
// variable, DataType/ArrayDimensions require a scratch read of the
// current Variant to extract just that facet.
func readDataTypeOrDims(vv node.VariableValue, attr ID, staticType nodeid.NodeId, staticDims []int32, _ variant.NumericRange) (datasource.DataValue, status.Code) {
	if vv.Kind == node.ValueSourceVariant {
		if attr == IDDataType {
			return scalarResult(variant.NewScalarCopy(staticType, types.NodeID))
		}
		return scalarResult(variant.NewArrayCopy(staticDims, int32(len(staticDims)), types.Int32))
	}

	var scratch datasource.DataValue
	code := vv.DataSource.Read(vv.Handle, nodeid.NodeId{}, false, nil, &scratch)
	if code != status.Good {
		return datasource.DataValue{}, code
	}
	if !scratch.HasValue || scratch.Value == nil {
		return datasource.DataValue{}, status.BadInternalError
	}
	if attr == IDDataType {
		if scratch.Value.Type == nil {
			return datasource.DataValue{}, status.BadInternalError
		}
		return scalarResult(variant.NewScalarCopy(scratch.Value.Type.TypeID, types.NodeID))
	}
	return scalarResult(variant.NewArrayCopy(scratch.Value.ArrayDimensions, int32(len(scratch.Value.ArrayDimensions)), types.Int32))
}

func scalarResult(v *variant.Variant) (datasource.DataValue, status.Code) {
	return datasource.DataValue{HasValue: true, Value: v}, status.Good
}

func statusOnly(code status.Code) datasource.DataValue {
	return datasource.DataValue{HasStatus: true, Status: code}
}

// stampTimestamps applies spec.md §4.4 step 7's timestamp policy. It
// never overwrites a source timestamp a DATASOURCE read already
// populated.
func stampTimestamps(dv *datasource.DataValue, tsr TimestampsToReturn, now Clock) {
	if tsr == TimestampsServer || tsr == TimestampsBoth {
		dv.HasServerTimestamp = true
		dv.ServerTimestamp = now()
	}
	if tsr == TimestampsSource || tsr == TimestampsBoth {
		if !dv.HasSourceTimestamp {
			dv.HasSourceTimestamp = true
			dv.SourceTimestamp = now()
		}
	}
}
