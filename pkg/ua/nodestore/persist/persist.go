// Package persist implements the on-disk wire encoding shared by the
// badger and postgres NodeStore backends (spec.md's DOMAIN STACK
// persistent-store expansion). Grounded on the teacher's
// pkg/store/metadata/badger/{directory,root}.go and
// pkg/store/metadata/postgres/serialization.go, which each marshal a
// metadata.File to bytes for their respective backend; this package
// factors that marshal/unmarshal step out so both backends share one
// encoding instead of duplicating it.
//
// encoding/gob, not JSON, because Variant.Data is a Go `any` whose
// concrete numeric width (int16 vs int32 vs uint64, ...) must round-trip
// exactly; JSON's single floating-point number type would silently widen
// or truncate it. gob preserves the concrete type of a registered
// interface value, so Decode(Encode(n)) reproduces the exact Go type
// Variant.Data held before persistence.
package persist

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/northlake-labs/opcua-server/pkg/ua/datasource"
	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
	"github.com/northlake-labs/opcua-server/pkg/ua/variant"
)

func init() {
	for _, v := range []any{
		bool(false), int8(0), uint8(0), int16(0), uint16(0),
		int32(0), uint32(0), int64(0), uint64(0),
		float32(0), float64(0), string(""), []byte(nil),
		nodeid.LocalizedText{}, nodeid.QualifiedName{}, nodeid.NodeId{},
		[]bool(nil), []int16(nil), []uint16(nil), []int32(nil), []uint32(nil),
		[]int64(nil), []uint64(nil), []float32(nil), []float64(nil),
		[]string(nil), []nodeid.LocalizedText(nil), []nodeid.QualifiedName(nil),
		[]nodeid.NodeId(nil), [][]byte(nil),
	} {
		gob.Register(v)
	}
}

// wireValue is the Encode/Decode representation of node.VariableValue.
// Only the VARIANT branch is persisted: a DataSource is a live Go
// callback and cannot be serialized. A DATASOURCE-kind value persists
// only its Kind marker; the owning namespace re-attaches the live
// DataSource and Handle when the node is loaded (spec.md §6).
type wireValue struct {
	Kind            node.ValueSourceKind
	TypeIndex       types.Kind
	Data            any
	ArrayLength     int32
	ArrayDimensions []int32
}

// wireNode is the flattened, gob-encodable shape of every node.Node
// class. Only the fields relevant to n.Class() are populated.
type wireNode struct {
	Class node.Class
	Head  node.Head

	Value                   *wireValue
	DataType                nodeid.NodeId
	ValueRank               int32
	ArrayDimensions         []int32
	AccessLevel             byte
	UserAccessLevel         byte
	MinimumSamplingInterval float64
	Historizing             bool

	IsAbstract      bool
	Executable      bool
	UserExecutable  bool
	Symmetric       bool
	InverseName     nodeid.LocalizedText
	EventNotifier   byte
	ContainsNoLoops bool
}

func toWireValue(v node.VariableValue) *wireValue {
	wv := &wireValue{Kind: v.Kind}
	if v.Kind == node.ValueSourceVariant && v.Variant != nil {
		wv.TypeIndex = v.Variant.Type.TypeIndex
		wv.Data = v.Variant.Data
		wv.ArrayLength = v.Variant.ArrayLength
		wv.ArrayDimensions = v.Variant.ArrayDimensions
	}
	return wv
}

func fromWireValue(wv *wireValue) node.VariableValue {
	if wv == nil || wv.Kind != node.ValueSourceVariant {
		// DATASOURCE branch: Handle/DataSource are re-attached by the
		// owning namespace, not reconstructed here.
		return node.VariableValue{Kind: node.ValueSourceDataSource}
	}
	return node.VariableValue{
		Kind: node.ValueSourceVariant,
		Variant: &variant.Variant{
			Type:            types.Lookup(wv.TypeIndex),
			Data:            wv.Data,
			ArrayLength:     wv.ArrayLength,
			ArrayDimensions: wv.ArrayDimensions,
			Storage:         variant.StorageData,
		},
	}
}

// Encode serializes n to its wire representation.
func Encode(n node.Node) ([]byte, error) {
	w := wireNode{Class: n.Class(), Head: *n.Head()}

	switch v := n.(type) {
	case *node.VariableNode:
		w.Value = toWireValue(v.Value)
		w.DataType = v.DataType
		w.ValueRank = v.ValueRank
		w.ArrayDimensions = v.ArrayDimensions
		w.AccessLevel = v.AccessLevel
		w.UserAccessLevel = v.UserAccessLevel
		w.MinimumSamplingInterval = v.MinimumSamplingInterval
		w.Historizing = v.Historizing
	case *node.VariableTypeNode:
		w.Value = toWireValue(v.Value)
		w.DataType = v.DataType
		w.ValueRank = v.ValueRank
		w.ArrayDimensions = v.ArrayDimensions
		w.IsAbstract = v.IsAbstract
	case *node.ObjectNode:
		w.EventNotifier = v.EventNotifier
	case *node.MethodNode:
		w.Executable = v.Executable
		w.UserExecutable = v.UserExecutable
	case *node.ObjectTypeNode:
		w.IsAbstract = v.IsAbstract
	case *node.ReferenceTypeNode:
		w.IsAbstract = v.IsAbstract
		w.Symmetric = v.Symmetric
		w.InverseName = v.InverseName
	case *node.DataTypeNode:
		w.IsAbstract = v.IsAbstract
	case *node.ViewNode:
		w.ContainsNoLoops = v.ContainsNoLoops
		w.EventNotifier = v.EventNotifier
	default:
		return nil, fmt.Errorf("persist: unknown node class %T", n)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&w); err != nil {
		return nil, fmt.Errorf("persist: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reconstructs a node.Node from bytes produced by Encode. The
// returned node's DATASOURCE-kind Values (if any) have Kind set but no
// live DataSource/Handle attached; callers must re-attach those via the
// owning datasource.Namespace before serving reads/writes against the
// node (spec.md §6).
func Decode(b []byte) (node.Node, error) {
	var w wireNode
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&w); err != nil {
		return nil, fmt.Errorf("persist: decode: %w", err)
	}

	switch w.Class {
	case node.ClassObject:
		return &node.ObjectNode{Head: w.Head, EventNotifier: w.EventNotifier}, nil
	case node.ClassVariable:
		return &node.VariableNode{
			Head:                    w.Head,
			Value:                   fromWireValue(w.Value),
			DataType:                w.DataType,
			ValueRank:               w.ValueRank,
			ArrayDimensions:         w.ArrayDimensions,
			AccessLevel:             w.AccessLevel,
			UserAccessLevel:         w.UserAccessLevel,
			MinimumSamplingInterval: w.MinimumSamplingInterval,
			Historizing:             w.Historizing,
		}, nil
	case node.ClassVariableType:
		return &node.VariableTypeNode{
			Head:            w.Head,
			Value:           fromWireValue(w.Value),
			DataType:        w.DataType,
			ValueRank:       w.ValueRank,
			ArrayDimensions: w.ArrayDimensions,
			IsAbstract:      w.IsAbstract,
		}, nil
	case node.ClassMethod:
		return &node.MethodNode{Head: w.Head, Executable: w.Executable, UserExecutable: w.UserExecutable}, nil
	case node.ClassObjectType:
		return &node.ObjectTypeNode{Head: w.Head, IsAbstract: w.IsAbstract}, nil
	case node.ClassReferenceType:
		return &node.ReferenceTypeNode{Head: w.Head, IsAbstract: w.IsAbstract, Symmetric: w.Symmetric, InverseName: w.InverseName}, nil
	case node.ClassDataType:
		return &node.DataTypeNode{Head: w.Head, IsAbstract: w.IsAbstract}, nil
	case node.ClassView:
		return &node.ViewNode{Head: w.Head, ContainsNoLoops: w.ContainsNoLoops, EventNotifier: w.EventNotifier}, nil
	default:
		return nil, fmt.Errorf("persist: unknown wire class %d", w.Class)
	}
}

// AttachDataSource re-attaches a live DataSource/Handle to a node decoded
// from the store. Call after Decode for any VariableNode/VariableTypeNode
// whose Value.Kind is ValueSourceDataSource.
func AttachDataSource(n node.Node, ds datasource.DataSource, handle any) {
	switch v := n.(type) {
	case *node.VariableNode:
		v.Value.DataSource = ds
		v.Value.Handle = handle
	case *node.VariableTypeNode:
		v.Value.DataSource = ds
		v.Value.Handle = handle
	}
}
