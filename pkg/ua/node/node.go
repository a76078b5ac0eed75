// Package node implements the Node sum type over the eight OPC UA node
// classes sharing a common attribute head (spec.md §3, §9 "Polymorphic
// node classes"). Dispatch is a type switch on the Node interface rather
// than a tagged union with casts, the idiomatic Go analogue of the
// C "common head + class-specific tail reached via casts" layout the
// design notes describe.
//
// Grounded on the teacher's metadata.File, which plays the same role for
// NFS (a common attribute head — FileAttr — specialized by FileType) and
// on pkg/metadata/lock_types.go for the "head struct + typed variant
// field" shape used here for VariableValue.
package node

import (
	"github.com/northlake-labs/opcua-server/pkg/ua/datasource"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/variant"
)

// Class identifies one of the eight node classes (spec.md §3).
type Class uint8

const (
	ClassObject Class = iota
	ClassVariable
	ClassMethod
	ClassObjectType
	ClassVariableType
	ClassReferenceType
	ClassDataType
	ClassView
)

func (c Class) String() string {
	switch c {
	case ClassObject:
		return "Object"
	case ClassVariable:
		return "Variable"
	case ClassMethod:
		return "Method"
	case ClassObjectType:
		return "ObjectType"
	case ClassVariableType:
		return "VariableType"
	case ClassReferenceType:
		return "ReferenceType"
	case ClassDataType:
		return "DataType"
	case ClassView:
		return "View"
	default:
		return "Unknown"
	}
}

// Reference is one outgoing (or inverse) edge of the address-space graph
// (spec.md §3).
type Reference struct {
	ReferenceTypeID nodeid.NodeId
	TargetID        nodeid.NodeId
	IsInverse       bool
}

// Head is the attribute set every node carries regardless of class
// (spec.md §3 "Node (common head)"). ID and the node's Class() (the
// outer Class, not this field) are immutable for a node's lifetime per
// invariant 1.
type Head struct {
	ID            nodeid.NodeId
	BrowseName    nodeid.QualifiedName
	DisplayName   nodeid.LocalizedText
	Description   nodeid.LocalizedText
	WriteMask     uint32
	UserWriteMask uint32
	References    []Reference
}

// Node is implemented by all eight node-class structs. It is a closed set
// by convention (not a sealed interface — Go has no sum types), matching
// how the attribute dispatch table in package attribute type-switches
// over exactly these eight.
type Node interface {
	Class() Class
	Head() *Head
}

// ValueSourceKind discriminates a VariableNode's value storage (spec.md
// §3 "tagged union"). Immutable after creation per invariant 2.
type ValueSourceKind uint8

const (
	ValueSourceVariant ValueSourceKind = iota
	ValueSourceDataSource
)

// VariableValue is the tagged union backing a Variable/VariableType's
// Value attribute (spec.md §3). Exactly one of the Variant or DataSource
// branches is meaningful, selected by Kind.
type VariableValue struct {
	Kind ValueSourceKind

	// VARIANT branch.
	Variant *variant.Variant
	OnRead  func(handle any, id nodeid.NodeId, out *variant.Variant, rng variant.NumericRange) bool
	OnWrite func(handle any, id nodeid.NodeId, val *variant.Variant, rng variant.NumericRange)

	// DATASOURCE branch.
	DataSource datasource.DataSource
	Handle     any
}

// ObjectNode (spec.md §3).
type ObjectNode struct {
	Head
	EventNotifier byte
}

func (n *ObjectNode) Class() Class { return ClassObject }
func (n *ObjectNode) Head() *Head  { return &n.Head }

// VariableNode (spec.md §3).
type VariableNode struct {
	Head
	Value                   VariableValue
	DataType                nodeid.NodeId
	ValueRank               int32
	ArrayDimensions         []int32
	AccessLevel             byte
	UserAccessLevel         byte
	MinimumSamplingInterval float64
	Historizing             bool
}

func (n *VariableNode) Class() Class { return ClassVariable }
func (n *VariableNode) Head() *Head  { return &n.Head }

// VariableTypeNode (spec.md §3).
type VariableTypeNode struct {
	Head
	Value           VariableValue
	DataType        nodeid.NodeId
	ValueRank       int32
	ArrayDimensions []int32
	IsAbstract      bool
}

func (n *VariableTypeNode) Class() Class { return ClassVariableType }
func (n *VariableTypeNode) Head() *Head  { return &n.Head }

// MethodNode (spec.md §3).
type MethodNode struct {
	Head
	Executable     bool
	UserExecutable bool
}

func (n *MethodNode) Class() Class { return ClassMethod }
func (n *MethodNode) Head() *Head  { return &n.Head }

// ObjectTypeNode (spec.md §3).
type ObjectTypeNode struct {
	Head
	IsAbstract bool
}

func (n *ObjectTypeNode) Class() Class { return ClassObjectType }
func (n *ObjectTypeNode) Head() *Head  { return &n.Head }

// ReferenceTypeNode (spec.md §3).
type ReferenceTypeNode struct {
	Head
	IsAbstract  bool
	Symmetric   bool
	InverseName nodeid.LocalizedText
}

func (n *ReferenceTypeNode) Class() Class { return ClassReferenceType }
func (n *ReferenceTypeNode) Head() *Head  { return &n.Head }

// DataTypeNode (spec.md §3).
type DataTypeNode struct {
	Head
	IsAbstract bool
}

func (n *DataTypeNode) Class() Class { return ClassDataType }
func (n *DataTypeNode) Head() *Head  { return &n.Head }

// ViewNode (spec.md §3).
type ViewNode struct {
	Head
	ContainsNoLoops bool
	EventNotifier   byte
}

func (n *ViewNode) Class() Class { return ClassView }
func (n *ViewNode) Head() *Head  { return &n.Head }

// Clone produces a deep, heap-owned copy of n for the edit-node protocol's
// copy-on-write step (spec.md §5 step 2). The References slice and any
// Variant payload are copied; callbacks and DataSource handles are shared
// (they are immutable collaborators, not mutable state).
func Clone(n Node) Node {
	switch v := n.(type) {
	case *ObjectNode:
		cp := *v
		cp.References = cloneRefs(v.References)
		return &cp
	case *VariableNode:
		cp := *v
		cp.References = cloneRefs(v.References)
		cp.ArrayDimensions = cloneInt32s(v.ArrayDimensions)
		cp.Value = cloneValue(v.Value)
		return &cp
	case *VariableTypeNode:
		cp := *v
		cp.References = cloneRefs(v.References)
		cp.ArrayDimensions = cloneInt32s(v.ArrayDimensions)
		cp.Value = cloneValue(v.Value)
		return &cp
	case *MethodNode:
		cp := *v
		cp.References = cloneRefs(v.References)
		return &cp
	case *ObjectTypeNode:
		cp := *v
		cp.References = cloneRefs(v.References)
		return &cp
	case *ReferenceTypeNode:
		cp := *v
		cp.References = cloneRefs(v.References)
		return &cp
	case *DataTypeNode:
		cp := *v
		cp.References = cloneRefs(v.References)
		return &cp
	case *ViewNode:
		cp := *v
		cp.References = cloneRefs(v.References)
		return &cp
	default:
		return n
	}
}

func cloneValue(v VariableValue) VariableValue {
	cp := v
	if v.Kind == ValueSourceVariant {
		cp.Variant = variant.Copy(v.Variant)
	}
	return cp
}

func cloneRefs(refs []Reference) []Reference {
	if refs == nil {
		return nil
	}
	return append([]Reference(nil), refs...)
}

func cloneInt32s(in []int32) []int32 {
	if in == nil {
		return nil
	}
	return append([]int32(nil), in...)
}
