// Package types holds the process-wide, immutable-after-init DataType
// descriptor table (spec.md §3, §9 "Global state"). It is grounded on the
// teacher's content-addressed Object model (pkg/metadata/object.go) for
// the idea of a small, fixed registry of typed records with fixed byte
// sizes, generalized here to OPC UA's built-in scalar type set.
package types

import "github.com/northlake-labs/opcua-server/pkg/ua/nodeid"

// Kind identifies a built-in or user-registered data type by a stable
// numeric index, used as the fast path for the §4.1 type-coercion checks
// ("same namespaceZero && typeIndex").
type Kind uint16

const (
	KindBoolean Kind = iota
	KindSByte
	KindByte
	KindInt16
	KindUInt16
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindFloat
	KindDouble
	KindString
	KindDateTime
	KindGUID
	KindByteString
	KindXMLElement
	KindNodeID
	KindExpandedNodeID
	KindStatusCode
	KindQualifiedName
	KindLocalizedText
	KindExtensionObject
	KindVariant
	// userDefinedBase is the first index available to non-built-in types
	// registered at runtime (e.g. enums whose wire type is Int32 — see
	// the §4.1(a) coercion rule).
	userDefinedBase
)

// Descriptor is a static, immutable record per OPC UA built-in or
// user-registered type (spec.md §3 "DataType descriptor").
type Descriptor struct {
	TypeID        nodeid.NodeId
	TypeIndex     Kind
	NamespaceZero bool
	// FixedSize is the encoded byte size for fixed-width scalar types, or
	// 0 for variable-length types (String, ByteString, arrays-of-these).
	FixedSize int
	Name      string
}

// registry is built once at package init and never mutated afterward,
// matching spec.md §9's "immutable after initialization" requirement.
var registry = map[Kind]*Descriptor{}

func register(k Kind, numericID uint32, size int, name string) *Descriptor {
	d := &Descriptor{
		TypeID:        nodeid.NewNumeric(0, numericID),
		TypeIndex:     k,
		NamespaceZero: true,
		FixedSize:     size,
		Name:          name,
	}
	registry[k] = d
	return d
}

// Built-in type NodeIds below follow Part 6's Namespace 0 numeric
// identifiers for the OPC UA built-in type hierarchy.
var (
	Boolean         = register(KindBoolean, 1, 1, "Boolean")
	SByte           = register(KindSByte, 2, 1, "SByte")
	Byte            = register(KindByte, 3, 1, "Byte")
	Int16           = register(KindInt16, 4, 2, "Int16")
	UInt16          = register(KindUInt16, 5, 2, "UInt16")
	Int32           = register(KindInt32, 6, 4, "Int32")
	UInt32          = register(KindUInt32, 7, 4, "UInt32")
	Int64           = register(KindInt64, 8, 8, "Int64")
	UInt64          = register(KindUInt64, 9, 8, "UInt64")
	Float           = register(KindFloat, 10, 4, "Float")
	Double          = register(KindDouble, 11, 8, "Double")
	String          = register(KindString, 12, 0, "String")
	DateTime        = register(KindDateTime, 13, 8, "DateTime")
	GUID            = register(KindGUID, 14, 16, "Guid")
	ByteString      = register(KindByteString, 15, 0, "ByteString")
	XMLElement      = register(KindXMLElement, 16, 0, "XmlElement")
	NodeID          = register(KindNodeID, 17, 0, "NodeId")
	ExpandedNodeID  = register(KindExpandedNodeID, 18, 0, "ExpandedNodeId")
	StatusCode      = register(KindStatusCode, 19, 4, "StatusCode")
	QualifiedName   = register(KindQualifiedName, 20, 0, "QualifiedName")
	LocalizedText   = register(KindLocalizedText, 21, 0, "LocalizedText")
	ExtensionObject = register(KindExtensionObject, 22, 0, "ExtensionObject")
	Variant         = register(KindVariant, 24, 0, "Variant")
)

var nextUserKind = userDefinedBase

// RegisterUserType adds a runtime type descriptor (e.g. an enum whose wire
// representation is Int32, or a custom opaque type) to the process-wide
// registry. Intended to be called only during server/namespace init;
// concurrent calls after startup are not supported, mirroring the
// registry's "immutable after init" contract (spec.md §9).
func RegisterUserType(id nodeid.NodeId, namespaceZero bool, fixedSize int, name string) *Descriptor {
	k := nextUserKind
	nextUserKind++
	d := &Descriptor{TypeID: id, TypeIndex: k, NamespaceZero: namespaceZero, FixedSize: fixedSize, Name: name}
	registry[k] = d
	return d
}

// Lookup returns the descriptor for a Kind, or nil if unregistered.
func Lookup(k Kind) *Descriptor { return registry[k] }

// SameType reports whether two descriptors describe the same underlying
// wire type per §4.1(a): "Same namespaceZero && typeIndex".
func SameType(a, b *Descriptor) bool {
	if a == nil || b == nil {
		return false
	}
	return a.NamespaceZero == b.NamespaceZero && a.TypeIndex == b.TypeIndex
}
