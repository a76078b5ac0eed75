// Package nodeid implements NodeId identity, QualifiedName, and
// LocalizedText per spec.md §3, grounded on open62541's UA_NodeId union
// (original_source/include/ua_client.h) and on the teacher's FileHandle
// hashing/equality pattern (pkg/metadata/store/memory/crud.go's
// handleToKey).
package nodeid

import (
	"encoding/binary"
	"fmt"
)

// IdentifierType is the discriminant of a NodeId's payload.
type IdentifierType uint8

const (
	IdentifierNumeric IdentifierType = iota
	IdentifierString
	IdentifierGUID
	IdentifierByteString
)

// GUID is a 128-bit globally unique identifier, stored as raw bytes in
// wire order (no interpretation beyond equality/hashing is required by
// the core).
type GUID [16]byte

// NodeId is the identity of a node: a 16-bit namespace index plus exactly
// one of four identifier payloads (spec.md §3). The zero value is not a
// valid NodeId (Numeric identifier 0 in namespace 0 is reserved for the
// null NodeId and is rejected by validation helpers where relevant, but
// the type itself does not special-case it).
type NodeId struct {
	NamespaceIndex uint16
	IDType         IdentifierType

	Numeric    uint32
	StringID   string
	GUIDID     GUID
	ByteString []byte
}

// NewNumeric builds a numeric NodeId.
func NewNumeric(ns uint16, id uint32) NodeId {
	return NodeId{NamespaceIndex: ns, IDType: IdentifierNumeric, Numeric: id}
}

// NewString builds a string NodeId.
func NewString(ns uint16, id string) NodeId {
	return NodeId{NamespaceIndex: ns, IDType: IdentifierString, StringID: id}
}

// NewGUID builds a GUID NodeId.
func NewGUID(ns uint16, id GUID) NodeId {
	return NodeId{NamespaceIndex: ns, IDType: IdentifierGUID, GUIDID: id}
}

// NewByteString builds an opaque byte-string NodeId. The slice is not
// copied; callers that do not own it for the NodeId's lifetime must copy
// first.
func NewByteString(ns uint16, id []byte) NodeId {
	return NodeId{NamespaceIndex: ns, IDType: IdentifierByteString, ByteString: id}
}

// Equal reports whether a and b identify the same node.
func (a NodeId) Equal(b NodeId) bool {
	if a.NamespaceIndex != b.NamespaceIndex || a.IDType != b.IDType {
		return false
	}
	switch a.IDType {
	case IdentifierNumeric:
		return a.Numeric == b.Numeric
	case IdentifierString:
		return a.StringID == b.StringID
	case IdentifierGUID:
		return a.GUIDID == b.GUIDID
	case IdentifierByteString:
		return string(a.ByteString) == string(b.ByteString)
	default:
		return false
	}
}

// fnvOffset/fnvPrime implement FNV-1a for the byte-keyed identifier forms,
// matching spec.md §4.3's "byte-array hash for string/opaque, mix for
// numeric/GUID".
const (
	fnvOffset = uint64(14695981039346656037)
	fnvPrime  = uint64(1099511628211)
)

func fnv1a(seed uint64, b []byte) uint64 {
	h := seed
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime
	}
	return h
}

// Hash returns a stable, process-local hash of the NodeId suitable for
// bucket selection in a concurrent map (spec.md §4.3). It is not a wire
// format and must not be persisted across process versions.
func (id NodeId) Hash() uint64 {
	h := fnv1a(fnvOffset, []byte{byte(id.NamespaceIndex), byte(id.NamespaceIndex >> 8), byte(id.IDType)})
	switch id.IDType {
	case IdentifierNumeric:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], id.Numeric)
		// Numeric ids are mixed rather than hashed byte-wise: small
		// sequential ids (the overwhelmingly common case, namespace 0
		// built-ins and AddNodes-assigned ids) would otherwise collide
		// heavily under FNV's low-entropy short inputs.
		h ^= uint64(id.Numeric) * 0x9E3779B97F4A7C15
		h = fnv1a(h, buf[:])
	case IdentifierString:
		h = fnv1a(h, []byte(id.StringID))
	case IdentifierGUID:
		h = fnv1a(h, id.GUIDID[:])
	case IdentifierByteString:
		h = fnv1a(h, id.ByteString)
	}
	return h
}

// String renders a debug form, e.g. "ns=2;i=1003" or "ns=1;s=Temperature".
func (id NodeId) String() string {
	switch id.IDType {
	case IdentifierNumeric:
		return fmt.Sprintf("ns=%d;i=%d", id.NamespaceIndex, id.Numeric)
	case IdentifierString:
		return fmt.Sprintf("ns=%d;s=%s", id.NamespaceIndex, id.StringID)
	case IdentifierGUID:
		return fmt.Sprintf("ns=%d;g=%x", id.NamespaceIndex, id.GUIDID)
	case IdentifierByteString:
		return fmt.Sprintf("ns=%d;b=%x", id.NamespaceIndex, id.ByteString)
	default:
		return fmt.Sprintf("ns=%d;?", id.NamespaceIndex)
	}
}

// IsNull reports whether id is the reserved null NodeId (ns=0, numeric 0).
func (id NodeId) IsNull() bool {
	return id.NamespaceIndex == 0 && id.IDType == IdentifierNumeric && id.Numeric == 0
}

// Key returns a canonical string encoding of id suitable as a Go map key
// (NodeId itself is not comparable, since ByteString is a slice). Used by
// every NodeStore backend as the storage key; not a wire format.
func (id NodeId) Key() string {
	switch id.IDType {
	case IdentifierNumeric:
		return fmt.Sprintf("%d:i:%d", id.NamespaceIndex, id.Numeric)
	case IdentifierString:
		return fmt.Sprintf("%d:s:%s", id.NamespaceIndex, id.StringID)
	case IdentifierGUID:
		return fmt.Sprintf("%d:g:%x", id.NamespaceIndex, id.GUIDID)
	case IdentifierByteString:
		return fmt.Sprintf("%d:b:%x", id.NamespaceIndex, id.ByteString)
	default:
		return fmt.Sprintf("%d:?", id.NamespaceIndex)
	}
}

// QualifiedName is (namespaceIndex, name) per spec.md §3.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// LocalizedText is (locale, text) per spec.md §3.
type LocalizedText struct {
	Locale string
	Text   string
}
