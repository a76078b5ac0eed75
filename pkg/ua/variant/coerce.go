package variant

import (
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
)

// Coerce applies the write-time type coercion rules of spec.md §4.1 when
// oldType and newVal's type differ. It returns a Variant that may be
// newVal itself (when types already match), a retyped copy of newVal
// (rule a/b), or a BadTypeMismatch status.
func Coerce(oldType *types.Descriptor, newVal *Variant) (*Variant, status.Code) {
	if newVal == nil {
		return nil, status.BadTypeMismatch
	}
	if types.SameType(oldType, newVal.Type) {
		return newVal, status.Good
	}

	// Rule (a): same namespaceZero && typeIndex — adopt the old
	// descriptor. types.SameType already covers this, so falling through
	// here means the fast path above didn't match; rule (a) as literally
	// stated ("same namespaceZero && typeIndex") is therefore only
	// reachable when the caller passes a Variant whose Type pointer
	// differs but TypeIndex/NamespaceZero are equal (e.g. two distinct
	// Descriptor instances for the same built-in, which this registry
	// never produces — kept for callers supplying foreign descriptors).
	if oldType != nil && newVal.Type != nil &&
		oldType.NamespaceZero == newVal.Type.NamespaceZero &&
		oldType.TypeIndex == newVal.Type.TypeIndex {
		cp := *newVal
		cp.Type = oldType
		return &cp, status.Good
	}

	// Rule (b): old is array of Byte, new is scalar ByteString — the new
	// Variant is reinterpreted as a byte array of length str.length.
	if oldType == types.Byte && newVal.Type == types.ByteString && newVal.IsScalar() {
		b, ok := newVal.Data.([]byte)
		if !ok {
			return nil, status.BadTypeMismatch
		}
		return &Variant{
			Type:        types.Byte,
			Data:        append([]byte(nil), b...),
			ArrayLength: int32(len(b)),
			Storage:     StorageData,
		}, status.Good
	}

	return nil, status.BadTypeMismatch
}
