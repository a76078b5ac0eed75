// Package variant implements the Variant tagged-value type and its
// slice-range algebra (spec.md §3, §4.1), grounded on the teacher's
// content-addressed Object/Chunk hierarchy (pkg/metadata/object.go,
// pkg/metadata/chunks.go) for the idea of a typed, owned-vs-borrowed
// payload, generalized here to OPC UA's Variant.
//
// Array payloads are held in Data as a plain Go slice of the Go type that
// corresponds to the Variant's DataType descriptor, and range operations
// work on it through reflect. Using reflect keeps
// copy_range/set_range_copy generic over every built-in type without a
// thousand-line switch, at the cost of a handful of reflect calls per
// range operation — never on the scalar fast path.
package variant

import (
	"reflect"

	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
)

// StorageType is the ownership hint for a Variant's Data (spec.md §3).
type StorageType uint8

const (
	// StorageData means the Variant owns Data and must release it when
	// replaced or discarded.
	StorageData StorageType = iota
	// StorageDataNoDelete means Data is a borrowed view into storage
	// owned elsewhere (e.g. a read that returned a snapshot of a node's
	// stored Variant without copying it).
	StorageDataNoDelete
	// StorageDataSource means the value is produced on demand by a
	// callback rather than stored inline.
	StorageDataSource
)

// Variant is a self-describing tagged value (spec.md §3).
type Variant struct {
	Type            *types.Descriptor
	Data            any // scalar value, or reflect-addressable slice for arrays
	ArrayLength     int32
	ArrayDimensions []int32
	Storage         StorageType
}

// IsScalar reports whether v holds a single value rather than an array,
// per spec.md §3: "is scalar ≡ arrayLength == 0".
func (v *Variant) IsScalar() bool {
	return v == nil || v.ArrayLength == 0
}

// checkDimensions validates the invariant "product(arrayDimensions) ==
// arrayLength" (spec.md §3).
func checkDimensions(dims []int32, arrayLength int32) bool {
	if len(dims) == 0 {
		return true
	}
	product := int32(1)
	for _, d := range dims {
		product *= d
	}
	return product == arrayLength
}

// NewScalarCopy builds a Variant owning a freshly copied scalar value
// (spec.md §4.1 set_scalar_copy).
func NewScalarCopy(val any, t *types.Descriptor) *Variant {
	return &Variant{Type: t, Data: copyScalar(val), ArrayLength: 0, Storage: StorageData}
}

// NewArrayCopy builds a Variant owning a freshly copied array payload of
// length n (spec.md §4.1 set_array_copy).
func NewArrayCopy(arr any, n int32, t *types.Descriptor) *Variant {
	return &Variant{Type: t, Data: copySlice(arr), ArrayLength: n, Storage: StorageData}
}

// Borrow wraps an existing Variant's Data as a non-owning view, used by
// the attribute-read path when no index range was requested (spec.md
// §4.4 step 5: "return a borrowed (non-owning) snapshot").
func Borrow(src *Variant) *Variant {
	if src == nil {
		return nil
	}
	cp := *src
	cp.Storage = StorageDataNoDelete
	return &cp
}

// Copy performs a deep copy of v, including the array payload, per
// spec.md §4.1 copy(v) → v'.
func Copy(v *Variant) *Variant {
	if v == nil {
		return nil
	}
	cp := &Variant{Type: v.Type, ArrayLength: v.ArrayLength, Storage: StorageData}
	if len(v.ArrayDimensions) > 0 {
		cp.ArrayDimensions = append([]int32(nil), v.ArrayDimensions...)
	}
	if v.IsScalar() {
		cp.Data = copyScalar(v.Data)
	} else {
		cp.Data = copySlice(v.Data)
	}
	return cp
}

func copyScalar(val any) any {
	// Scalar built-in types (numbers, bool, string, [16]byte GUIDs) are
	// Go value types and copy by assignment; only ByteString needs an
	// explicit slice copy to avoid aliasing the source's backing array.
	if b, ok := val.([]byte); ok {
		return append([]byte(nil), b...)
	}
	return val
}

func copySlice(arr any) any {
	if arr == nil {
		return nil
	}
	rv := reflect.ValueOf(arr)
	if rv.Kind() != reflect.Slice {
		return arr
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(out, rv)
	return out.Interface()
}

// Equal reports whether a and b are deeply equal (spec.md §4.1 equal(a,b)).
func Equal(a, b *Variant) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !types.SameType(a.Type, b.Type) || a.ArrayLength != b.ArrayLength {
		return false
	}
	if len(a.ArrayDimensions) != len(b.ArrayDimensions) {
		return false
	}
	for i := range a.ArrayDimensions {
		if a.ArrayDimensions[i] != b.ArrayDimensions[i] {
			return false
		}
	}
	return reflect.DeepEqual(a.Data, b.Data)
}

// CopyRange produces a new Variant containing only the hyper-rectangle
// selected by r from src's array (spec.md §4.1 copy_range). Dimensionality
// of r must not exceed src's ArrayDimensions (or src must be effectively
// 1-D when ArrayDimensions is empty).
func CopyRange(src *Variant, r NumericRange) (*Variant, status.Code) {
	if src == nil || len(r) == 0 {
		return nil, status.BadIndexRangeInvalid
	}

	// A scalar has exactly one addressable element; "0" (read: the whole
	// value) is the only range that fits it, anything else — a second
	// dimension, or a bound other than (0,0) — doesn't fit a scalar.
	if src.IsScalar() {
		if len(r) != 1 || r[0].Min != 0 || r[0].Max != 0 {
			return nil, status.BadIndexRangeInvalid
		}
		return Copy(src), status.Good
	}

	dims := effectiveDimensions(src)
	if len(r) > len(dims) {
		return nil, status.BadIndexRangeInvalid
	}
	for i, d := range r {
		if int(d.Max) >= dims[i] {
			return nil, status.BadIndexRangeNoData
		}
	}

	rv := reflect.ValueOf(src.Data)
	if rv.Kind() != reflect.Slice {
		return nil, status.BadIndexRangeInvalid
	}

	selected, code := gatherRange(rv, dims, r)
	if code != status.Good {
		return nil, code
	}

	out := &Variant{Type: src.Type, Storage: StorageData}
	out.Data = selected.Interface()
	out.ArrayLength = int32(selected.Len())
	if len(dims) > 1 {
		out.ArrayDimensions = extentsAsInt32(r, dims)
	}
	return out, status.Good
}

// SetRangeCopy writes srcData (flat row-major, length equal to the
// product of r's extents) into the hyper-rectangle of dst's array
// (spec.md §4.1 set_range_copy). dst is mutated in place.
func SetRangeCopy(dst *Variant, srcData any, srcLen int, r NumericRange) status.Code {
	if dst == nil || len(r) == 0 {
		return status.BadIndexRangeInvalid
	}

	dims := effectiveDimensions(dst)
	if len(r) > len(dims) {
		return status.BadIndexRangeInvalid
	}
	for i, d := range r {
		if int(d.Max) >= dims[i] {
			return status.BadIndexRangeNoData
		}
	}
	if r.Len() != srcLen {
		return status.BadIndexRangeInvalid
	}

	src := reflect.ValueOf(srcData)
	dstRV := reflect.ValueOf(dst.Data)
	if src.Kind() != reflect.Slice || dstRV.Kind() != reflect.Slice {
		return status.BadIndexRangeInvalid
	}
	if src.Type().Elem() != dstRV.Type().Elem() {
		return status.BadIndexRangeInvalid
	}

	return scatterRange(dstRV, dims, r, src)
}

// effectiveDimensions returns a Variant's logical dimension extents: its
// ArrayDimensions if set, otherwise a single dimension equal to
// ArrayLength (a flat 1-D array), otherwise (scalar) a single dimension
// of length 1 so that a full range over a scalar round-trips.
func effectiveDimensions(v *Variant) []int {
	if len(v.ArrayDimensions) > 0 {
		dims := make([]int, len(v.ArrayDimensions))
		for i, d := range v.ArrayDimensions {
			dims[i] = int(d)
		}
		return dims
	}
	if v.IsScalar() {
		return []int{1}
	}
	return []int{int(v.ArrayLength)}
}

func extentsAsInt32(r NumericRange, _ []int) []int32 {
	out := make([]int32, len(r))
	for i, e := range r.Extents() {
		out[i] = int32(e)
	}
	return out
}

// strides returns the row-major stride of each dimension (product of all
// dimensions to its right).
func strides(dims []int) []int {
	s := make([]int, len(dims))
	acc := 1
	for i := len(dims) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= dims[i]
	}
	return s
}

// gatherRange copies the selected hyper-rectangle out of src into a new
// flat slice, iterating the cartesian product of r's dimension extents in
// row-major order.
func gatherRange(src reflect.Value, dims []int, r NumericRange) (reflect.Value, status.Code) {
	str := strides(dims)
	total := r.Len()
	out := reflect.MakeSlice(src.Type(), 0, total)

	idx := make([]int, len(r))
	for i := range idx {
		idx[i] = int(r[i].Min)
	}

	for n := 0; n < total; n++ {
		flat := 0
		for i, v := range idx {
			flat += v * str[i]
		}
		if flat >= src.Len() {
			return reflect.Value{}, status.BadIndexRangeNoData
		}
		out = reflect.Append(out, src.Index(flat))
		advance(idx, r)
	}
	return out, status.Good
}

// scatterRange writes src (flat, row-major, length r.Len()) into dst's
// selected hyper-rectangle.
func scatterRange(dst reflect.Value, dims []int, r NumericRange, src reflect.Value) status.Code {
	str := strides(dims)
	total := r.Len()

	idx := make([]int, len(r))
	for i := range idx {
		idx[i] = int(r[i].Min)
	}

	for n := 0; n < total; n++ {
		flat := 0
		for i, v := range idx {
			flat += v * str[i]
		}
		if flat >= dst.Len() {
			return status.BadIndexRangeNoData
		}
		dst.Index(flat).Set(src.Index(n))
		advance(idx, r)
	}
	return status.Good
}

// advance steps idx to the next element in row-major order within the
// bounds described by r (last dimension varies fastest).
func advance(idx []int, r NumericRange) {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] <= int(r[i].Max) {
			return
		}
		idx[i] = int(r[i].Min)
	}
}
