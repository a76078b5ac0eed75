package variant

import (
	"strconv"

	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

// Dimension is one (min, max) bound of a NumericRange (spec.md §3: "0 ≤
// min ≤ max"; equality is only legal in the non-colon single-value form).
type Dimension struct {
	Min, Max uint32
}

// NumericRange is an ordered sequence of per-dimension bounds describing a
// hyper-rectangle slice of a Variant's array payload (spec.md §4.2).
type NumericRange []Dimension

// maxRangeTextLength bounds the textual range length (spec.md §4.2: "≥ 1
// KiB"); open62541 uses this to cap a single pass over attacker-controlled
// input before any allocation happens.
const maxRangeTextLength = 1024

// initialDimensionCapacity is sized so that up to 3 dimensions - the
// overwhelmingly common case for 1-D/2-D/3-D process arrays - never force
// a reallocation of the output vector (spec.md §4.2).
const initialDimensionCapacity = 3

// ParseNumericRange parses a textual range of the form
// "min[:max](,min[:max])*" into a NumericRange. An empty string is
// rejected (callers should treat "" as "no range" before calling this).
//
// The colon form requires min < max strictly; "3:3" is rejected even
// though "3" alone parses to (3,3) — this isn't a bug, see spec.md §9's
// design note on the deliberate asymmetry.
func ParseNumericRange(s string) (NumericRange, status.Code) {
	if len(s) == 0 {
		return nil, status.BadIndexRangeInvalid
	}
	if len(s) > maxRangeTextLength {
		return nil, status.BadInternalError
	}

	dims := make(NumericRange, 0, initialDimensionCapacity)

	start := 0
	for start <= len(s) {
		end := start
		for end < len(s) && s[end] != ',' {
			end++
		}
		dim, code := parseDimension(s[start:end])
		if code != status.Good {
			return nil, code
		}
		dims = append(dims, dim)

		if end == len(s) {
			break
		}
		start = end + 1
		if start > len(s) {
			return nil, status.BadIndexRangeInvalid
		}
	}

	if len(dims) == 0 {
		return nil, status.BadIndexRangeInvalid
	}
	return dims, status.Good
}

// parseDimension parses a single "min[:max]" token.
func parseDimension(tok string) (Dimension, status.Code) {
	if len(tok) == 0 {
		return Dimension{}, status.BadIndexRangeInvalid
	}

	colon := -1
	for i := 0; i < len(tok); i++ {
		if tok[i] == ':' {
			colon = i
			break
		}
	}

	if colon < 0 {
		v, err := parseUint(tok)
		if err != nil {
			return Dimension{}, status.BadIndexRangeInvalid
		}
		return Dimension{Min: v, Max: v}, status.Good
	}

	minStr, maxStr := tok[:colon], tok[colon+1:]
	if len(minStr) == 0 || len(maxStr) == 0 {
		return Dimension{}, status.BadIndexRangeInvalid
	}

	min, err := parseUint(minStr)
	if err != nil {
		return Dimension{}, status.BadIndexRangeInvalid
	}
	max, err := parseUint(maxStr)
	if err != nil {
		return Dimension{}, status.BadIndexRangeInvalid
	}

	// Strict: equal bounds in colon form are malformed, per spec.md §4.2
	// and §9 ("3:3" must fail even though "3" succeeds).
	if min >= max {
		return Dimension{}, status.BadIndexRangeInvalid
	}

	return Dimension{Min: min, Max: max}, status.Good
}

func parseUint(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Extents returns, for each dimension, the number of elements it
// selects (Max-Min+1). Their product is the total element count
// set_range_copy/copy_range expect for the flattened payload.
func (r NumericRange) Extents() []int {
	extents := make([]int, len(r))
	for i, d := range r {
		extents[i] = int(d.Max-d.Min) + 1
	}
	return extents
}

// Len returns the product of all dimension extents.
func (r NumericRange) Len() int {
	total := 1
	for _, e := range r.Extents() {
		total *= e
	}
	return total
}
