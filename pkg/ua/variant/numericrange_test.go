package variant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

// ============================================================================
// ParseNumericRange Tests
// ============================================================================

func TestParseNumericRange_SingleValue(t *testing.T) {
	t.Parallel()

	r, code := ParseNumericRange("2")
	require.Equal(t, status.Good, code)
	require.Len(t, r, 1)
	assert.Equal(t, Dimension{Min: 2, Max: 2}, r[0])
}

func TestParseNumericRange_SingleValue_MinEqualsMaxIsNotFixed(t *testing.T) {
	t.Parallel()

	// The non-colon form allows min == max; it is a single-element
	// selection, not a parse error.
	r, code := ParseNumericRange("5")
	require.Equal(t, status.Good, code)
	assert.Equal(t, uint32(5), r[0].Min)
	assert.Equal(t, uint32(5), r[0].Max)
}

func TestParseNumericRange_ColonRange(t *testing.T) {
	t.Parallel()

	r, code := ParseNumericRange("1:3")
	require.Equal(t, status.Good, code)
	require.Len(t, r, 1)
	assert.Equal(t, Dimension{Min: 1, Max: 3}, r[0])
}

func TestParseNumericRange_ColonRange_MinEqualsMaxRejected(t *testing.T) {
	t.Parallel()

	// Unlike the bare-value form, the colon form requires a strict min < max.
	_, code := ParseNumericRange("3:3")
	assert.Equal(t, status.BadIndexRangeInvalid, code)
}

func TestParseNumericRange_ColonRange_MinGreaterThanMaxRejected(t *testing.T) {
	t.Parallel()

	_, code := ParseNumericRange("5:3")
	assert.Equal(t, status.BadIndexRangeInvalid, code)
}

func TestParseNumericRange_MultiDimension(t *testing.T) {
	t.Parallel()

	r, code := ParseNumericRange("1:2,0:1,4")
	require.Equal(t, status.Good, code)
	require.Len(t, r, 3)
	assert.Equal(t, Dimension{Min: 1, Max: 2}, r[0])
	assert.Equal(t, Dimension{Min: 4, Max: 4}, r[2])
}

func TestParseNumericRange_Empty(t *testing.T) {
	t.Parallel()

	_, code := ParseNumericRange("")
	assert.Equal(t, status.BadIndexRangeInvalid, code)
}

func TestParseNumericRange_TooLong(t *testing.T) {
	t.Parallel()

	_, code := ParseNumericRange(strings.Repeat("1", maxRangeTextLength+1))
	assert.Equal(t, status.BadInternalError, code)
}

func TestParseNumericRange_MissingColonOperand(t *testing.T) {
	t.Parallel()

	_, code := ParseNumericRange("1:")
	assert.Equal(t, status.BadIndexRangeInvalid, code)

	_, code = ParseNumericRange(":3")
	assert.Equal(t, status.BadIndexRangeInvalid, code)
}

func TestParseNumericRange_NonNumeric(t *testing.T) {
	t.Parallel()

	_, code := ParseNumericRange("abc")
	assert.Equal(t, status.BadIndexRangeInvalid, code)
}

// ============================================================================
// Extents/Len Tests
// ============================================================================

func TestNumericRange_ExtentsAndLen(t *testing.T) {
	t.Parallel()

	r, code := ParseNumericRange("0:1,2:4")
	require.Equal(t, status.Good, code)

	assert.Equal(t, []int{2, 3}, r.Extents())
	assert.Equal(t, 6, r.Len())
}

func TestNumericRange_Len_SingleValueDimension(t *testing.T) {
	t.Parallel()

	r, code := ParseNumericRange("3")
	require.Equal(t, status.Good, code)
	assert.Equal(t, 1, r.Len())
}
