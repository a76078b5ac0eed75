package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/types"
)

// ============================================================================
// Coerce Tests
// ============================================================================

func TestCoerce_SameTypeFastPath(t *testing.T) {
	t.Parallel()

	newVal := NewScalarCopy(int32(7), types.Int32)
	out, code := Coerce(types.Int32, newVal)

	require.Equal(t, status.Good, code)
	assert.Same(t, newVal, out)
}

func TestCoerce_ByteArrayFromByteStringScalar(t *testing.T) {
	t.Parallel()

	newVal := NewScalarCopy([]byte{1, 2, 3}, types.ByteString)
	out, code := Coerce(types.Byte, newVal)

	require.Equal(t, status.Good, code)
	assert.Equal(t, types.Byte, out.Type)
	assert.Equal(t, int32(3), out.ArrayLength)
	assert.Equal(t, []byte{1, 2, 3}, out.Data)
}

func TestCoerce_Mismatch(t *testing.T) {
	t.Parallel()

	// spec scenario 5: writing an Int32 Variable's Value with a
	// BrowseName-typed variant must fail BAD_TYPE_MISMATCH.
	newVal := NewScalarCopy(uint16(1), types.QualifiedName)
	_, code := Coerce(types.Int32, newVal)

	assert.Equal(t, status.BadTypeMismatch, code)
}

func TestCoerce_NilVariant(t *testing.T) {
	t.Parallel()

	_, code := Coerce(types.Int32, nil)
	assert.Equal(t, status.BadTypeMismatch, code)
}

func TestCoerce_ByteStringArrayIsNotCoerced(t *testing.T) {
	t.Parallel()

	// Rule (b) only applies when newVal is a scalar ByteString.
	arrayVal := NewArrayCopy([][]byte{{1}, {2}}, 2, types.ByteString)
	_, code := Coerce(types.Byte, arrayVal)

	assert.Equal(t, status.BadTypeMismatch, code)
}
