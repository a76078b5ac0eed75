package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Equal Tests
// ============================================================================

func TestNodeId_Equal_SameNumeric(t *testing.T) {
	t.Parallel()

	a := NewNumeric(1, 1003)
	b := NewNumeric(1, 1003)
	assert.True(t, a.Equal(b))
}

func TestNodeId_Equal_DifferentNamespace(t *testing.T) {
	t.Parallel()

	a := NewNumeric(1, 1003)
	b := NewNumeric(2, 1003)
	assert.False(t, a.Equal(b))
}

func TestNodeId_Equal_DifferentIdentifierType(t *testing.T) {
	t.Parallel()

	a := NewNumeric(1, 1003)
	b := NewString(1, "1003")
	assert.False(t, a.Equal(b))
}

func TestNodeId_Equal_String(t *testing.T) {
	t.Parallel()

	a := NewString(2, "Temperature")
	b := NewString(2, "Temperature")
	c := NewString(2, "Pressure")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestNodeId_Equal_ByteString(t *testing.T) {
	t.Parallel()

	a := NewByteString(3, []byte{1, 2, 3})
	b := NewByteString(3, []byte{1, 2, 3})
	c := NewByteString(3, []byte{1, 2, 4})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

// ============================================================================
// Key Tests
// ============================================================================

func TestNodeId_Key_DistinguishesIdentifierTypes(t *testing.T) {
	t.Parallel()

	numeric := NewNumeric(1, 42)
	str := NewString(1, "42")

	assert.NotEqual(t, numeric.Key(), str.Key())
}

func TestNodeId_Key_StableAcrossCalls(t *testing.T) {
	t.Parallel()

	id := NewGUID(0, GUID{0x01, 0x02})
	assert.Equal(t, id.Key(), id.Key())
}

// ============================================================================
// Hash Tests
// ============================================================================

func TestNodeId_Hash_SmallSequentialNumericsDontAllCollide(t *testing.T) {
	t.Parallel()

	seen := make(map[uint64]bool)
	collisions := 0
	for i := uint32(0); i < 256; i++ {
		h := NewNumeric(0, i).Hash()
		if seen[h] {
			collisions++
		}
		seen[h] = true
	}
	assert.Zero(t, collisions, "small sequential numeric ids should not collide")
}

func TestNodeId_Hash_EqualIdsHashEqual(t *testing.T) {
	t.Parallel()

	a := NewNumeric(2, 55)
	b := NewNumeric(2, 55)
	assert.Equal(t, a.Hash(), b.Hash())
}

// ============================================================================
// IsNull Tests
// ============================================================================

func TestNodeId_IsNull(t *testing.T) {
	t.Parallel()

	assert.True(t, NewNumeric(0, 0).IsNull())
	assert.False(t, NewNumeric(0, 1).IsNull())
	assert.False(t, NewNumeric(1, 0).IsNull())
}

// ============================================================================
// String Tests
// ============================================================================

func TestNodeId_String_Forms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ns=2;i=1003", NewNumeric(2, 1003).String())
	assert.Equal(t, "ns=1;s=Temperature", NewString(1, "Temperature").String())
}
