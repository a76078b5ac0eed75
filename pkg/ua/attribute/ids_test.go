package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/northlake-labs/opcua-server/pkg/ua/node"
)

// ============================================================================
// classAllowed Tests
// ============================================================================

func TestClassAllowed_HeadAttributeLegalForEveryClass(t *testing.T) {
	t.Parallel()

	for _, c := range []node.Class{node.ClassObject, node.ClassVariable, node.ClassMethod, node.ClassView} {
		assert.True(t, classAllowed(IDDisplayName, c))
	}
}

func TestClassAllowed_ClassGatedAttribute(t *testing.T) {
	t.Parallel()

	assert.True(t, classAllowed(IDValue, node.ClassVariable))
	assert.True(t, classAllowed(IDValue, node.ClassVariableType))
	assert.False(t, classAllowed(IDValue, node.ClassObject))
}

func TestClassAllowed_UnknownAttributeIsIllegalForEveryClass(t *testing.T) {
	t.Parallel()

	assert.False(t, classAllowed(ID(999), node.ClassVariable))
}

func TestClassAllowed_ExecutableOnlyForMethod(t *testing.T) {
	t.Parallel()

	assert.True(t, classAllowed(IDExecutable, node.ClassMethod))
	assert.False(t, classAllowed(IDExecutable, node.ClassObject))
}
