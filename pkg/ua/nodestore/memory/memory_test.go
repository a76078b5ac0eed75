package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

func newTestNode(id nodeid.NodeId) node.Node {
	return &node.ObjectNode{Head: node.Head{ID: id}}
}

// ============================================================================
// Insert/Get Tests
// ============================================================================

func TestStore_InsertThenGet(t *testing.T) {
	t.Parallel()

	s := New()
	id := nodeid.NewNumeric(1, 100)

	require.Equal(t, status.Good, s.Insert(newTestNode(id)))

	got, version, found := s.Get(id)
	require.True(t, found)
	assert.Equal(t, nodestore.Version(1), version)
	assert.True(t, got.Head().ID.Equal(id))
}

func TestStore_Get_Missing(t *testing.T) {
	t.Parallel()

	s := New()
	_, _, found := s.Get(nodeid.NewNumeric(1, 999))
	assert.False(t, found)
}

func TestStore_Insert_Duplicate(t *testing.T) {
	t.Parallel()

	s := New()
	id := nodeid.NewNumeric(1, 1)
	require.Equal(t, status.Good, s.Insert(newTestNode(id)))
	assert.Equal(t, status.BadNodeIDExists, s.Insert(newTestNode(id)))
}

// ============================================================================
// Replace (CAS) Tests
// ============================================================================

func TestStore_Replace_Succeeds(t *testing.T) {
	t.Parallel()

	s := New()
	id := nodeid.NewNumeric(1, 1)
	require.Equal(t, status.Good, s.Insert(newTestNode(id)))

	_, version, _ := s.Get(id)
	updated := &node.ObjectNode{Head: node.Head{ID: id, BrowseName: nodeid.QualifiedName{Name: "x"}}}

	code := s.Replace(id, version, updated)
	require.Equal(t, status.Good, code)

	got, newVersion, _ := s.Get(id)
	assert.Equal(t, "x", got.Head().BrowseName.Name)
	assert.Equal(t, version+1, newVersion)
}

func TestStore_Replace_VersionConflict(t *testing.T) {
	t.Parallel()

	s := New()
	id := nodeid.NewNumeric(1, 1)
	require.Equal(t, status.Good, s.Insert(newTestNode(id)))

	code := s.Replace(id, nodestore.Version(999), newTestNode(id))
	assert.Equal(t, status.BadVersionConflict, code)
}

func TestStore_Replace_Missing(t *testing.T) {
	t.Parallel()

	s := New()
	code := s.Replace(nodeid.NewNumeric(1, 1), nodestore.Version(1), newTestNode(nodeid.NewNumeric(1, 1)))
	assert.Equal(t, status.BadNodeIDUnknown, code)
}

// ============================================================================
// Remove Tests
// ============================================================================

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	s := New()
	id := nodeid.NewNumeric(1, 1)
	require.Equal(t, status.Good, s.Insert(newTestNode(id)))
	require.Equal(t, status.Good, s.Remove(id))

	_, _, found := s.Get(id)
	assert.False(t, found)
}

func TestStore_Remove_Missing(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Equal(t, status.BadNodeIDUnknown, s.Remove(nodeid.NewNumeric(1, 1)))
}

// ============================================================================
// IterReferences Tests
// ============================================================================

func TestStore_IterReferences_StopsEarly(t *testing.T) {
	t.Parallel()

	s := New()
	id := nodeid.NewNumeric(1, 1)
	n := &node.ObjectNode{Head: node.Head{
		ID: id,
		References: []node.Reference{
			{TargetID: nodeid.NewNumeric(1, 2)},
			{TargetID: nodeid.NewNumeric(1, 3)},
		},
	}}
	require.Equal(t, status.Good, s.Insert(n))

	var seen []nodeid.NodeId
	s.IterReferences(id, func(r node.Reference) bool {
		seen = append(seen, r.TargetID)
		return false
	})
	assert.Len(t, seen, 1)
}

// ============================================================================
// Concurrency Tests
// ============================================================================

func TestStore_ConcurrentReplace_NoLostUpdates(t *testing.T) {
	t.Parallel()

	s := New()
	id := nodeid.NewNumeric(1, 1)
	require.Equal(t, status.Good, s.Insert(newTestNode(id)))

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			for {
				_, version, _ := s.Get(id)
				if s.Replace(id, version, newTestNode(id)) == status.Good {
					return
				}
			}
		}()
	}
	wg.Wait()

	_, version, found := s.Get(id)
	require.True(t, found)
	assert.Equal(t, nodestore.Version(writers+1), version)
}

func TestStore_Len(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Equal(t, 0, s.Len())
	require.Equal(t, status.Good, s.Insert(newTestNode(nodeid.NewNumeric(1, 1))))
	assert.Equal(t, 1, s.Len())
}
