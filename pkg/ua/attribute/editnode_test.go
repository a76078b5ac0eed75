package attribute

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore/memory"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

// ============================================================================
// Edit Tests
// ============================================================================

func TestEdit_UnknownNode(t *testing.T) {
	t.Parallel()

	s := memory.New()
	code := Edit(s, nodeid.NewNumeric(1, 404), func(n node.Node) status.Code {
		t.Fatal("editor must not run for an unknown node")
		return status.Good
	})
	assert.Equal(t, status.BadNodeIDUnknown, code)
}

func TestEdit_EditorErrorDiscardsCopy(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: id, BrowseName: nodeid.QualifiedName{Name: "orig"}}}))

	code := Edit(s, id, func(n node.Node) status.Code {
		n.Head().BrowseName.Name = "mutated"
		return status.BadInternalError
	})
	assert.Equal(t, status.BadInternalError, code)

	got, _, _ := s.Get(id)
	assert.Equal(t, "orig", got.Head().BrowseName.Name, "a failing editor must not be committed")
}

func TestEdit_SuccessCommitsAndBumpsVersion(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: id}}))
	_, before, _ := s.Get(id)

	code := Edit(s, id, func(n node.Node) status.Code {
		n.Head().BrowseName.Name = "new"
		return status.Good
	})
	require.Equal(t, status.Good, code)

	got, after, _ := s.Get(id)
	assert.Equal(t, "new", got.Head().BrowseName.Name)
	assert.Greater(t, after, before)
}

func TestEdit_RetriesOnVersionConflict(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.ObjectNode{Head: node.Head{ID: id}}))

	var once sync.Once
	attempts := 0
	code := Edit(s, id, func(n node.Node) status.Code {
		attempts++
		// Simulate a racing writer landing between this editor's get and
		// the CAS replace, forcing exactly one retry.
		once.Do(func() {
			require.Equal(t, status.Good, Edit(s, id, func(inner node.Node) status.Code {
				inner.Head().BrowseName.Name = "racer"
				return status.Good
			}))
		})
		n.Head().DisplayName.Text = "final"
		return status.Good
	})
	require.Equal(t, status.Good, code)
	assert.Equal(t, 2, attempts, "the conflicting replace must force exactly one retry")

	got, _, _ := s.Get(id)
	assert.Equal(t, "racer", got.Head().BrowseName.Name)
	assert.Equal(t, "final", got.Head().DisplayName.Text)
}

func TestEdit_OnRetryObservesNodeClass(t *testing.T) {
	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.VariableNode{Head: node.Head{ID: id}}))

	var seen []string
	OnRetry = func(nodeClass string) { seen = append(seen, nodeClass) }
	defer func() { OnRetry = nil }()

	var once sync.Once
	code := Edit(s, id, func(n node.Node) status.Code {
		once.Do(func() {
			require.Equal(t, status.Good, Edit(s, id, func(inner node.Node) status.Code {
				return status.Good
			}))
		})
		return status.Good
	})
	require.Equal(t, status.Good, code)
	assert.Equal(t, []string{"Variable"}, seen)
}

func TestEdit_ConcurrentEdits_NoLostUpdates(t *testing.T) {
	t.Parallel()

	id := nodeid.NewNumeric(1, 1)
	s := memory.New()
	require.Equal(t, status.Good, s.Insert(&node.VariableNode{Head: node.Head{ID: id}, AccessLevel: 0}))

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			code := Edit(s, id, func(n node.Node) status.Code {
				n.(*node.VariableNode).AccessLevel++
				return status.Good
			})
			assert.Equal(t, status.Good, code)
		}()
	}
	wg.Wait()

	got, _, _ := s.Get(id)
	assert.Equal(t, byte(writers), got.(*node.VariableNode).AccessLevel)
}
