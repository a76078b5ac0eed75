package attribute

import (
	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

// Editor mutates a heap-owned clone of a stored node in place. A non-Good
// return aborts the edit: the clone is discarded and the store is left
// untouched.
type Editor func(n node.Node) status.Code

// OnRetry, if non-nil, is called with the node class name each time the
// edit-node loop discards a copy to a version conflict and retries. It
// is purely observational (wired to a Prometheus counter by cmd/opcuad)
// and never influences control flow, so it cannot change the liveness
// property the loop below provides.
var OnRetry func(nodeClass string)

// Edit implements the multi-threaded edit-node protocol (spec.md §5):
// get a shared snapshot, deep-copy it, apply editor to the copy, then
// CAS-replace. A version conflict discards the copy and retries from
// get. The protocol only guarantees forward progress in the absence of
// perpetual contention; livelock under unbounded contention is accepted
// per spec.md §5.
func Edit(store nodestore.Store, id nodeid.NodeId, editor Editor) status.Code {
	for {
		n, version, found := store.Get(id)
		if !found {
			return status.BadNodeIDUnknown
		}

		cp := node.Clone(n)
		if code := editor(cp); code != status.Good {
			return code
		}

		code := store.Replace(id, version, cp)
		if code == status.BadVersionConflict {
			if OnRetry != nil {
				OnRetry(n.Class().String())
			}
			continue
		}
		return code
	}
}
