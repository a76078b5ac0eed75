// Package nodestore defines the NodeStore contract (spec.md §4.3, §6):
// get/insert/replace(CAS)/remove/iter over NodeId-keyed Node entries.
//
// Grounded on the teacher's metadata store family (pkg/metadata/store.go
// defines the same shape of interface consumed by MetadataService and
// implemented by memory/badger/postgres backends — see
// pkg/metadata/store/memory, pkg/store/metadata/badger,
// pkg/store/metadata/postgres for the three backends this package's
// sibling packages mirror).
package nodestore

import (
	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

// Version identifies a specific generation of a stored node for
// compare-and-swap (spec.md §4.3 "compare-and-swap on a per-entry version
// (or pointer identity)"). Zero is never a valid Version for an existing
// entry.
type Version uint64

// Store is the contract every NodeStore backend implements.
type Store interface {
	// Get returns a read-only snapshot of the node identified by id, its
	// current Version for a subsequent CAS Replace, and whether it was
	// found. The returned Node must not be mutated by the caller — it is
	// the live stored value under the in-memory backend (spec.md §4.3
	// "readers never block on writers").
	Get(id nodeid.NodeId) (n node.Node, v Version, found bool)

	// Insert adds a new node. Returns BadNodeIDExists if id is already
	// present.
	Insert(n node.Node) status.Code

	// Replace performs a compare-and-swap: newNode is installed only if
	// the entry's current version still equals oldVersion. Returns
	// status.BadVersionConflict otherwise, which callers (the edit-node
	// protocol) retry from Get.
	Replace(id nodeid.NodeId, oldVersion Version, newNode node.Node) status.Code

	// Remove deletes the node identified by id. Returns BadNodeIDUnknown
	// if absent.
	Remove(id nodeid.NodeId) status.Code

	// IterReferences invokes fn for each outgoing reference of the node
	// identified by id, stopping early if fn returns false. A no-op if
	// the node does not exist.
	IterReferences(id nodeid.NodeId, fn func(node.Reference) bool)
}

// AddNode is the node-store-facing half of an AddNodes service (spec.md
// §4.6 "[FULL]" supplement): a thin Insert wrapper with no validation
// beyond what Insert itself performs. Full AddNodes request handling
// (type-definition inheritance, attribute defaulting) is external per
// spec.md's Non-goals.
func AddNode(s Store, n node.Node) status.Code {
	return s.Insert(n)
}

// DeleteNode is the node-store-facing half of a DeleteNodes service.
func DeleteNode(s Store, id nodeid.NodeId) status.Code {
	return s.Remove(id)
}
