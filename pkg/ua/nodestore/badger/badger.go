// Package badger implements a persistent NodeStore backend on top of
// BadgerDB (spec.md's DOMAIN STACK persistent-store expansion). Grounded
// on the teacher's pkg/store/metadata/badger package: a single
// *badger.DB, keys prefixed by entity kind, db.View/db.Update closures for
// reads/writes, generalized here from file-handle keys to NodeId keys and
// from JSON-encoded metadata.File records to persist.Encode's gob wire
// format.
package badger

import (
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore/persist"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

const nodePrefix = "node:"

func nodeKey(id nodeid.NodeId) []byte {
	return []byte(nodePrefix + id.Key())
}

// entry is the on-disk record for one node: its wire-encoded value plus
// the CAS version it was written at.
type entry struct {
	Version nodestore.Version
	Data    []byte
}

// Store is a BadgerDB-backed nodestore.Store.
type Store struct {
	db *badgerdb.DB
}

// Open opens (creating if absent) a BadgerDB database at dir as a
// NodeStore backend.
func Open(dir string) (*Store, error) {
	opts := badgerdb.DefaultOptions(dir)
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying BadgerDB handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements nodestore.Store.
func (s *Store) Get(id nodeid.NodeId) (node.Node, nodestore.Version, bool) {
	var e entry
	var found bool

	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(nodeKey(id))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			decoded, derr := persistDecodeEntry(val)
			if derr != nil {
				return derr
			}
			e = decoded
			return nil
		})
	})
	if err != nil || !found {
		return nil, 0, false
	}

	n, err := persist.Decode(e.Data)
	if err != nil {
		return nil, 0, false
	}
	return n, e.Version, true
}

// Insert implements nodestore.Store.
func (s *Store) Insert(n node.Node) status.Code {
	id := n.Head().ID
	data, err := persist.Encode(n)
	if err != nil {
		return status.BadInternalError
	}

	err = s.db.Update(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(nodeKey(id))
		if err == nil {
			return errAlreadyExists
		}
		if err != badgerdb.ErrKeyNotFound {
			return err
		}
		raw, eerr := encodeEntry(entry{Version: 1, Data: data})
		if eerr != nil {
			return eerr
		}
		return txn.Set(nodeKey(id), raw)
	})
	if err == errAlreadyExists {
		return status.BadNodeIDExists
	}
	if err != nil {
		return status.BadInternalError
	}
	return status.Good
}

// Replace implements nodestore.Store's compare-and-swap contract.
func (s *Store) Replace(id nodeid.NodeId, oldVersion nodestore.Version, newNode node.Node) status.Code {
	data, err := persist.Encode(newNode)
	if err != nil {
		return status.BadInternalError
	}

	err = s.db.Update(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(nodeKey(id))
		if err == badgerdb.ErrKeyNotFound {
			return errNotFound
		}
		if err != nil {
			return err
		}

		var current entry
		if err := item.Value(func(val []byte) error {
			decoded, derr := persistDecodeEntry(val)
			if derr != nil {
				return derr
			}
			current = decoded
			return nil
		}); err != nil {
			return err
		}

		if current.Version != oldVersion {
			return errVersionConflict
		}

		raw, eerr := encodeEntry(entry{Version: oldVersion + 1, Data: data})
		if eerr != nil {
			return eerr
		}
		return txn.Set(nodeKey(id), raw)
	})

	switch err {
	case nil:
		return status.Good
	case errNotFound:
		return status.BadNodeIDUnknown
	case errVersionConflict:
		return status.BadVersionConflict
	default:
		return status.BadInternalError
	}
}

// Remove implements nodestore.Store.
func (s *Store) Remove(id nodeid.NodeId) status.Code {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(nodeKey(id))
		if err == badgerdb.ErrKeyNotFound {
			return errNotFound
		}
		if err != nil {
			return err
		}
		return txn.Delete(nodeKey(id))
	})
	if err == errNotFound {
		return status.BadNodeIDUnknown
	}
	if err != nil {
		return status.BadInternalError
	}
	return status.Good
}

// IterReferences implements nodestore.Store.
func (s *Store) IterReferences(id nodeid.NodeId, fn func(node.Reference) bool) {
	n, _, ok := s.Get(id)
	if !ok {
		return
	}
	for _, ref := range n.Head().References {
		if !fn(ref) {
			return
		}
	}
}
