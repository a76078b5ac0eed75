// Package postgres implements a persistent NodeStore backend on
// PostgreSQL via pgx (spec.md's DOMAIN STACK persistent-store
// expansion). Grounded on the teacher's pkg/store/metadata/postgres,
// which drives raw pgx (not an ORM) against a connection pool, and wraps
// its CAS-equivalent update logic (postgres/move.go's
// expected-row-count-after-UPDATE pattern) for version-checked Replace.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northlake-labs/opcua-server/pkg/ua/node"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore/persist"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
)

// Store is a PostgreSQL-backed nodestore.Store.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to PostgreSQL, applies ApplyDefaults to cfg, runs the
// embedded schema migrations if cfg.AutoMigrate is set, and returns a
// ready Store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	cfg.ApplyDefaults()
	connString := cfg.connString()

	if cfg.AutoMigrate {
		if err := runMigrations(ctx, connString); err != nil {
			return nil, err
		}
	}

	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse pool config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Get implements nodestore.Store.
func (s *Store) Get(id nodeid.NodeId) (node.Node, nodestore.Version, bool) {
	ctx := context.Background()
	var version int64
	var data []byte

	err := s.pool.QueryRow(ctx,
		`SELECT version, data FROM nodes WHERE node_key = $1`, id.Key(),
	).Scan(&version, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, false
	}
	if err != nil {
		return nil, 0, false
	}

	n, err := persist.Decode(data)
	if err != nil {
		return nil, 0, false
	}
	return n, nodestore.Version(version), true
}

// Insert implements nodestore.Store.
func (s *Store) Insert(n node.Node) status.Code {
	ctx := context.Background()
	data, err := persist.Encode(n)
	if err != nil {
		return status.BadInternalError
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO nodes (node_key, version, data) VALUES ($1, 1, $2)`,
		n.Head().ID.Key(), data,
	)
	if err == nil {
		return status.Good
	}
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" { // unique_violation
		return status.BadNodeIDExists
	}
	return status.BadInternalError
}

// Replace implements nodestore.Store's compare-and-swap contract: the
// UPDATE's WHERE clause pins both the key and the expected version, and a
// zero affected-row count (rather than a separate SELECT-then-UPDATE
// round trip) distinguishes "unknown node" from "version conflict"
// without a second query, the same expected-row-count check the
// teacher's postgres/move.go uses for its own conditional updates.
func (s *Store) Replace(id nodeid.NodeId, oldVersion nodestore.Version, newNode node.Node) status.Code {
	ctx := context.Background()
	data, err := persist.Encode(newNode)
	if err != nil {
		return status.BadInternalError
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE nodes SET version = version + 1, data = $1 WHERE node_key = $2 AND version = $3`,
		data, id.Key(), int64(oldVersion),
	)
	if err != nil {
		return status.BadInternalError
	}
	if tag.RowsAffected() == 1 {
		return status.Good
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM nodes WHERE node_key = $1)`, id.Key()).Scan(&exists); err != nil {
		return status.BadInternalError
	}
	if !exists {
		return status.BadNodeIDUnknown
	}
	return status.BadVersionConflict
}

// Remove implements nodestore.Store.
func (s *Store) Remove(id nodeid.NodeId) status.Code {
	ctx := context.Background()
	tag, err := s.pool.Exec(ctx, `DELETE FROM nodes WHERE node_key = $1`, id.Key())
	if err != nil {
		return status.BadInternalError
	}
	if tag.RowsAffected() == 0 {
		return status.BadNodeIDUnknown
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
