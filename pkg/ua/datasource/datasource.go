// Package datasource defines the external Data-source contract for
// Variable nodes whose value is produced on demand (spec.md §6), and the
// DataValue return shape attribute Read/Write build and consume.
//
// Grounded on the teacher's pluggable content store (pkg/content/store.go,
// pkg/store/content/s3), which separates "where bytes live" from the
// metadata layer the same way a DataSource separates "how a Value is
// produced" from the node store.
package datasource

import (
	"time"

	"github.com/northlake-labs/opcua-server/pkg/ua/nodeid"
	"github.com/northlake-labs/opcua-server/pkg/ua/status"
	"github.com/northlake-labs/opcua-server/pkg/ua/variant"
)

// DataValue is a Value attribute's full read result: the value itself
// plus status and timestamps (spec.md §4.4).
type DataValue struct {
	HasValue bool
	Value    *variant.Variant

	HasStatus bool
	Status    status.Code

	HasSourceTimestamp bool
	SourceTimestamp    time.Time

	HasServerTimestamp bool
	ServerTimestamp    time.Time
}

// DataSource is the per-Variable external value provider (spec.md §6).
// Read/Write may block arbitrarily long; the core does not impose a
// timeout (spec.md §5 "the core must tolerate arbitrary latency").
type DataSource interface {
	// Read populates out with the variable's current value. If
	// wantSourceTimestamp is true and the source can supply one, it
	// should populate out.SourceTimestamp/HasSourceTimestamp itself;
	// the attribute-read path will not overwrite an already-populated
	// source timestamp (spec.md §4.4 step 7).
	Read(handle any, id nodeid.NodeId, wantSourceTimestamp bool, rng variant.NumericRange, out *DataValue) status.Code

	// Write applies val (already range-validated by the caller when rng
	// is non-nil) to the variable's backing value.
	Write(handle any, id nodeid.NodeId, val *variant.Variant, rng variant.NumericRange) status.Code
}
