// Package attribute implements the per-attribute Read and Write dispatch
// (spec.md §4.4, §4.5) and the edit-node copy-on-write protocol (spec.md
// §5) that backs every Write.
//
// Grounded on open62541's ua_services_attribute.c (the attribute switch
// this package's ReadValue/WriteValue mirror) and on the teacher's
// permission-checked, node-class-guarded mutation style in
// pkg/metadata/file_modify.go / pkg/metadata/locking.go.
package attribute

import "github.com/northlake-labs/opcua-server/pkg/ua/node"

// ID is the 32-bit OPC UA AttributeId (Part 6). Only the subset spec.md
// §4.4's legality table names is dispatched meaningfully; all others hit
// BadAttributeIdInvalid.
type ID uint32

const (
	IDNodeId ID = 1 + iota
	IDNodeClass
	IDBrowseName
	IDDisplayName
	IDDescription
	IDWriteMask
	IDUserWriteMask
	IDIsAbstract
	IDSymmetric
	IDInverseName
	IDContainsNoLoops
	IDEventNotifier
	IDValue
	IDDataType
	IDValueRank
	IDArrayDimensions
	IDAccessLevel
	IDUserAccessLevel
	IDMinimumSamplingInterval
	IDHistorizing
	IDExecutable
	IDUserExecutable
)

// TimestampsToReturn selects which DataValue timestamps a Read populates
// (spec.md §4.4 step 7). Values above Neither (3) are invalid at the
// batch level per spec.md §4.6.
type TimestampsToReturn uint8

const (
	TimestampsSource TimestampsToReturn = iota
	TimestampsServer
	TimestampsBoth
	TimestampsNeither
)

// DataEncoding names the requested encoding for a Read (spec.md §4.4 step
// 1). Only the empty string and "DefaultBinary" are legal.
type DataEncoding struct {
	Name string
}

// legalClasses enumerates, for attributes whose legality is class-gated,
// which node.Class values may be read/written (spec.md §4.4 table). Head
// fields (NodeId, NodeClass, BrowseName, DisplayName, Description,
// WriteMask, UserWriteMask) are legal for all classes and are not listed
// here.
var legalClasses = map[ID][]node.Class{
	IDIsAbstract:              {node.ClassReferenceType, node.ClassObjectType, node.ClassVariableType, node.ClassDataType},
	IDSymmetric:               {node.ClassReferenceType},
	IDInverseName:             {node.ClassReferenceType},
	IDContainsNoLoops:         {node.ClassView},
	IDEventNotifier:           {node.ClassView, node.ClassObject},
	IDValue:                   {node.ClassVariable, node.ClassVariableType},
	IDDataType:                {node.ClassVariable, node.ClassVariableType},
	IDValueRank:               {node.ClassVariable, node.ClassVariableType},
	IDArrayDimensions:         {node.ClassVariable, node.ClassVariableType},
	IDAccessLevel:             {node.ClassVariable},
	IDUserAccessLevel:         {node.ClassVariable},
	IDMinimumSamplingInterval: {node.ClassVariable},
	IDHistorizing:             {node.ClassVariable},
	IDExecutable:              {node.ClassMethod},
	IDUserExecutable:          {node.ClassMethod},
}

var headAttributes = map[ID]bool{
	IDNodeId: true, IDNodeClass: true, IDBrowseName: true, IDDisplayName: true,
	IDDescription: true, IDWriteMask: true, IDUserWriteMask: true,
}

// classAllowed reports whether attr is legal for class c.
func classAllowed(attr ID, c node.Class) bool {
	if headAttributes[attr] {
		return true
	}
	classes, known := legalClasses[attr]
	if !known {
		return false
	}
	for _, allowed := range classes {
		if allowed == c {
			return true
		}
	}
	return false
}
