package mutation

import "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"

// EntityType identifies the type of entity being mutated.
type EntityType uint16

const (
	EntityDocument EntityType = iota
	EntityDocumentVersion
)

// Operation identifies the type of mutation.
type Operation uint8

const (
	OpInsert Operation = iota
	OpUpdate
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event represents a single mutation event.
// Events are collected during a mutation transaction and published on commit.
type Event struct {
	Entity   EntityType
	Op       Operation
	ID       idwrap.IDWrap
	ParentID idwrap.IDWrap // document id for version events
	Payload  any           // For insert/update - the entity data
	Patch    any           // For update - what changed
}
