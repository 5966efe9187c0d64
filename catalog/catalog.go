// Package catalog provides the catalog synchronization control loop: paging
// the remote listing into memory and the local cache, debounced hybrid
// local/remote search, and on-demand detail loading.
//
// All published state is owned by the controllers in this package and mutated
// only under their locks; remote and cache I/O happens outside those locks
// and results are funneled back in before any mutation.
package catalog

import (
	"github.com/wkgunawan/pokedex"
)

// EventType indicates the type of status event emitted by the controllers.
type EventType int

// Status events consumed by presentation layers. The core never renders
// anything itself.
const (
	EventIdle EventType = iota
	EventLoading
	EventNoResults
	EventError
)

// Event is a status change emitted to the presentation layer.
type Event struct {
	Type    EventType
	Message string
}

// EventFunc is a callback for status events.
type EventFunc func(event Event)

// Cursor tracks the paging position within the remote catalog.
type Cursor struct {
	Offset   int
	PageSize int
	HasMore  bool
}

// Snapshot is a point-in-time copy of the controller's published state.
type Snapshot struct {
	All             []pokedex.Summary
	Displayed       []pokedex.Summary
	Cursor          Cursor
	Loading         bool
	InitiallyLoaded bool
}
