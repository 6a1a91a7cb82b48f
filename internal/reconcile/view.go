// Package reconcile maintains a staff view's local copy of the order board.
// Three inputs feed the copy: the view's own optimistic edits, pushed events
// from the server, and periodic authoritative snapshots. The merge rules
// keep the view responsive without letting it drift: an optimistic edit
// shows instantly but marks its line dirty, events never touch dirty lines,
// and a snapshot overwrites everything and clears every dirty marker.
package reconcile

import (
	"sort"
	"sync"

	"tableside/internal/core/domain/events"
)

// preEdit remembers what a line looked like before an optimistic edit so a
// rejection can roll it back. existed distinguishes a rolled-back edit on a
// known line from one on a line the view had never seen.
type preEdit struct {
	snapshot events.LineSnapshot
	existed  bool
}

// View is one staff terminal's reconciled copy of the board. Safe for
// concurrent use.
type View struct {
	mu    sync.Mutex
	lines map[string]events.LineSnapshot
	dirty map[string]preEdit
}

// NewView creates an empty view; the first snapshot populates it.
func NewView() *View {
	return &View{
		lines: make(map[string]events.LineSnapshot),
		dirty: make(map[string]preEdit),
	}
}

// ApplyOptimistic shows a local edit immediately and marks the line dirty.
// The pre-edit state is retained for rollback; a second edit on an already
// dirty line keeps the original pre-edit state, so rejection always returns
// to the last server-confirmed version.
func (v *View) ApplyOptimistic(l events.LineSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, alreadyDirty := v.dirty[l.LineID]; !alreadyDirty {
		prev, existed := v.lines[l.LineID]
		v.dirty[l.LineID] = preEdit{snapshot: prev, existed: existed}
	}

	v.lines[l.LineID] = l
}

// Confirm replaces the line with the server's returned record and clears
// its dirty marker. The server record wins even when it differs from the
// optimistic guess.
func (v *View) Confirm(l events.LineSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lines[l.LineID] = l
	delete(v.dirty, l.LineID)
}

// Reject rolls a dirty line back to its pre-edit state. A line that did
// not exist before the edit disappears again. Unknown line ids are ignored.
func (v *View) Reject(lineID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	edit, ok := v.dirty[lineID]
	if !ok {
		return
	}
	delete(v.dirty, lineID)

	if edit.existed {
		v.lines[lineID] = edit.snapshot
	} else {
		delete(v.lines, lineID)
	}
}

// ApplyEvent folds one pushed event into the view. Dirty lines are left
// alone; their pending edit outranks the event, and the next snapshot
// settles any disagreement. Events for unknown kinds are ignored.
func (v *View) ApplyEvent(event events.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch e := event.(type) {
	case events.OrderCreated:
		for _, l := range e.Lines {
			if _, isDirty := v.dirty[l.LineID]; isDirty {
				continue
			}
			v.lines[l.LineID] = l
		}
	case events.LineStatusChanged:
		if _, isDirty := v.dirty[e.LineID]; isDirty {
			return
		}
		l, ok := v.lines[e.LineID]
		if !ok {
			// never seen this line; the next snapshot will carry it
			return
		}
		l.Status = e.Status
		v.lines[e.LineID] = l
	}
}

// ApplySnapshot replaces the whole view with the authoritative state.
// Lines absent from the snapshot are removed, divergent lines overwritten,
// and every dirty marker cleared: whatever edits were in flight, the server
// has now spoken.
func (v *View) ApplySnapshot(lines []events.LineSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lines = make(map[string]events.LineSnapshot, len(lines))
	for _, l := range lines {
		v.lines[l.LineID] = l
	}
	v.dirty = make(map[string]preEdit)
}

// Lines returns the view's current lines, newest first.
func (v *View) Lines() []events.LineSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	lines := make([]events.LineSnapshot, 0, len(v.lines))
	for _, l := range v.lines {
		lines = append(lines, l)
	}

	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].PlacedAt.Equal(lines[j].PlacedAt) {
			return lines[i].PlacedAt.After(lines[j].PlacedAt)
		}
		return lines[i].LineID > lines[j].LineID
	})

	return lines
}

// IsDirty reports whether the line has an unconfirmed local edit.
func (v *View) IsDirty(lineID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok := v.dirty[lineID]
	return ok
}
