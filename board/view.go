package board

import (
	"sync"

	"project-board/domain"
	"project-board/store"
)

// ListView is the rendered list for one status. It subscribes to the store at
// construction and on every notification replaces its held items with the
// status-filtered snapshot; there is no incremental diffing. It is also the
// drop target that moves a dragged project into its status.
type ListView struct {
	status domain.Status
	store  *store.Store

	mu         sync.Mutex
	items      []ListItem
	generation uint64
	marked     bool
}

var _ DropTarget = (*ListView)(nil)

// NewListView builds the view for the given status, seeding it and
// subscribing it for re-renders in one step so no change lands between the
// two.
func NewListView(s *store.Store, status domain.Status) *ListView {
	v := &ListView{status: status, store: s}
	s.SubscribeNow(v.assign)
	return v
}

// Status returns the status this view renders.
func (v *ListView) Status() domain.Status { return v.status }

// assign replaces the held items with the projects of this view's status, in
// snapshot (insertion) order. Filtering is stable, so every project lands in
// exactly one view.
func (v *ListView) assign(snapshot []domain.Project) {
	items := make([]ListItem, 0, len(snapshot))
	for _, p := range snapshot {
		if p.Status == v.status {
			items = append(items, NewListItem(p))
		}
	}
	v.mu.Lock()
	v.items = items
	v.generation++
	v.mu.Unlock()
}

// Items returns the currently rendered items.
func (v *ListView) Items() []ListItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]ListItem, len(v.items))
	copy(out, v.items)
	return out
}

// Generation counts full re-renders; it bumps once per store notification.
func (v *ListView) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.generation
}

// AcceptsDrop implements DropTarget: only plain-text payloads carry project
// identities.
func (v *ListView) AcceptsDrop(format string) bool {
	return format == PayloadFormat
}

// DragOver marks the view as a valid drop zone when the payload format
// matches. A non-matching payload leaves the marker untouched.
func (v *ListView) DragOver(format string) {
	if !v.AcceptsDrop(format) {
		return
	}
	v.setMarked(true)
}

// DragLeave clears the drop-zone marker.
func (v *ListView) DragLeave() {
	v.setMarked(false)
}

// Drop implements DropTarget: the payload is a project identity, which is
// moved into this view's status. Unknown identities and same-status drops are
// silent no-ops in the store. The marker clears before the move so the
// re-render triggered by the store observes the final marker state.
func (v *ListView) Drop(payload string) {
	v.setMarked(false)
	v.store.Move(payload, v.status)
}

// Marked reports whether the view currently shows as a valid drop zone.
func (v *ListView) Marked() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.marked
}

func (v *ListView) setMarked(marked bool) {
	v.mu.Lock()
	v.marked = marked
	v.mu.Unlock()
}
