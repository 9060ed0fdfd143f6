// Package board implements the render components of the project board: the
// input form that gates submissions, the per-status list views and their
// items, and the drag-and-drop capability roles that move projects between
// lists.
package board

// PayloadFormat is the declared type of a drag payload. Project identities
// travel as plain text; a drop target only accepts payloads of this format.
const PayloadFormat = "text/plain"

// DragEffectMove is the only effect the board supports: dropping a project
// moves it, never copies it.
const DragEffectMove = "move"

// DragSource is implemented by components a drag can start from.
type DragSource interface {
	// DragData returns the payload format and the payload itself.
	DragData() (format, payload string)
	// DragEffect returns the declared effect mode of the drag.
	DragEffect() string
}

// DropTarget is implemented by components that accept dropped payloads.
type DropTarget interface {
	// AcceptsDrop reports whether a payload of the given format may be
	// dropped here.
	AcceptsDrop(format string) bool
	// Drop delivers the payload.
	Drop(payload string)
}
