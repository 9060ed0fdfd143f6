package board

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"project-board/domain"
)

// ListItem renders one project inside a list. Items are rebuilt from scratch
// on every re-render and carry no state of their own.
type ListItem struct {
	project domain.Project
}

var _ DragSource = ListItem{}

// NewListItem wraps a project for rendering.
func NewListItem(p domain.Project) ListItem {
	return ListItem{project: p}
}

// Project returns the rendered project.
func (it ListItem) Project() domain.Project { return it.project }

// AssigneesLabel returns the pluralized people-count label. Exactly one
// assignee reads "1 person assigned."; every other count, including zero,
// uses the plural form.
func (it ListItem) AssigneesLabel() string {
	if it.project.People == 1 {
		return "1 person assigned."
	}
	return strconv.Itoa(it.project.People) + " persons assigned."
}

// DragData implements DragSource: the payload is the project identity, typed
// as plain text.
func (it ListItem) DragData() (string, string) {
	return PayloadFormat, it.project.ID
}

// DragEffect implements DragSource.
func (it ListItem) DragEffect() string { return DragEffectMove }

// DragEnd performs no state change; the drop target already applied the move.
func (it ListItem) DragEnd() {
	log.WithField("id", it.project.ID).Debug("drag ended")
}
