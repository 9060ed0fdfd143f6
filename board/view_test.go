package board

import (
	"strings"
	"testing"

	"project-board/domain"
	"project-board/store"
)

func itemIDs(items []ListItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Project().ID
	}
	return ids
}

func TestListViewFiltersByStatus(t *testing.T) {
	s := store.New()
	active := NewListView(s, domain.StatusActive)
	finished := NewListView(s, domain.StatusFinished)

	a := s.Add("a", "first project", 1)
	b := s.Add("b", "second project", 2)
	s.Move(b.ID, domain.StatusFinished)

	if got := itemIDs(active.Items()); len(got) != 1 || got[0] != a.ID {
		t.Fatalf("unexpected active items: %v", got)
	}
	if got := itemIDs(finished.Items()); len(got) != 1 || got[0] != b.ID {
		t.Fatalf("unexpected finished items: %v", got)
	}
}

func TestListViewSeedsFromExistingState(t *testing.T) {
	s := store.New()
	p := s.Add("pre-existing", "created before the view", 2)

	view := NewListView(s, domain.StatusActive)
	if got := itemIDs(view.Items()); len(got) != 1 || got[0] != p.ID {
		t.Fatalf("expected view seeded with existing project, got %v", got)
	}
}

func TestListViewRerendersWholeListInInsertionOrder(t *testing.T) {
	s := store.New()
	view := NewListView(s, domain.StatusActive)

	a := s.Add("a", "first project", 1)
	b := s.Add("b", "second project", 2)
	c := s.Add("c", "third project", 3)
	gen := view.Generation()

	s.Move(b.ID, domain.StatusFinished)
	if view.Generation() != gen+1 {
		t.Fatalf("expected one re-render, generation went %d -> %d", gen, view.Generation())
	}
	if got := itemIDs(view.Items()); len(got) != 2 || got[0] != a.ID || got[1] != c.ID {
		t.Fatalf("expected [a c], got %v", got)
	}

	// A no-op move must not re-render.
	s.Move(b.ID, domain.StatusFinished)
	if view.Generation() != gen+1 {
		t.Fatal("expected no re-render from a no-op move")
	}
}

func TestListViewDropZoneMarker(t *testing.T) {
	s := store.New()
	view := NewListView(s, domain.StatusFinished)

	if view.Marked() {
		t.Fatal("expected view to start unmarked")
	}

	view.DragOver("application/json")
	if view.Marked() {
		t.Fatal("expected non-matching payload to leave the marker untouched")
	}

	view.DragOver(PayloadFormat)
	if !view.Marked() {
		t.Fatal("expected matching drag-over to mark the view")
	}

	view.DragLeave()
	if view.Marked() {
		t.Fatal("expected drag-leave to unmark the view")
	}

	view.DragOver(PayloadFormat)
	view.Drop("no-such-id")
	if view.Marked() {
		t.Fatal("expected drop to unmark the view")
	}
}

func TestListViewDropMovesProject(t *testing.T) {
	s := store.New()
	active := NewListView(s, domain.StatusActive)
	finished := NewListView(s, domain.StatusFinished)

	p := s.Add("Build X", "a short desc", 3)

	finished.DragOver(PayloadFormat)
	finished.Drop(p.ID)

	if got := active.Items(); len(got) != 0 {
		t.Fatalf("expected project gone from active list, got %v", itemIDs(got))
	}
	if got := itemIDs(finished.Items()); len(got) != 1 || got[0] != p.ID {
		t.Fatalf("expected project in finished list, got %v", got)
	}

	// Dropping it on the same list again is a no-op.
	gen := finished.Generation()
	finished.Drop(p.ID)
	if finished.Generation() != gen {
		t.Fatal("expected same-status drop to trigger no re-render")
	}
}

func TestListItemAssigneesLabel(t *testing.T) {
	tests := map[string]struct {
		people int
		want   string
	}{
		"singular": {people: 1, want: "1 person assigned."},
		"plural":   {people: 3, want: "3 persons assigned."},
		"zero":     {people: 0, want: "0 persons assigned."},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			it := NewListItem(domain.Project{People: tt.people})
			if got := it.AssigneesLabel(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestListItemDragSource(t *testing.T) {
	it := NewListItem(domain.Project{ID: "p1"})
	format, payload := it.DragData()
	if format != PayloadFormat {
		t.Fatalf("expected plain-text payload format, got %q", format)
	}
	if payload != "p1" {
		t.Fatalf("expected project identity payload, got %q", payload)
	}
	if it.DragEffect() != DragEffectMove {
		t.Fatalf("expected move effect, got %q", it.DragEffect())
	}
}

func TestRenderHTMLContainsItems(t *testing.T) {
	s := store.New()
	view := NewListView(s, domain.StatusActive)
	s.Add("Build X", "a short desc", 3)
	s.Add("Solo", "one person project", 1)

	html, err := view.RenderHTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	for _, want := range []string{
		"ACTIVE PROJECTS",
		"Build X",
		"3 persons assigned.",
		"1 person assigned.",
		`draggable="true"`,
		`id="active-projects"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected fragment to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "Build X") > strings.Index(out, "Solo") {
		t.Fatal("expected insertion order in rendered fragment")
	}
}

func TestRenderListHTMLEscapesContent(t *testing.T) {
	html, err := RenderListHTML(domain.StatusActive, []domain.Project{{
		ID:     "p1",
		Title:  "<script>alert(1)</script>",
		People: 2,
		Status: domain.StatusActive,
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected title to be escaped, got:\n%s", html)
	}
}
