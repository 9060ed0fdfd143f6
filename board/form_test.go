package board

import (
	"errors"
	"testing"

	"project-board/domain"
	"project-board/store"
)

func TestFormSubmitAddsProject(t *testing.T) {
	s := store.New()
	form := NewForm(s)

	p, err := form.Submit("Build X", "a short desc", "3")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected generated identity")
	}
	if p.Title != "Build X" || p.Description != "a short desc" || p.People != 3 {
		t.Fatalf("unexpected project: %#v", p)
	}
	if p.Status != domain.StatusActive {
		t.Fatalf("expected active status, got %q", p.Status)
	}
	if got := s.Projects(); len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("expected project in store, got %#v", got)
	}
}

func TestFormSubmitRejectsInvalidInput(t *testing.T) {
	tests := map[string]struct {
		title       string
		description string
		people      string
	}{
		"empty_title":       {title: "", description: "a short desc", people: "3"},
		"blank_title":       {title: "   ", description: "a short desc", people: "3"},
		"short_description": {title: "Build X", description: "abcd", people: "3"},
		"empty_description": {title: "Build X", description: "", people: "3"},
		"zero_people":       {title: "Build X", description: "a short desc", people: "0"},
		"too_many_people":   {title: "Build X", description: "a short desc", people: "6"},
		"non_numeric":       {title: "Build X", description: "a short desc", people: "three"},
		"fractional_people": {title: "Build X", description: "a short desc", people: "2.5"},
		"empty_people":      {title: "Build X", description: "a short desc", people: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := store.New()
			form := NewForm(s)

			notified := false
			s.Subscribe(func([]domain.Project) { notified = true })

			_, err := form.Submit(tt.title, tt.description, tt.people)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if err.Error() != "Invalid input, please try again!" {
				t.Fatalf("unexpected alert text: %q", err.Error())
			}
			if len(s.Projects()) != 0 {
				t.Fatal("expected no state mutation on failure")
			}
			if notified {
				t.Fatal("expected no notification on failure")
			}
		})
	}
}

func TestFormSubmitBoundaryPeopleCounts(t *testing.T) {
	s := store.New()
	form := NewForm(s)

	for _, people := range []string{"1", "5"} {
		if _, err := form.Submit("Build X", "a short desc", people); err != nil {
			t.Fatalf("submit with people=%s: %v", people, err)
		}
	}
	if got := s.Projects(); len(got) != 2 || got[0].People != 1 || got[1].People != 5 {
		t.Fatalf("unexpected projects: %#v", got)
	}
}
