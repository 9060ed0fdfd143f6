package board

import (
	"bytes"
	"html/template"
	"strings"

	"project-board/domain"
)

var listTmpl = template.Must(template.New("list").Parse(`<section class="projects" id="{{.Status}}-projects">
  <header><h2>{{.Heading}}</h2></header>
  <ul>
{{- range .Items}}
    <li draggable="true" data-project-id="{{.Project.ID}}">
      <h2>{{.Project.Title}}</h2>
      <h3>{{.AssigneesLabel}}</h3>
      <p>{{.Project.Description}}</p>
    </li>
{{- end}}
  </ul>
</section>
`))

type listFragment struct {
	Status  domain.Status
	Heading string
	Items   []ListItem
}

// RenderHTML renders the view as a ready-to-insert HTML fragment.
func (v *ListView) RenderHTML() ([]byte, error) {
	return renderListHTML(v.status, v.Items())
}

// RenderListHTML renders a list fragment for an arbitrary snapshot, used by
// the stream to ship markup for the projects it just delivered as JSON.
func RenderListHTML(status domain.Status, projects []domain.Project) ([]byte, error) {
	items := make([]ListItem, 0, len(projects))
	for _, p := range projects {
		if p.Status == status {
			items = append(items, NewListItem(p))
		}
	}
	return renderListHTML(status, items)
}

func renderListHTML(status domain.Status, items []ListItem) ([]byte, error) {
	var buf bytes.Buffer
	err := listTmpl.Execute(&buf, listFragment{
		Status:  status,
		Heading: strings.ToUpper(string(status)) + " PROJECTS",
		Items:   items,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
