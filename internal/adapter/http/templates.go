package http

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/taskboard/taskboard/internal/domain"
)

const tasksTemplate = `<!DOCTYPE html>
<html>
<head><title>Tasks</title></head>
<body>
<p>Signed in as <strong>{{.Username}}</strong></p>
<form method="post" action="/logout"><button type="submit">Log out</button></form>
<h1>My tasks</h1>
<table>
<tr><th>Title</th><th>Description</th><th>Status</th><th>Due</th><th></th></tr>
{{range .Tasks}}
<tr>
<td>{{.Title}}</td>
<td>{{.Description}}</td>
<td>{{.Status}}</td>
<td>{{dueDate .DueDate}}</td>
<td>
<form method="post" action="/tasks/update/{{.ID}}">
<input name="title" value="{{.Title}}" required>
<input name="description" value="{{.Description}}">
<select name="status">
<option{{if isStatus .Status "TODO"}} selected{{end}}>TODO</option>
<option{{if isStatus .Status "IN_PROGRESS"}} selected{{end}}>IN_PROGRESS</option>
<option{{if isStatus .Status "DONE"}} selected{{end}}>DONE</option>
</select>
<input name="dueDate" value="{{dueDate .DueDate}}">
<button type="submit">Save</button>
</form>
<form method="post" action="/tasks/delete/{{.ID}}">
<input type="hidden" name="title" value="{{.Title}}">
<input type="hidden" name="status" value="{{.Status}}">
<button type="submit">Delete</button>
</form>
</td>
</tr>
{{end}}
</table>
<h2>New task</h2>
<form method="post" action="/tasks/create">
<input name="title" placeholder="Title" required>
<input name="description" placeholder="Description">
<input name="dueDate" placeholder="2025-06-01T10:00:00">
<button type="submit">Create</button>
</form>
</body>
</html>`

const loginTemplate = `<!DOCTYPE html>
<html>
<head><title>Login</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
<input name="username" placeholder="Username" required>
<input type="password" name="password" placeholder="Password" required>
<button type="submit">Sign in</button>
</form>
</body>
</html>`

// View renders the server-side HTML templates
type View struct {
	templates *template.Template
}

// NewView parses the built-in templates
func NewView() *View {
	t := template.New("views").Funcs(template.FuncMap{
		"dueDate":  formatDueDate,
		"isStatus": func(status domain.TaskStatus, literal string) bool { return string(status) == literal },
	})
	template.Must(t.New("tasks").Parse(tasksTemplate))
	template.Must(t.New("login").Parse(loginTemplate))
	return &View{templates: t}
}

// Render writes the named template to the response
func (v *View) Render(w http.ResponseWriter, name string, data interface{}) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return nil
}

func formatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DueDateLayout)
}
