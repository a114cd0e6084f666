// Package view holds the HTML pages of the task manager. Templates are
// parsed with html/template, so every value is escaped for the context it
// is rendered in (element text, attribute value or URL).
package view

import (
	"embed"
	"html/template"

	"taskmanager/internal/model"
)

const (
	AppTitle      = "Task Manager"
	StylesheetURL = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css"
)

// Template names accepted by gin's c.HTML.
const (
	IndexPageName  = "index.html"
	EditPageName   = "edit.html"
	DeletePageName = "delete.html"
	ErrorPageName  = "error.html"
)

//go:embed templates/*.html
var templates embed.FS

var funcs = template.FuncMap{
	"priorities": model.Priorities,
	"statuses":   model.Statuses,
}

// Templates parses the embedded page set.
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(templates, "templates/*.html")
}

type Page struct {
	Title         string
	StylesheetURL string
}

func newPage() Page {
	return Page{Title: AppTitle, StylesheetURL: StylesheetURL}
}

// Form carries the raw values of the task form so a rejected submission
// can be shown back to the user unchanged.
type Form struct {
	Title       string
	Description string
	DueDate     string
	Assignee    string
	Priority    string
	Status      string
}

func FormFromTask(t model.Task) Form {
	return Form{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDateString(),
		Assignee:    t.Assignee,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
	}
}

type IndexPage struct {
	Page
	Tasks  []model.Task
	Form   Form
	Errors []string
}

// WithRejectedForm shows the submitted values and why they were rejected.
func (p IndexPage) WithRejectedForm(f Form, errs []string) IndexPage {
	p.Form = f
	p.Errors = errs
	return p
}

func NewIndexPage(tasks []model.Task) IndexPage {
	return IndexPage{
		Page:  newPage(),
		Tasks: tasks,
		Form: Form{
			Priority: string(model.PriorityMedium),
			Status:   string(model.StatusPending),
		},
	}
}

type EditPage struct {
	Page
	Task   model.Task
	Form   Form
	Errors []string
}

func NewEditPage(t model.Task) EditPage {
	return EditPage{Page: newPage(), Task: t, Form: FormFromTask(t)}
}

// WithRejectedForm shows the submitted values and why they were rejected.
func (p EditPage) WithRejectedForm(f Form, errs []string) EditPage {
	p.Form = f
	p.Errors = errs
	return p
}

type DeletePage struct {
	Page
	Task model.Task
}

func NewDeletePage(t model.Task) DeletePage {
	return DeletePage{Page: newPage(), Task: t}
}

type ErrorPage struct {
	Page
	Status     int
	StatusText string
	Message    string
	Details    []string
}

func NewErrorPage(status int, statusText, message string, details ...string) ErrorPage {
	return ErrorPage{
		Page:       newPage(),
		Status:     status,
		StatusText: statusText,
		Message:    message,
		Details:    details,
	}
}
