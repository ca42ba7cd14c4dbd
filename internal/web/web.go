// Package web holds the server-rendered HTML templates.
//
// Every page is parsed into one template set named by file name, e.g.
// "list.html". Pages pull in the shared "header" and "footer" blocks
// from layout.html.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Template helper functions
var funcMap = template.FuncMap{
	"rating":     Rating,
	"review":     Review,
	"formatDate": FormatDate,
}

// Load parses all embedded templates.
func Load() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Rating renders an optional rating.
func Rating(r *int) string {
	if r == nil {
		return "Not rated"
	}
	return strconv.Itoa(*r)
}

// Review renders an optional review.
func Review(r *string) string {
	if r == nil {
		return ""
	}
	return *r
}

// FormatDate renders a release date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006")
}

// Form carries submitted values and per-field validation messages back into a page.
type Form struct {
	Values map[string]string
	Errors map[string]string
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{Values: map[string]string{}, Errors: map[string]string{}}
}

// Set stores a value to pre-fill.
func (f *Form) Set(field, value string) *Form {
	f.Values[field] = value
	return f
}

// Fail records a validation message for field.
func (f *Form) Fail(field, message string) *Form {
	f.Errors[field] = message
	return f
}

// Value returns the pre-filled value for field.
func (f *Form) Value(field string) string {
	if f == nil {
		return ""
	}
	return f.Values[field]
}

// Error returns the validation message for field, if any.
func (f *Form) Error(field string) string {
	if f == nil {
		return ""
	}
	return f.Errors[field]
}

// Valid reports whether no field failed validation.
func (f *Form) Valid() bool {
	return f == nil || len(f.Errors) == 0
}
