package ui

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown": renderMarkdown,
		"lower":    strings.ToLower,
	}
}

// renderMarkdown converts catalog descriptions to HTML. Descriptions are
// built from static spec data, never from user input.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}

// renderTemplate executes a template with the given data
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	// First render to a buffer to catch any errors before writing to response
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("Template error for %s: %v", templateName, err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("Error writing template response: %v", err)
	}
}
