package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"lab-inventory/internal/entities"
	"lab-inventory/internal/views"
)

//go:embed templates
var templatesFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsGlob = "templates/partials/*.html"
	pagesDir     = "templates/pages"
)

// Engine renders the embedded pages. Each page is parsed together with the
// layout and the partials into its own set.
type Engine struct {
	pages     map[string]*template.Template
	fragments map[string]*template.Template
}

var messages = map[string]string{
	"lab_empty":       views.MsgLabEmpty,
	"history_empty":   views.MsgHistoryEmpty,
	"report_empty":    views.MsgReportEmpty,
	"emergency_title": views.MsgEmergencyTitle,
	"emergency_text":  views.MsgEmergencyDescription,
	"connection":      entities.SourceConnectionError,
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"msg": func(key string) string { return messages[key] },
		"flashClass": func(k views.FlashKind) string {
			return "flash flash-" + string(k)
		},
		"statusClass": func(it entities.Item) string {
			if it.Operational() {
				return "chip chip-ok"
			}
			return "chip chip-bad"
		},
	}
}

func New() (*Engine, error) {
	entries, err := fs.ReadDir(templatesFS, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	e := &Engine{
		pages:     make(map[string]*template.Template),
		fragments: make(map[string]*template.Template),
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".html")
		t, err := template.New(name).Funcs(funcs()).ParseFS(templatesFS, layoutFile, partialsGlob, path.Join(pagesDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		e.pages[name] = t
	}

	partials, err := template.New("partials").Funcs(funcs()).ParseFS(templatesFS, partialsGlob)
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	for _, t := range partials.Templates() {
		e.fragments[t.Name()] = partials
	}
	return e, nil
}

// Render implements echo.Renderer. name is a page; the layout wraps it.
func (e *Engine) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := e.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// RenderString executes a partial on its own, for websocket pushes.
func (e *Engine) RenderString(name string, data interface{}) (string, error) {
	t, ok := e.fragments[name]
	if !ok {
		return "", fmt.Errorf("render: unknown fragment %q", name)
	}
	buf := bytes.NewBuffer(nil)
	if err := t.ExecuteTemplate(buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
