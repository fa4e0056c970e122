package renderer

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/damacus/media-shelf/internal/utils"
	"github.com/labstack/echo/v4"
)

//go:embed views
var views embed.FS

// TemplateRenderer implements echo.Renderer
type TemplateRenderer struct {
	Templates map[string]*template.Template
}

// New creates a new TemplateRenderer with pre-parsed templates
func New() *TemplateRenderer {
	r := &TemplateRenderer{
		Templates: make(map[string]*template.Template),
	}
	r.parseTemplates()
	return r
}

// FuncMap exposes the display formatters to templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatBytes":    func(v any) string { return utils.FormatBytes(toFloat(v)) },
		"formatSize":     utils.FormatFileSize,
		"formatDuration": utils.FormatDuration,
		"percent":        func(value, total any) float64 { return utils.CalculatePercentage(toFloat(value), toFloat(total)) },
	}
}

func (t *TemplateRenderer) parseTemplates() {
	parse := func(name string, files ...string) {
		t.Templates[name] = template.Must(template.New(name).Funcs(FuncMap()).ParseFS(views, files...))
	}

	// Pages share the layout
	parse("library", "views/layouts/base.html", "views/pages/library.html")

	// Partials
	parse("media_info", "views/partials/media_info.html")
	parse("storage_widget", "views/partials/storage_widget.html")
}

// selfExecutingTemplates lists templates that execute their own named block instead of "base"
var selfExecutingTemplates = map[string]bool{
	"media_info":     true,
	"storage_widget": true,
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.Templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}

	if selfExecutingTemplates[name] {
		return tmpl.ExecuteTemplate(w, name, data)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
