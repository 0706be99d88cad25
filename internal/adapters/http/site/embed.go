package site

import (
	"embed"
	"html/template"

	"github.com/galactis/web/internal/domain/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(
	template.New("site").
		Funcs(template.FuncMap{"formatDate": content.FormatDate}).
		ParseFS(templateFS, "templates/*.html"),
)
