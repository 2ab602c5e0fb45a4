package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html views/layouts/*.html
var viewsFS embed.FS

// ViewsLayout is the shared page layout applied to every rendered view.
const ViewsLayout = "layouts/main"

// NewViewsEngine returns the template engine rendering the embedded views.
func NewViewsEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		// The views directory is embedded at compile time; this cannot
		// fail at runtime with a well-formed binary.
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("safeHTML", func(s string) template.HTML {
		return template.HTML(s)
	})
	return engine
}
