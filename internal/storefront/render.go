// internal/storefront/render.go
package storefront

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("storefront").
		Funcs(template.FuncMap{"price": FormatPrice}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// PageData is everything the storefront page template needs
type PageData struct {
	Title      string
	Search     string
	Category   string
	Categories []CategoryOption
	Products   []Product
	Fallback   bool
}

// RenderPage writes the full storefront page. Exactly one category button
// carries the active state: the one matching data's Category.
func RenderPage(w io.Writer, data PageData) error {
	if data.Category == "" {
		data.Category = CategoryAll
	}
	if len(data.Categories) == 0 {
		data.Categories = Categories()
	}
	return pageTemplates.ExecuteTemplate(w, "index.tmpl", data)
}

// RenderGrid writes only the product grid fragment: one card per visible
// product, or the empty-state message when nothing survives the filters
func RenderGrid(w io.Writer, products []Product) error {
	return pageTemplates.ExecuteTemplate(w, "grid.tmpl", products)
}

// RenderSkeleton writes the loading placeholder markup
func RenderSkeleton(w io.Writer) error {
	return pageTemplates.ExecuteTemplate(w, "skeleton.tmpl", nil)
}
