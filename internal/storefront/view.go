// internal/storefront/view.go
package storefront

import (
	"fmt"
	"strings"
)

// CategoryAll is the sentinel meaning "no category filter"
const CategoryAll = "todos"

// CategoryOption is one category button in the storefront header
type CategoryOption struct {
	Slug  string
	Label string
}

// Categories returns the storefront's category buttons, the sentinel first
func Categories() []CategoryOption {
	return []CategoryOption{
		{Slug: CategoryAll, Label: "Todos"},
		{Slug: "Equipamentos-e-tecnologia", Label: "Equipamentos e Tecnologia"},
		{Slug: "Ferramentas", Label: "Ferramentas"},
		{Slug: "Pecas-e-acessorios", Label: "Peças e Acessórios"},
	}
}

// View is the catalog view state for one page session: the already-fetched,
// already-normalized product list plus the two filter variables. Filtering
// is pure, so re-rendering with unchanged state yields identical output.
type View struct {
	Products []Product
	Search   string
	Category string
}

// Visible filters the in-memory list: case-insensitive substring match of
// the search text against the name AND exact category match unless the
// selected category is the "todos" sentinel. No fetch happens here.
func (v View) Visible() []Product {
	needle := strings.ToLower(v.Search)
	category := v.Category
	if category == "" {
		category = CategoryAll
	}

	visible := make([]Product, 0, len(v.Products))
	for _, p := range v.Products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if category != CategoryAll && p.Category != category {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}

// FormatPrice renders a price as a whole-number amount with the fixed ",00"
// suffix; cent-level precision is not modeled
func FormatPrice(price float64) string {
	return fmt.Sprintf("R$%d,00", int64(price))
}
