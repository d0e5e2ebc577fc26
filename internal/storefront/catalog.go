// internal/storefront/catalog.go
package storefront

import (
	"strconv"
)

// Product is the canonical record the render path works with, after
// field-name normalization
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// Live catalogs in the wild mix Portuguese, English and legacy field names.
// Each canonical attribute tries its candidates in priority order and falls
// back to a documented default, so normalization is total.
var (
	idKeys          = []string{"id", "id_product", "product_id"}
	nameKeys        = []string{"nome", "name", "title"}
	categoryKeys    = []string{"categoria", "category"}
	priceKeys       = []string{"preco", "price"}
	imageKeys       = []string{"imagem", "image", "photo"}
	descriptionKeys = []string{"descricao", "description", "summary"}
)

// Normalize maps one raw backend row into a canonical Product
func Normalize(raw map[string]any) Product {
	return Product{
		ID:          stringField(raw, idKeys, ""),
		Name:        stringField(raw, nameKeys, "Produto"),
		Category:    stringField(raw, categoryKeys, ""),
		Price:       numberField(raw, priceKeys, 0),
		Image:       stringField(raw, imageKeys, ""),
		Description: stringField(raw, descriptionKeys, ""),
	}
}

// NormalizeAll maps a raw listing into canonical records
func NormalizeAll(rows []map[string]any) []Product {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, Normalize(row))
	}
	return products
}

// FallbackCatalog is the fixed single-item catalog shown when live data is
// unavailable or empty. It is valid data, not an error state.
func FallbackCatalog() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Empilhadeira Elétrica 2,5t",
			Category:    "Equipamentos-e-tecnologia",
			Price:       7999,
			Image:       "https://armac.com.br/wordpress/wp-content/uploads/2022/06/armac-empilhadeira-eletrica-toyota-btreflex-blog.jpg",
			Description: "Equipamento para movimentação e armazenamento de cargas.",
		},
	}
}

// stringField returns the first candidate holding a non-empty value.
// Numeric values count (ids are often numbers) and are rendered in decimal.
func stringField(raw map[string]any, keys []string, fallback string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
		case int:
			if v != 0 {
				return strconv.Itoa(v)
			}
		}
	}
	return fallback
}

// numberField returns the first candidate holding a non-zero number.
// Numeric strings count, matching how loosely typed catalogs store prices.
func numberField(raw map[string]any, keys []string, fallback float64) float64 {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case float64:
			if v != 0 {
				return v
			}
		case int:
			if v != 0 {
				return float64(v)
			}
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed != 0 {
				return parsed
			}
		}
	}
	return fallback
}
