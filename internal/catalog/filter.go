package catalog

import "industrial-catalog/internal/models"

// Filter combina los filtros de la página de catálogo: dentro de una dimensión
// basta con coincidir con un valor; entre dimensiones deben cumplirse todas.
type Filter struct {
	Categories []string
	Brands     []string
	Query      string
}

// IsZero indica que el filtro no restringe nada
func (f Filter) IsZero() bool {
	return len(f.Categories) == 0 && len(f.Brands) == 0 && f.Query == ""
}

// Apply devuelve los productos que pasan el filtro, en el mismo orden
func (f Filter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) matches(p models.Product) bool {
	if f.Query != "" && !p.MatchesQuery(f.Query) {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
		return false
	}
	if len(f.Brands) > 0 && !contains(f.Brands, p.Brand) {
		return false
	}
	return true
}

// Categories lista las categorías distintas en orden de aparición
func Categories(products []models.Product) []string {
	return distinct(products, func(p models.Product) string { return p.Category })
}

// Brands lista las marcas distintas en orden de aparición
func Brands(products []models.Product) []string {
	return distinct(products, func(p models.Product) string { return p.Brand })
}

func distinct(products []models.Product, key func(models.Product) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		k := key(p)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
