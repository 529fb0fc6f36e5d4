package catalog

import (
	"math"
	"sort"

	"industrial-catalog/internal/models"
)

// DefaultRelatedLimit es la cantidad de productos relacionados cuando no se indica límite
const DefaultRelatedLimit = 4

// Pesos de cada señal de relevancia
const (
	scoreSameCategory = 10
	scoreSameSeries   = 8
	scoreSameBrand    = 5
	scoreSimilarPrice = 2

	// diferencia relativa máxima de precio para considerarlo similar
	similarPriceRatio = 0.30
)

// RelatedProduct es un producto con su puntaje de relevancia
type RelatedProduct struct {
	models.Product
	RelevanceScore int `json:"relevanceScore"`
}

// RelevanceScore suma las señales independientes entre el producto de referencia y un candidato
func RelevanceScore(ref, candidate models.Product) int {
	score := 0
	if candidate.Category == ref.Category {
		score += scoreSameCategory
	}
	if sameSeries(ref.Series, candidate.Series) {
		score += scoreSameSeries
	}
	if candidate.Brand == ref.Brand {
		score += scoreSameBrand
	}
	if similarPrice(ref, candidate) {
		score += scoreSimilarPrice
	}
	return score
}

// Related ordena el pool por relevancia descendente respecto a ref, excluyendo a ref (por ID).
// Los empates conservan el orden del pool. limit <= 0 usa DefaultRelatedLimit.
func Related(ref models.Product, pool []models.Product, limit int) []RelatedProduct {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	ranked := make([]RelatedProduct, 0, len(pool))
	for _, p := range pool {
		if p.ID == ref.ID {
			continue
		}
		ranked = append(ranked, RelatedProduct{Product: p, RelevanceScore: RelevanceScore(ref, p)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func sameSeries(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}

// similarPrice exige ambos precios distintos de cero; un precio 0 no cuenta como publicado
func similarPrice(ref, candidate models.Product) bool {
	if !ref.HasPrice() || !candidate.HasPrice() {
		return false
	}
	r, c := *ref.PriceCents, *candidate.PriceCents
	if r == 0 || c == 0 {
		return false
	}
	diff := math.Abs(float64(c-r)) / float64(r)
	return diff <= similarPriceRatio
}
