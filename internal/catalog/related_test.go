package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"industrial-catalog/internal/models"
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func ids(products []RelatedProduct) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestRelated_RanksBySignals(t *testing.T) {
	ref := models.Product{ID: "R", Category: "Climatización", Brand: "ANWO", Series: strPtr("EcoFlow"), PriceCents: int64Ptr(50000)}
	a := models.Product{ID: "A", Category: "Climatización", Brand: "ANWO", Series: strPtr("EcoFlow"), PriceCents: int64Ptr(52000)}
	b := models.Product{ID: "B", Category: "Climatización", Brand: "Infinity"}
	c := models.Product{ID: "C", Category: "Telecomunicaciones", Brand: "ANWO"}

	related := Related(ref, []models.Product{b, a, c}, 4)

	assert.Equal(t, []string{"A", "B", "C"}, ids(related))
	assert.Equal(t, 25, related[0].RelevanceScore)
	assert.Equal(t, 10, related[1].RelevanceScore)
	assert.Equal(t, 5, related[2].RelevanceScore)
}

func TestRelated_ExcludesReference(t *testing.T) {
	ref := models.Product{ID: "R", Category: "X", Brand: "Y"}
	related := Related(ref, []models.Product{ref, {ID: "A", Category: "X", Brand: "Z"}}, 4)
	assert.Equal(t, []string{"A"}, ids(related))

	assert.Empty(t, Related(ref, []models.Product{ref}, 4))
	assert.Empty(t, Related(ref, nil, 4))
}

func TestRelated_StableTiesAndLimit(t *testing.T) {
	ref := models.Product{ID: "R", Category: "X", Brand: "Y"}
	pool := []models.Product{
		{ID: "1", Category: "Z", Brand: "Q"},
		{ID: "2", Category: "X", Brand: "Q"},
		{ID: "3", Category: "Z", Brand: "Q"},
		{ID: "4", Category: "X", Brand: "Q"},
		{ID: "5", Category: "Z", Brand: "Q"},
		{ID: "6", Category: "Z", Brand: "Q"},
	}

	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(Related(ref, pool, 0)), "default limit is 4")
	assert.Equal(t, []string{"2", "4", "1", "3", "5", "6"}, ids(Related(ref, pool, 10)))
	assert.Equal(t, []string{"2"}, ids(Related(ref, pool, 1)))
}

func TestRelated_DoesNotMutatePool(t *testing.T) {
	ref := models.Product{ID: "R", Category: "X"}
	pool := []models.Product{{ID: "1", Category: "Z"}, {ID: "2", Category: "X"}}
	Related(ref, pool, 4)
	assert.Equal(t, "1", pool[0].ID)
}

func TestRelevanceScore(t *testing.T) {
	ref := models.Product{Category: "X", Brand: "Y", Series: strPtr("S"), PriceCents: int64Ptr(10000)}

	cases := []struct {
		name string
		cand models.Product
		want int
	}{
		{"nothing in common", models.Product{Category: "Z", Brand: "W"}, 0},
		{"price at 30% boundary", models.Product{Category: "Z", Brand: "W", PriceCents: int64Ptr(13000)}, 2},
		{"price above 30%", models.Product{Category: "Z", Brand: "W", PriceCents: int64Ptr(13001)}, 0},
		{"candidate without price", models.Product{Category: "X", Brand: "W"}, 10},
		{"zero price does not count", models.Product{Category: "Z", Brand: "W", PriceCents: int64Ptr(0)}, 0},
		{"empty series does not match", models.Product{Category: "Z", Brand: "W", Series: strPtr("")}, 0},
		{"all signals", models.Product{Category: "X", Brand: "Y", Series: strPtr("S"), PriceCents: int64Ptr(7000)}, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelevanceScore(ref, tc.cand))
		})
	}

	refEmptySeries := models.Product{Series: strPtr("")}
	assert.Equal(t, 15, RelevanceScore(refEmptySeries, models.Product{Series: strPtr("")}), "category and brand match, empty series does not")
}

func TestRelatedProduct_JSON(t *testing.T) {
	out, err := json.Marshal(RelatedProduct{Product: models.Product{ID: "A", Name: "Split"}, RelevanceScore: 15})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, "A", raw["id"])
	assert.Equal(t, "Split", raw["name"])
	assert.Equal(t, 15.0, raw["relevanceScore"])
}
