package seed

import (
	"bytes"
	"context"
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"industrial-catalog/internal/models"
	"industrial-catalog/internal/repository"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default devuelve el catálogo de productos embebido en el binario
func Default() ([]models.ProductInput, error) {
	return Load(defaultCatalog)
}

// LoadFile lee un catálogo YAML desde disco
func LoadFile(path string) ([]models.ProductInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading seed file %s", path)
	}
	return Load(data)
}

// Load parsea y valida una lista YAML de productos. Los campos desconocidos son un error.
func Load(data []byte) ([]models.ProductInput, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var products []models.ProductInput
	if err := dec.Decode(&products); err != nil {
		return nil, errors.Wrap(err, "parsing seed catalog")
	}
	for i, p := range products {
		if err := models.Validate(p); err != nil {
			return nil, errors.Wrapf(err, "seed product #%d (%s)", i+1, p.Name)
		}
	}
	return products, nil
}

// Catalog inserta los productos en orden solo si el store no tiene productos.
// Devuelve cuántos se insertaron.
func Catalog(ctx context.Context, store repository.ProductStore, products []models.ProductInput) (int, error) {
	total, err := store.CountProducts(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "counting products before seeding")
	}
	if total > 0 {
		zap.L().Info("catalog already seeded", zap.Int64("products", total))
		return 0, nil
	}

	for i, in := range products {
		p, err := store.CreateProduct(ctx, in)
		if err != nil {
			return i, errors.Wrapf(err, "seeding product %q", in.Name)
		}
		zap.L().Debug("seeded product", zap.String("id", p.ID), zap.String("name", p.Name))
	}
	zap.L().Info("initialized product catalog", zap.Int("products", len(products)))
	return len(products), nil
}
