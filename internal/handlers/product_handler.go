package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"industrial-catalog/internal/cache"
	"industrial-catalog/internal/catalog"
	"industrial-catalog/internal/models"
	"industrial-catalog/internal/repository"
)

// ProductCachePrefix agrupa todas las claves de caché del catálogo
const ProductCachePrefix = "products:"

const (
	keyAllProducts = ProductCachePrefix + "all"
	keyProductByID = ProductCachePrefix + "id:"
	keyByCategory  = ProductCachePrefix + "category:"
	keyByBrand     = ProductCachePrefix + "brand:"
	keySearch      = ProductCachePrefix + "search:"
)

type ProductHandler struct {
	store  repository.ProductStore
	loader *cache.Loader
}

func NewProductHandler(store repository.ProductStore, loader *cache.Loader) *ProductHandler {
	if loader == nil {
		loader = cache.NewLoader(nil, 0)
	}
	return &ProductHandler{store: store, loader: loader}
}

// GetProducts lista todo el catálogo en orden de inserción.
// Acepta filtros opcionales: category y brand (repetibles) y q.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.allProducts(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch products", err)
		return
	}

	filter := catalog.Filter{
		Categories: c.QueryArray("category"),
		Brands:     c.QueryArray("brand"),
		Query:      c.Query("q"),
	}
	if !filter.IsZero() {
		products = filter.Apply(products)
	}
	c.JSON(http.StatusOK, products)
}

// SearchProducts busca por nombre, marca, código o descripción. q es obligatorio y único.
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	q := c.QueryArray("q")
	if len(q) != 1 || q[0] == "" {
		respondError(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	products, err := cache.Fetch(c.Request.Context(), h.loader, keySearch+q[0], func(ctx context.Context) ([]models.Product, error) {
		return h.store.SearchProducts(ctx, q[0])
	})
	if err != nil {
		respondInternal(c, "Failed to search products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")
	products, err := cache.Fetch(c.Request.Context(), h.loader, keyByCategory+category, func(ctx context.Context) ([]models.Product, error) {
		return h.store.GetProductsByCategory(ctx, category)
	})
	if err != nil {
		respondInternal(c, "Failed to fetch products by category", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductsByBrand(c *gin.Context) {
	brand := c.Param("brand")
	products, err := cache.Fetch(c.Request.Context(), h.loader, keyByBrand+brand, func(ctx context.Context) ([]models.Product, error) {
		return h.store.GetProductsByBrand(ctx, brand)
	})
	if err != nil {
		respondInternal(c, "Failed to fetch products by brand", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct obtiene un producto por ID (con caché)
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.product(c.Request.Context(), c.Param("id"))
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondInternal(c, "Failed to fetch product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetRelatedProducts ordena el resto del catálogo por relevancia respecto al producto
func (h *ProductHandler) GetRelatedProducts(c *gin.Context) {
	limit := catalog.DefaultRelatedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(c, http.StatusBadRequest, "Query parameter 'limit' must be a positive integer")
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	product, err := h.product(ctx, c.Param("id"))
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondInternal(c, "Failed to fetch related products", err)
		return
	}

	pool, err := h.allProducts(ctx)
	if err != nil {
		respondInternal(c, "Failed to fetch related products", err)
		return
	}
	c.JSON(http.StatusOK, catalog.Related(product, pool, limit))
}

// GetCategories lista las categorías del catálogo en orden de aparición
func (h *ProductHandler) GetCategories(c *gin.Context) {
	products, err := h.allProducts(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, catalog.Categories(products))
}

// GetBrands lista las marcas del catálogo en orden de aparición
func (h *ProductHandler) GetBrands(c *gin.Context) {
	products, err := h.allProducts(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch brands", err)
		return
	}
	c.JSON(http.StatusOK, catalog.Brands(products))
}

func (h *ProductHandler) allProducts(ctx context.Context) ([]models.Product, error) {
	return cache.Fetch(ctx, h.loader, keyAllProducts, h.store.GetProducts)
}

func (h *ProductHandler) product(ctx context.Context, id string) (models.Product, error) {
	return cache.Fetch(ctx, h.loader, keyProductByID+id, func(ctx context.Context) (models.Product, error) {
		p, err := h.store.GetProduct(ctx, id)
		if err != nil {
			return models.Product{}, err
		}
		return *p, nil
	})
}
