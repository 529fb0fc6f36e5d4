package repository

import (
	"context"

	"github.com/pkg/errors"

	"industrial-catalog/internal/models"
)

//go:generate mockgen -destination=mocks/store_mock.go -package=mocks industrial-catalog/internal/repository Store

var (
	// ErrNotFound se devuelve cuando una búsqueda por ID (o username) no encuentra registro
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername se devuelve al crear un usuario con un username existente
	ErrDuplicateUsername = errors.New("username already exists")
)

// ProductStore guarda el catálogo. Los listados respetan el orden de inserción.
type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetProductsByBrand(ctx context.Context, brand string) ([]models.Product, error)
}

type QuoteStore interface {
	CreateQuote(ctx context.Context, in models.QuoteInput) (*models.Quote, error)
	GetQuotes(ctx context.Context) ([]models.Quote, error)
}

type ContactStore interface {
	CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error)
	GetContacts(ctx context.Context) ([]models.Contact, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
}

// Store es el gateway de almacenamiento completo. Cualquier backend
// (memoria, MongoDB, Postgres/SQLite) debe respetar los mismos valores por defecto
// y la generación de IDs.
type Store interface {
	ProductStore
	QuoteStore
	ContactStore
	UserStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// IsNotFound indica si err (o alguno de sus envoltorios) es ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
