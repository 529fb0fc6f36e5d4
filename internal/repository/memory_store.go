package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"industrial-catalog/internal/models"
)

// MemoryStore es el backend de referencia: volátil, en memoria, se pierde al reiniciar.
// Los slices conservan el orden de inserción y los índices dan búsqueda por ID.
type MemoryStore struct {
	mu sync.RWMutex

	products     []models.Product
	productIndex map[string]int
	quotes       []models.Quote
	contacts     []models.Contact
	users        []models.User
	userIndex    map[string]int

	now func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:     []models.Product{},
		productIndex: make(map[string]int),
		quotes:       []models.Quote{},
		contacts:     []models.Contact{},
		users:        []models.User{},
		userIndex:    make(map[string]int),
		now:          time.Now,
	}
}

// --- Productos ---

func (s *MemoryStore) GetProduct(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.productIndex[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := s.products[i]
	return &p, nil
}

func (s *MemoryStore) GetProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products, nil
}

func (s *MemoryStore) CountProducts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, in models.ProductInput) (*models.Product, error) {
	product := models.NewProduct(uuid.NewString(), in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.productIndex[product.ID] = len(s.products)
	s.products = append(s.products, product)
	return &product, nil
}

func (s *MemoryStore) SearchProducts(_ context.Context, query string) ([]models.Product, error) {
	return s.filterProducts(func(p models.Product) bool { return p.MatchesQuery(query) }), nil
}

func (s *MemoryStore) GetProductsByCategory(_ context.Context, category string) ([]models.Product, error) {
	return s.filterProducts(func(p models.Product) bool { return p.Category == category }), nil
}

func (s *MemoryStore) GetProductsByBrand(_ context.Context, brand string) ([]models.Product, error) {
	return s.filterProducts(func(p models.Product) bool { return p.Brand == brand }), nil
}

func (s *MemoryStore) filterProducts(keep func(models.Product) bool) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0)
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// --- Cotizaciones ---

func (s *MemoryStore) CreateQuote(_ context.Context, in models.QuoteInput) (*models.Quote, error) {
	quote := models.NewQuote(uuid.NewString(), in, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = append(s.quotes, quote)
	return &quote, nil
}

func (s *MemoryStore) GetQuotes(_ context.Context) ([]models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quotes := make([]models.Quote, len(s.quotes))
	copy(quotes, s.quotes)
	return quotes, nil
}

// --- Contactos ---

func (s *MemoryStore) CreateContact(_ context.Context, in models.ContactInput) (*models.Contact, error) {
	contact := models.NewContact(uuid.NewString(), in, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, contact)
	return &contact, nil
}

func (s *MemoryStore) GetContacts(_ context.Context) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contacts := make([]models.Contact, len(s.contacts))
	copy(contacts, s.contacts)
	return contacts, nil
}

// --- Usuarios ---

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.userIndex[username]
	if !ok {
		return nil, ErrNotFound
	}
	user := s.users[i]
	return &user, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, in models.UserInput) (*models.User, error) {
	user, err := models.NewUser(uuid.NewString(), in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.userIndex[user.Username]; exists {
		return nil, ErrDuplicateUsername
	}
	s.userIndex[user.Username] = len(s.users)
	s.users = append(s.users, user)
	return &user, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }
