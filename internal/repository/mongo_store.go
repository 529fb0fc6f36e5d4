package repository

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"industrial-catalog/internal/models"
)

const (
	productsCollection = "products"
	quotesCollection   = "quotes"
	contactsCollection = "contacts"
	usersCollection    = "users"
)

// Los documentos agregan la secuencia de inserción para ordenar los listados
type productDocument struct {
	models.Product `bson:",inline"`
	Seq            int64 `bson:"seq"`
}

type quoteDocument struct {
	models.Quote `bson:",inline"`
	Seq          int64 `bson:"seq"`
}

type contactDocument struct {
	models.Contact `bson:",inline"`
	Seq            int64 `bson:"seq"`
}

var insertionOrder = bson.D{{Key: "seq", Value: 1}, {Key: "_id", Value: 1}}

type MongoStore struct {
	client   *mongo.Client
	products *mongo.Collection
	quotes   *mongo.Collection
	contacts *mongo.Collection
	users    *mongo.Collection
	now      func() time.Time

	seqMu   sync.Mutex
	lastSeq int64
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore usa las colecciones products, quotes, contacts y users de db.
// El cliente es opcional: si no es nil, Close lo desconecta.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{
		client:   client,
		products: db.Collection(productsCollection),
		quotes:   db.Collection(quotesCollection),
		contacts: db.Collection(contactsCollection),
		users:    db.Collection(usersCollection),
		now:      time.Now,
	}
}

// EnsureIndexes crea los índices usados por los listados y el login
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
	})
	if err != nil {
		return errors.Wrap(err, "creating product indexes")
	}
	for _, coll := range []*mongo.Collection{s.quotes, s.contacts} {
		if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "seq", Value: 1}}}); err != nil {
			return errors.Wrapf(err, "creating %s indexes", coll.Name())
		}
	}
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "creating user indexes")
}

// nextSeq usa el reloj en nanosegundos y nunca repite ni retrocede dentro del proceso
func (s *MongoStore) nextSeq() int64 {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()

	seq := s.now().UnixNano()
	if seq <= s.lastSeq {
		seq = s.lastSeq + 1
	}
	s.lastSeq = seq
	return seq
}

// --- Productos ---

// GetProduct obtiene un producto por ID
func (s *MongoStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc productDocument
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "finding product")
	}
	return &doc.Product, nil
}

func (s *MongoStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.findProducts(ctx, bson.M{})
}

func (s *MongoStore) CountProducts(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	total, err := s.products.CountDocuments(ctx, bson.M{})
	return total, errors.Wrap(err, "counting products")
}

// CreateProduct crea un nuevo producto con ID UUID
func (s *MongoStore) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := productDocument{
		Product: models.NewProduct(uuid.NewString(), in),
		Seq:     s.nextSeq(),
	}
	if _, err := s.products.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "inserting product")
	}
	return &doc.Product, nil
}

// SearchProducts busca q sin distinguir mayúsculas en nombre, marca, código y descripción
func (s *MongoStore) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"brand": pattern},
		bson.M{"code": pattern},
		bson.M{"description": pattern},
	}}
	return s.findProducts(ctx, filter)
}

func (s *MongoStore) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.findProducts(ctx, bson.M{"category": category})
}

func (s *MongoStore) GetProductsByBrand(ctx context.Context, brand string) ([]models.Product, error) {
	return s.findProducts(ctx, bson.M{"brand": brand})
}

func (s *MongoStore) findProducts(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(insertionOrder)
	cursor, err := s.products.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "finding products")
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding products")
	}

	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		if doc.Specifications == nil {
			doc.Specifications = models.Specifications{}
		}
		products = append(products, doc.Product)
	}
	return products, nil
}

// --- Cotizaciones ---

func (s *MongoStore) CreateQuote(ctx context.Context, in models.QuoteInput) (*models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Mongo guarda milisegundos; se trunca para devolver lo mismo que se lee después
	doc := quoteDocument{
		Quote: models.NewQuote(uuid.NewString(), in, s.now().UTC().Truncate(time.Millisecond)),
		Seq:   s.nextSeq(),
	}
	if _, err := s.quotes.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "inserting quote")
	}
	return &doc.Quote, nil
}

func (s *MongoStore) GetQuotes(ctx context.Context) ([]models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.quotes.Find(ctx, bson.M{}, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, errors.Wrap(err, "finding quotes")
	}
	defer cursor.Close(ctx)

	var docs []quoteDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding quotes")
	}
	quotes := make([]models.Quote, 0, len(docs))
	for _, doc := range docs {
		quotes = append(quotes, doc.Quote)
	}
	return quotes, nil
}

// --- Contactos ---

func (s *MongoStore) CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := contactDocument{
		Contact: models.NewContact(uuid.NewString(), in, s.now().UTC().Truncate(time.Millisecond)),
		Seq:     s.nextSeq(),
	}
	if _, err := s.contacts.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "inserting contact")
	}
	return &doc.Contact, nil
}

func (s *MongoStore) GetContacts(ctx context.Context) ([]models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.contacts.Find(ctx, bson.M{}, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, errors.Wrap(err, "finding contacts")
	}
	defer cursor.Close(ctx)

	var docs []contactDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding contacts")
	}
	contacts := make([]models.Contact, 0, len(docs))
	for _, doc := range docs {
		contacts = append(contacts, doc.Contact)
	}
	return contacts, nil
}

// --- Usuarios ---

func (s *MongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *MongoStore) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	user, err := models.NewUser(uuid.NewString(), in)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, errors.Wrap(err, "inserting user")
	}
	return &user, nil
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "finding user")
	}
	return &user, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
