package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"industrial-catalog/internal/models"
)

func productDoc(id, name string, seq int64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "category", Value: "Climatización"},
		{Key: "brand", Value: "ANWO"},
		{Key: "specifications", Value: bson.D{
			{Key: "btu", Value: int32(9000)},
			{Key: "voltaje", Value: "220V"},
			{Key: "wifi", Value: true},
		}},
		{Key: "availability", Value: "available"},
		{Key: "price_cents", Value: int64(80470)},
		{Key: "currency", Value: "CLP"},
		{Key: "pricing_model", Value: "fixed"},
		{Key: "min_order_quantity", Value: int32(1)},
		{Key: "seq", Value: seq},
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get product", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch, productDoc("p-1", "Split 9000", 1)))

		p, err := store.GetProduct(context.Background(), "p-1")
		require.NoError(mt, err)
		assert.Equal(mt, "Split 9000", p.Name)
		assert.Equal(mt, 1, p.MinOrderQuantity)
		require.NotNil(mt, p.PriceCents)
		assert.Equal(mt, int64(80470), *p.PriceCents)
		assert.Equal(mt, models.SpecNumber, p.Specifications["btu"].Kind())
		assert.Equal(mt, 9000.0, p.Specifications["btu"].Interface())
		assert.Equal(mt, "220V", p.Specifications["voltaje"].String())
		assert.Equal(mt, models.SpecBool, p.Specifications["wifi"].Kind())
		assert.Nil(mt, p.Description)
	})

	mt.Run("get product not found", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch))

		_, err := store.GetProduct(context.Background(), "nope")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list products", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch,
			productDoc("p-1", "Split 9000", 1),
			productDoc("p-2", "Split 12000", 2),
		))

		products, err := store.GetProducts(context.Background())
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "p-1", products[0].ID)
		assert.Equal(mt, "p-2", products[1].ID)
	})

	mt.Run("search without matches", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch))

		products, err := store.SearchProducts(context.Background(), "zzz")
		require.NoError(mt, err)
		assert.NotNil(mt, products)
		assert.Empty(mt, products)
	})

	mt.Run("create product", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p, err := store.CreateProduct(context.Background(), models.ProductInput{
			Name: "Rack 42U", Category: "Telecomunicaciones", Brand: "3Z",
		})
		require.NoError(mt, err)
		assert.NotEmpty(mt, p.ID)
		assert.Equal(mt, "quote", p.PricingModel)
	})

	mt.Run("create quote", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		q, err := store.CreateQuote(context.Background(), models.QuoteInput{
			Name: "María", Email: "maria@example.cl", Phone: "123",
			Products: []models.QuoteItem{{ProductID: "p-1", Quantity: 2}},
		})
		require.NoError(mt, err)
		assert.Equal(mt, "pending", q.Status)
		assert.False(mt, q.CreatedAt.IsZero())
	})

	mt.Run("list quotes", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		created := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		quoteDoc := func(id string, seq int64) bson.D {
			return bson.D{
				{Key: "_id", Value: id},
				{Key: "name", Value: "María"},
				{Key: "email", Value: "maria@example.cl"},
				{Key: "phone", Value: "123"},
				{Key: "products", Value: bson.A{bson.D{{Key: "product_id", Value: "p-1"}, {Key: "quantity", Value: int32(2)}}}},
				{Key: "status", Value: "pending"},
				{Key: "created_at", Value: created},
				{Key: "seq", Value: seq},
			}
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.quotes", mtest.FirstBatch,
			quoteDoc("q-1", 1), quoteDoc("q-2", 2),
		))

		quotes, err := store.GetQuotes(context.Background())
		require.NoError(mt, err)
		require.Len(mt, quotes, 2)
		assert.Equal(mt, "q-1", quotes[0].ID)
		assert.Equal(mt, "q-2", quotes[1].ID)
		assert.Equal(mt, 2, quotes[0].Products[0].Quantity)
		assert.True(mt, created.Equal(quotes[0].CreatedAt))
	})

	mt.Run("list contacts empty", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.contacts", mtest.FirstBatch))

		contacts, err := store.GetContacts(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, contacts)
		assert.Empty(mt, contacts)
	})

	mt.Run("duplicate username", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := store.CreateUser(context.Background(), models.UserInput{Username: "admin", Password: "x"})
		assert.ErrorIs(mt, err, ErrDuplicateUsername)
	})

	mt.Run("count products", func(mt *mtest.T) {
		store := NewMongoStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.products", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(38)}},
		))

		total, err := store.CountProducts(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(38), total)
	})
}

func TestMongoStore_SeqIsStrictlyIncreasing(t *testing.T) {
	s := &MongoStore{}
	frozen := time.Unix(0, 1000)
	s.now = func() time.Time { return frozen }

	a, b, c := s.nextSeq(), s.nextSeq(), s.nextSeq()
	assert.Equal(t, int64(1000), a)
	assert.Equal(t, int64(1001), b)
	assert.Equal(t, int64(1002), c)

	// el reloj retrocede: la secuencia no
	frozen = time.Unix(0, 10)
	assert.Equal(t, int64(1003), s.nextSeq())
}
