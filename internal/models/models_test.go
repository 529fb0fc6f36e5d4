package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validQuote() QuoteInput {
	return QuoteInput{
		Name:     "María Soto",
		Email:    "maria@example.cl",
		Phone:    "+56 9 1234 5678",
		Products: []QuoteItem{{ProductID: "p-1", Quantity: 1}},
	}
}

func TestNewProduct_Defaults(t *testing.T) {
	p := NewProduct("id-1", ProductInput{Name: "Split 9000", Category: "Climatización", Brand: "ANWO"})

	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, "CLP", p.Currency)
	assert.Equal(t, "quote", p.PricingModel)
	assert.Equal(t, 1, p.MinOrderQuantity)
	assert.Equal(t, "available", p.Availability)
	assert.Nil(t, p.PriceCents)
	assert.False(t, p.HasPrice())
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Dimensions)
	assert.NotNil(t, p.Specifications)
	assert.Empty(t, p.Specifications)
}

func TestNewProduct_KeepsExplicitValues(t *testing.T) {
	price := int64(80470)
	moq := 3
	in := ProductInput{
		Name:             "Split 12000",
		Category:         "Climatización",
		Brand:            "Fresh Air",
		PriceCents:       &price,
		Currency:         strPtr("USD"),
		PricingModel:     strPtr("fixed"),
		MinOrderQuantity: &moq,
		Availability:     strPtr("on-order"),
		Dimensions:       &Dimensions{Width: 80, Height: 30},
		Materials:        []string{"aluminio"},
	}
	p := NewProduct("id-2", in)

	require.NotNil(t, p.PriceCents)
	assert.True(t, p.HasPrice())
	assert.Equal(t, int64(80470), *p.PriceCents)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "fixed", p.PricingModel)
	assert.Equal(t, 3, p.MinOrderQuantity)
	assert.Equal(t, "on-order", p.Availability)
	require.NotNil(t, p.Dimensions)
	assert.Equal(t, "cm", p.Dimensions.Unit)
	assert.Equal(t, "kg", p.Dimensions.WeightUnit)

	// el registro no comparte memoria con el input
	price = 1
	in.Materials[0] = "cobre"
	assert.Equal(t, int64(80470), *p.PriceCents)
	assert.Equal(t, []string{"aluminio"}, p.Materials)
}

func TestProduct_MatchesQuery(t *testing.T) {
	p := Product{
		Name:        "Cámara Bullet 4MP",
		Category:    "Telecomunicaciones",
		Brand:       "TechCam",
		Code:        strPtr("TC-C34GN"),
		Description: nil,
	}

	assert.True(t, p.MatchesQuery("cámara"))
	assert.True(t, p.MatchesQuery("TECHCAM"))
	assert.True(t, p.MatchesQuery("c34g"))
	assert.False(t, p.MatchesQuery("telecomunicaciones"), "category is not a searchable field")
	assert.False(t, p.MatchesQuery("inverter"))
}

func TestSpecValue_JSON(t *testing.T) {
	var specs Specifications
	err := json.Unmarshal([]byte(`{"voltaje":"220V","btu":9000,"wifi":true}`), &specs)
	require.NoError(t, err)

	assert.Equal(t, SpecString, specs["voltaje"].Kind())
	assert.Equal(t, SpecNumber, specs["btu"].Kind())
	assert.Equal(t, SpecBool, specs["wifi"].Kind())
	assert.Equal(t, 9000.0, specs["btu"].Interface())
	assert.Equal(t, "9000", specs["btu"].String())

	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"voltaje":"220V","btu":9000,"wifi":true}`, string(out))
}

func TestSpecValue_RejectsNonScalars(t *testing.T) {
	for _, body := range []string{`{"a":{"b":1}}`, `{"a":[1,2]}`, `{"a":null}`} {
		var specs Specifications
		assert.Error(t, json.Unmarshal([]byte(body), &specs), body)
	}
}

func TestValidate_QuoteInput(t *testing.T) {
	t.Run("valid quote", func(t *testing.T) {
		assert.NoError(t, Validate(validQuote()))
	})

	t.Run("empty products", func(t *testing.T) {
		in := validQuote()
		in.Products = []QuoteItem{}
		errs := ValidationErrors(Validate(in))
		require.Len(t, errs, 1)
		assert.Equal(t, "products", errs[0].Field)
		assert.Equal(t, "min", errs[0].Rule)
	})

	t.Run("zero quantity", func(t *testing.T) {
		in := validQuote()
		in.Products[0].Quantity = 0
		errs := ValidationErrors(Validate(in))
		require.Len(t, errs, 1)
		assert.Equal(t, "products[0].quantity", errs[0].Field)
		assert.Contains(t, errs[0].Message, "must be at least 1")
	})

	t.Run("missing contact fields", func(t *testing.T) {
		in := validQuote()
		in.Name, in.Phone = "", ""
		errs := ValidationErrors(Validate(in))
		fields := []string{}
		for _, e := range errs {
			fields = append(fields, e.Field)
		}
		assert.ElementsMatch(t, []string{"name", "phone"}, fields)
	})

	t.Run("product id is a free reference", func(t *testing.T) {
		in := validQuote()
		in.Products[0].ProductID = ""
		assert.NoError(t, Validate(in))
	})

	t.Run("non-positive unit price", func(t *testing.T) {
		in := validQuote()
		zero := int64(0)
		in.Products[0].UnitPriceCents = &zero
		errs := ValidationErrors(Validate(in))
		require.Len(t, errs, 1)
		assert.Equal(t, "gt", errs[0].Rule)
	})
}

func TestValidate_ContactInput(t *testing.T) {
	err := Validate(ContactInput{Name: "Juan", Email: "juan@example.cl", Subject: "Consulta"})
	errs := ValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "message", errs[0].Field)
	assert.Equal(t, "required", errs[0].Rule)
}

func TestValidate_ProductDimensions(t *testing.T) {
	in := ProductInput{
		Name:       "Rack",
		Category:   "Telecomunicaciones",
		Brand:      "3Z",
		Dimensions: &Dimensions{Width: 60, Height: 0, Unit: "ft"},
	}
	errs := ValidationErrors(Validate(in))
	rules := map[string]string{}
	for _, e := range errs {
		rules[e.Field] = e.Rule
	}
	assert.Equal(t, "gt", rules["dimensions.height"])
	assert.Equal(t, "oneof", rules["dimensions.unit"])
}

func TestValidationErrors_NotAValidationError(t *testing.T) {
	assert.Nil(t, ValidationErrors(assert.AnError))
	assert.Nil(t, ValidationErrors(nil))
}

func TestNewQuote(t *testing.T) {
	in := validQuote()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	q := NewQuote("q-1", in, now)

	assert.Equal(t, "pending", q.Status)
	assert.Equal(t, now, q.CreatedAt)
	assert.Nil(t, q.Company)
	assert.Equal(t, 1, q.TotalQuantity())

	in.Products[0].Quantity = 99
	assert.Equal(t, 1, q.Products[0].Quantity)
}

func TestQuote_JSONShape(t *testing.T) {
	q := NewQuote("q-1", validQuote(), time.Now())
	out, err := json.Marshal(q)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Contains(t, raw, "company")
	assert.Nil(t, raw["company"])
	assert.Contains(t, raw, "createdAt")

	item := raw["products"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, item, "unitPriceCents")
	assert.NotContains(t, item, "notes")
}

func TestNewUser_HashesPassword(t *testing.T) {
	u, err := NewUser("u-1", UserInput{Username: "admin", Password: "s3creto"})
	require.NoError(t, err)

	assert.NotEqual(t, "s3creto", u.Password)
	assert.True(t, u.CheckPassword("s3creto"))
	assert.False(t, u.CheckPassword("otro"))

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "password")
}
