package models

import "strings"

const (
	DefaultAvailability     = "available"
	DefaultCurrency         = "CLP"
	DefaultMinOrderQuantity = 1

	PricingModelQuote = "quote"
	PricingModelFixed = "fixed"
)

// Product representa un producto del catálogo
type Product struct {
	ID                string         `json:"id" bson:"_id"`
	Name              string         `json:"name" bson:"name"`
	Category          string         `json:"category" bson:"category"`
	Brand             string         `json:"brand" bson:"brand"`
	Description       *string        `json:"description" bson:"description,omitempty"`
	ImageURL          *string        `json:"imageUrl" bson:"image_url,omitempty"`
	Code              *string        `json:"code" bson:"code,omitempty"`
	Specifications    Specifications `json:"specifications" bson:"specifications"`
	Dimensions        *Dimensions    `json:"dimensions" bson:"dimensions,omitempty"`
	Materials         []string       `json:"materials" bson:"materials,omitempty"`
	Certifications    []string       `json:"certifications" bson:"certifications,omitempty"`
	Applications      []string       `json:"applications" bson:"applications,omitempty"`
	Features          []string       `json:"features" bson:"features,omitempty"`
	Warranty          *string        `json:"warranty" bson:"warranty,omitempty"`
	InstallationGuide *string        `json:"installationGuide" bson:"installation_guide,omitempty"`
	DataSheetURL      *string        `json:"dataSheetUrl" bson:"data_sheet_url,omitempty"`
	Model             *string        `json:"model" bson:"model,omitempty"`
	Series            *string        `json:"series" bson:"series,omitempty"`
	Availability      string         `json:"availability" bson:"availability"`
	PriceCents        *int64         `json:"priceCents" bson:"price_cents,omitempty"`
	Currency          string         `json:"currency" bson:"currency"`
	PricingModel      string         `json:"pricingModel" bson:"pricing_model"`
	MinOrderQuantity  int            `json:"minOrderQuantity" bson:"min_order_quantity"`
}

// ProductInput es la forma validable para crear un producto
type ProductInput struct {
	Name              string         `json:"name" yaml:"name" binding:"required"`
	Category          string         `json:"category" yaml:"category" binding:"required"`
	Brand             string         `json:"brand" yaml:"brand" binding:"required"`
	Description       *string        `json:"description" yaml:"description"`
	ImageURL          *string        `json:"imageUrl" yaml:"imageUrl"`
	Code              *string        `json:"code" yaml:"code"`
	Specifications    Specifications `json:"specifications" yaml:"specifications"`
	Dimensions        *Dimensions    `json:"dimensions" yaml:"dimensions"`
	Materials         []string       `json:"materials" yaml:"materials"`
	Certifications    []string       `json:"certifications" yaml:"certifications"`
	Applications      []string       `json:"applications" yaml:"applications"`
	Features          []string       `json:"features" yaml:"features"`
	Warranty          *string        `json:"warranty" yaml:"warranty"`
	InstallationGuide *string        `json:"installationGuide" yaml:"installationGuide"`
	DataSheetURL      *string        `json:"dataSheetUrl" yaml:"dataSheetUrl"`
	Model             *string        `json:"model" yaml:"model"`
	Series            *string        `json:"series" yaml:"series"`
	Availability      *string        `json:"availability" yaml:"availability"`
	PriceCents        *int64         `json:"priceCents" yaml:"priceCents" binding:"omitempty,gte=0"`
	Currency          *string        `json:"currency" yaml:"currency" binding:"omitempty,len=3"`
	PricingModel      *string        `json:"pricingModel" yaml:"pricingModel" binding:"omitempty,oneof=quote fixed"`
	MinOrderQuantity  *int           `json:"minOrderQuantity" yaml:"minOrderQuantity" binding:"omitempty,gte=1"`
}

// NewProduct arma el registro completo a partir del input, llenando los valores por defecto.
// Todos los backends de almacenamiento pasan por aquí.
func NewProduct(id string, in ProductInput) Product {
	p := Product{
		ID:                id,
		Name:              in.Name,
		Category:          in.Category,
		Brand:             in.Brand,
		Description:       cloneString(in.Description),
		ImageURL:          cloneString(in.ImageURL),
		Code:              cloneString(in.Code),
		Specifications:    in.Specifications.Clone(),
		Materials:         cloneStrings(in.Materials),
		Certifications:    cloneStrings(in.Certifications),
		Applications:      cloneStrings(in.Applications),
		Features:          cloneStrings(in.Features),
		Warranty:          cloneString(in.Warranty),
		InstallationGuide: cloneString(in.InstallationGuide),
		DataSheetURL:      cloneString(in.DataSheetURL),
		Model:             cloneString(in.Model),
		Series:            cloneString(in.Series),
		Availability:      stringOr(in.Availability, DefaultAvailability),
		Currency:          stringOr(in.Currency, DefaultCurrency),
		PricingModel:      stringOr(in.PricingModel, PricingModelQuote),
		MinOrderQuantity:  DefaultMinOrderQuantity,
	}
	if p.Specifications == nil {
		p.Specifications = Specifications{}
	}
	if in.Dimensions != nil {
		d := in.Dimensions.withDefaults()
		p.Dimensions = &d
	}
	if in.PriceCents != nil {
		price := *in.PriceCents
		p.PriceCents = &price
	}
	if in.MinOrderQuantity != nil {
		p.MinOrderQuantity = *in.MinOrderQuantity
	}
	return p
}

// MatchesQuery indica si q aparece (sin distinguir mayúsculas) en nombre, marca, código o descripción.
// Los campos nulos se ignoran.
func (p Product) MatchesQuery(q string) bool {
	needle := strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Brand), needle) {
		return true
	}
	for _, field := range []*string{p.Code, p.Description} {
		if field != nil && strings.Contains(strings.ToLower(*field), needle) {
			return true
		}
	}
	return false
}

// HasPrice indica si el producto tiene precio publicado (nil = solo cotización)
func (p Product) HasPrice() bool {
	return p.PriceCents != nil
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
