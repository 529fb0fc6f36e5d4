package models

import "time"

const QuoteStatusPending = "pending"

// QuoteItem es un producto dentro de una solicitud de cotización.
// ProductID es una referencia débil: no se valida su existencia.
type QuoteItem struct {
	ProductID      string  `json:"productId" bson:"product_id"`
	Quantity       int     `json:"quantity" bson:"quantity" binding:"gte=1"`
	UnitPriceCents *int64  `json:"unitPriceCents,omitempty" bson:"unit_price_cents,omitempty" binding:"omitempty,gt=0"`
	Notes          *string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Quote representa una solicitud de cotización de un cliente
type Quote struct {
	ID              string      `json:"id" bson:"_id"`
	Name            string      `json:"name" bson:"name"`
	Email           string      `json:"email" bson:"email"`
	Company         *string     `json:"company" bson:"company,omitempty"`
	Phone           string      `json:"phone" bson:"phone"`
	Products        []QuoteItem `json:"products" bson:"products"`
	CustomerMessage *string     `json:"customerMessage" bson:"customer_message,omitempty"`
	Status          string      `json:"status" bson:"status"`
	CreatedAt       time.Time   `json:"createdAt" bson:"created_at"`
}

// QuoteInput es el cuerpo aceptado por POST /api/quotes.
// No tiene campo status: cualquier status enviado se ignora.
type QuoteInput struct {
	Name            string      `json:"name" binding:"required"`
	Email           string      `json:"email" binding:"required"`
	Company         *string     `json:"company"`
	Phone           string      `json:"phone" binding:"required"`
	Products        []QuoteItem `json:"products" binding:"required,min=1,dive"`
	CustomerMessage *string     `json:"customerMessage"`
}

// NewQuote arma la cotización con status "pending" y fecha de creación
func NewQuote(id string, in QuoteInput, now time.Time) Quote {
	items := make([]QuoteItem, len(in.Products))
	for i, item := range in.Products {
		items[i] = item.clone()
	}
	return Quote{
		ID:              id,
		Name:            in.Name,
		Email:           in.Email,
		Company:         cloneString(in.Company),
		Phone:           in.Phone,
		Products:        items,
		CustomerMessage: cloneString(in.CustomerMessage),
		Status:          QuoteStatusPending,
		CreatedAt:       now,
	}
}

// TotalQuantity suma las unidades pedidas en la cotización
func (q Quote) TotalQuantity() int {
	total := 0
	for _, item := range q.Products {
		total += item.Quantity
	}
	return total
}

func (i QuoteItem) clone() QuoteItem {
	out := QuoteItem{ProductID: i.ProductID, Quantity: i.Quantity, Notes: cloneString(i.Notes)}
	if i.UnitPriceCents != nil {
		price := *i.UnitPriceCents
		out.UnitPriceCents = &price
	}
	return out
}
