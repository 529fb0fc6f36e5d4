package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"

	"industrial-catalog/internal/models"
	"industrial-catalog/internal/repository"
)

// EventPublisher recibe los registros recién creados (notificaciones por correo)
type EventPublisher interface {
	PublishQuoteCreated(q models.Quote)
	PublishContactCreated(c models.Contact)
}

type noopPublisher struct{}

func (noopPublisher) PublishQuoteCreated(models.Quote) {}
func (noopPublisher) PublishContactCreated(models.Contact) {}

type QuoteHandler struct {
	store  repository.QuoteStore
	events EventPublisher
}

func NewQuoteHandler(store repository.QuoteStore, events EventPublisher) *QuoteHandler {
	if events == nil {
		events = noopPublisher{}
	}
	return &QuoteHandler{store: store, events: events}
}

// CreateQuote registra una solicitud de cotización con status "pending"
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var in models.QuoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalid(c, "Invalid quote data", err)
		return
	}

	quote, err := h.store.CreateQuote(c.Request.Context(), in)
	if err != nil {
		respondInternal(c, "Failed to create quote", err)
		return
	}

	h.events.PublishQuoteCreated(*quote)
	c.JSON(http.StatusCreated, quote)
}

func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	quotes, err := h.store.GetQuotes(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch quotes", err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// quoteLine es una fila del CSV: un producto de una cotización
type quoteLine struct {
	QuoteID         string `csv:"quote_id"`
	CreatedAt       string `csv:"created_at"`
	Status          string `csv:"status"`
	Name            string `csv:"name"`
	Email           string `csv:"email"`
	Phone           string `csv:"phone"`
	Company         string `csv:"company"`
	ProductID       string `csv:"product_id"`
	Quantity        int    `csv:"quantity"`
	UnitPriceCents  string `csv:"unit_price_cents"`
	Notes           string `csv:"notes"`
	CustomerMessage string `csv:"customer_message"`
}

func quoteLines(quotes []models.Quote) []quoteLine {
	lines := make([]quoteLine, 0, len(quotes))
	for _, q := range quotes {
		for _, item := range q.Products {
			line := quoteLine{
				QuoteID:         q.ID,
				CreatedAt:       q.CreatedAt.UTC().Format(time.RFC3339),
				Status:          q.Status,
				Name:            q.Name,
				Email:           q.Email,
				Phone:           q.Phone,
				Company:         deref(q.Company),
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				Notes:           deref(item.Notes),
				CustomerMessage: deref(q.CustomerMessage),
			}
			if item.UnitPriceCents != nil {
				line.UnitPriceCents = strconv.FormatInt(*item.UnitPriceCents, 10)
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// ExportQuotes descarga las cotizaciones como CSV, una fila por producto cotizado
func (h *QuoteHandler) ExportQuotes(c *gin.Context) {
	quotes, err := h.store.GetQuotes(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to export quotes", err)
		return
	}

	lines := quoteLines(quotes)
	data, err := gocsv.MarshalBytes(&lines)
	if err != nil {
		respondInternal(c, "Failed to export quotes", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="quotes.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
