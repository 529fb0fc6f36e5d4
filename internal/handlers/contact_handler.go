package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"industrial-catalog/internal/models"
	"industrial-catalog/internal/repository"
)

type ContactHandler struct {
	store  repository.ContactStore
	events EventPublisher
}

func NewContactHandler(store repository.ContactStore, events EventPublisher) *ContactHandler {
	if events == nil {
		events = noopPublisher{}
	}
	return &ContactHandler{store: store, events: events}
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var in models.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalid(c, "Invalid contact data", err)
		return
	}

	contact, err := h.store.CreateContact(c.Request.Context(), in)
	if err != nil {
		respondInternal(c, "Failed to create contact message", err)
		return
	}

	h.events.PublishContactCreated(*contact)
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	contacts, err := h.store.GetContacts(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch contacts", err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}
