package notify

import (
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"

	"industrial-catalog/internal/models"
)

const (
	TopicQuoteCreated   = "quote:created"
	TopicContactCreated = "contact:created"
)

// Bus publica los eventos de dominio después de cada inserción exitosa
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

func (b *Bus) PublishQuoteCreated(q models.Quote) {
	b.bus.Publish(TopicQuoteCreated, q)
}

func (b *Bus) PublishContactCreated(c models.Contact) {
	b.bus.Publish(TopicContactCreated, c)
}

// Subscribe registra el notificador en ambos tópicos. Los envíos son asíncronos
// y en serie (transaccionales) para no abrir varias conexiones SMTP a la vez.
func (b *Bus) Subscribe(n *Notifier) error {
	if err := b.bus.SubscribeAsync(TopicQuoteCreated, n.QuoteCreated, true); err != nil {
		return errors.Wrap(err, "subscribing to "+TopicQuoteCreated)
	}
	if err := b.bus.SubscribeAsync(TopicContactCreated, n.ContactCreated, true); err != nil {
		return errors.Wrap(err, "subscribing to "+TopicContactCreated)
	}
	return nil
}

// Wait bloquea hasta que terminen los handlers asíncronos en curso
func (b *Bus) Wait() {
	b.bus.WaitAsync()
}
