package notify

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"industrial-catalog/internal/catalog"
	"industrial-catalog/internal/models"
)

// Notifier avisa al equipo de ventas de cada cotización y mensaje de contacto.
// Los errores de envío se registran; nunca llegan al cliente HTTP.
type Notifier struct {
	mailer Mailer
	to     string
}

func NewNotifier(mailer Mailer, to string) *Notifier {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &Notifier{mailer: mailer, to: to}
}

func (n *Notifier) QuoteCreated(q models.Quote) {
	msg := Message{
		To:      n.to,
		Subject: fmt.Sprintf("Nueva solicitud de cotización de %s", q.Name),
		Body:    quoteBody(q),
	}
	if err := n.mailer.Send(msg); err != nil {
		zap.L().Error("quote notification failed", zap.String("quoteId", q.ID), zap.Error(err))
		return
	}
	zap.L().Info("quote notification sent", zap.String("quoteId", q.ID))
}

func (n *Notifier) ContactCreated(c models.Contact) {
	msg := Message{
		To:      n.to,
		Subject: fmt.Sprintf("Contacto: %s", c.Subject),
		Body: fmt.Sprintf(`<h2>Nuevo mensaje de contacto</h2>
<p><b>%s</b> &lt;%s&gt;</p>
<p>%s</p>`, html.EscapeString(c.Name), html.EscapeString(c.Email), html.EscapeString(c.Message)),
	}
	if err := n.mailer.Send(msg); err != nil {
		zap.L().Error("contact notification failed", zap.String("contactId", c.ID), zap.Error(err))
		return
	}
	zap.L().Info("contact notification sent", zap.String("contactId", c.ID))
}

func quoteBody(q models.Quote) string {
	var b strings.Builder
	b.WriteString("<h2>Nueva solicitud de cotización</h2>\n")
	fmt.Fprintf(&b, "<p><b>%s</b> &lt;%s&gt; %s</p>\n",
		html.EscapeString(q.Name), html.EscapeString(q.Email), html.EscapeString(q.Phone))
	if q.Company != nil {
		fmt.Fprintf(&b, "<p>Empresa: %s</p>\n", html.EscapeString(*q.Company))
	}

	b.WriteString("<ul>\n")
	for _, item := range q.Products {
		fmt.Fprintf(&b, "<li>%s x %d (%s)", html.EscapeString(item.ProductID), item.Quantity,
			catalog.FormatPrice(item.UnitPriceCents, models.DefaultCurrency))
		if item.Notes != nil {
			fmt.Fprintf(&b, " - %s", html.EscapeString(*item.Notes))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	fmt.Fprintf(&b, "<p>Total de unidades: %d</p>\n", q.TotalQuantity())

	if q.CustomerMessage != nil {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(*q.CustomerMessage))
	}
	return b.String()
}
