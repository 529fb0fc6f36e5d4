package notify

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Message es un correo HTML
type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer envía correos por SMTP
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	if from == "" {
		from = user
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return errors.Wrapf(err, "sending mail to %s", msg.To)
	}
	return nil
}

// LogMailer solo registra el correo; se usa cuando SMTP no está configurado
type LogMailer struct{}

func (LogMailer) Send(msg Message) error {
	zap.L().Info("mail delivery disabled, message logged",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
