package mailer

import (
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

var (
	// ErrSendFailed возвращается, когда письмо не удалось отправить
	ErrSendFailed = errors.New("mailer: send failed")

	// ErrNoRecipients возвращается при пустом списке получателей
	ErrNoRecipients = errors.New("mailer: no recipients")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Mailer отправляет служебные письма (заказы компаниям) через SMTP
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	log      Logger
}

// New создает новый экземпляр почтового клиента
func New(host string, port int, username, password, from string, log Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		log:      log,
	}
}

// Send отправляет письмо с HTML и текстовой версией всем получателям
func (m *Mailer) Send(ctx context.Context, subject, htmlBody, textBody string, to []string) error {
	if len(to) == 0 {
		return ErrNoRecipients
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("%w: Send - invalid from address: %v", ErrSendFailed, err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("%w: Send - invalid recipients: %v", ErrSendFailed, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, textBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.username),
		gomail.WithPassword(m.password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}

	client, err := gomail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("%w: Send - failed to create client: %v", ErrSendFailed, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error("mailer: failed to send %q to %v: %v", subject, to, err)
		return fmt.Errorf("%w: Send - %v", ErrSendFailed, err)
	}

	m.log.Info("mailer: sent %q to %v", subject, to)
	return nil
}
