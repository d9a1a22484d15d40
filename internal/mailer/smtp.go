package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSMTP(host string, port int, username, password string) *SMTP {
	return &SMTP{Host: host, Port: port, Username: username, Password: password}
}

func (s *SMTP) Send(ctx context.Context, e Email) error {
	if e.From == "" || len(e.To) == 0 {
		return errors.New("mailer: from and to are required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := e.From
	if e.FromName != "" {
		from = fmt.Sprintf("%s <%s>", e.FromName, e.From)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(e.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(e.TextBody)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	return smtp.SendMail(addr, auth, e.From, e.To, []byte(b.String()))
}
