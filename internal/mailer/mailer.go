package mailer

import "context"

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string // optional: "Apotik Online"
	From     string // required: "no-reply@apotik.local"

	To []string

	Subject  string
	TextBody string
}
