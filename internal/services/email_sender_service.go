package services

import "context"

// EmailSender delivers one transactional email.
type EmailSender interface {
	SendEmail(ctx context.Context, to []string, subject, text, html string) error
}
