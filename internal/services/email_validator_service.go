package services

import "context"

// EmailValidator checks a customer's address beyond its syntax.
// Implementations return an error when the address should be refused.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}
