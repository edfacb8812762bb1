package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aryant0/mithila-bazaar/external/abstractapi"
)

// disposableDomains are throwaway inbox providers refused at checkout when the
// reputation API is not in use.
var disposableDomains = map[string]struct{}{
	"mailinator.com":    {},
	"guerrillamail.com": {},
	"10minutemail.com":  {},
	"tempmail.com":      {},
	"temp-mail.org":     {},
	"yopmail.com":       {},
	"trashmail.com":     {},
	"sharklasers.com":   {},
}

// LocalValidator checks the address domain without any network call.
type LocalValidator struct{}

func NewLocalValidator() *LocalValidator {
	return &LocalValidator{}
}

func (v *LocalValidator) Validate(
	ctx context.Context,
	email string,
) error {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		// syntax is checked with the rest of the form
		return nil
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if _, bad := disposableDomains[domain]; bad {
		return fmt.Errorf("%w: disposable email is not allowed", abstractapi.ErrRejected)
	}
	return nil
}
