package validation

import (
	"regexp"

	"github.com/dicelobby/accounts/internal/model"
)

// MinUsernameLength is the minimum accepted username length
const MinUsernameLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Require checks that every named field is present and non-empty, in the
// declared order; the first missing field is reported.
func Require(p *Params, fields ...string) error {
	for _, field := range fields {
		if !p.Has(field) {
			return model.NewFieldError(field, model.CodeRequired)
		}
	}
	return nil
}

// RequireConfirmation makes `password_confirmation` required whenever
// `password` is present. Routes accepting a password change run this after
// their base required list.
func RequireConfirmation(p *Params) error {
	if p.Has("password") && !p.Has("password_confirmation") {
		return model.NewFieldError("password_confirmation", model.CodeRequired)
	}
	return nil
}

// ValidUsername checks the username length constraint
func ValidUsername(username string) error {
	if len(username) < MinUsernameLength {
		return model.NewFieldError("username", model.CodeMinLength)
	}
	return nil
}

// ValidEmail checks the email format constraint
func ValidEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return model.NewFieldError("email", model.CodePattern)
	}
	return nil
}

// ValidConfirmation checks that password and confirmation match
func ValidConfirmation(password, confirmation string) error {
	if password != confirmation {
		return model.NewFieldError("password_confirmation", model.CodeConfirmation)
	}
	return nil
}
