package service

import (
	"fmt"
	"unicode/utf8"
)

// ValidationRules bounds the user supplied fields. Lengths count characters,
// not bytes.
type ValidationRules struct {
	PasswordMinLength  int
	PasswordMaxLength  int
	UsernameMaxLength  int
	FirstNameMaxLength int
	LastNameMaxLength  int
}

func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		PasswordMinLength:  8,
		PasswordMaxLength:  128,
		UsernameMaxLength:  150,
		FirstNameMaxLength: 30,
		LastNameMaxLength:  150,
	}
}

func (r ValidationRules) checkRequired(errs fieldErrors, field, value string, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		errs.add(field, "this field may not be blank")
	case max > 0 && n > max:
		errs.add(field, fmt.Sprintf("ensure this field has no more than %d characters", max))
	}
}

func (r ValidationRules) checkPassword(errs fieldErrors, password string) {
	n := utf8.RuneCountInString(password)
	switch {
	case n == 0:
		errs.add("password", "this field may not be blank")
	case n < r.PasswordMinLength:
		errs.add("password", fmt.Sprintf("ensure this field has at least %d characters", r.PasswordMinLength))
	case r.PasswordMaxLength > 0 && n > r.PasswordMaxLength:
		errs.add("password", fmt.Sprintf("ensure this field has no more than %d characters", r.PasswordMaxLength))
	}
}

func (r ValidationRules) validateCreate(in CreateUserInput) error {
	errs := fieldErrors{}
	r.checkRequired(errs, "username", in.Username, r.UsernameMaxLength)
	r.checkPassword(errs, in.Password)
	r.checkRequired(errs, "first_name", in.FirstName, r.FirstNameMaxLength)
	r.checkRequired(errs, "last_name", in.LastName, r.LastNameMaxLength)
	return errs.err()
}

func (r ValidationRules) validateUpdate(in UpdateUserInput) error {
	errs := fieldErrors{}
	if in.Username != nil {
		r.checkRequired(errs, "username", *in.Username, r.UsernameMaxLength)
	}
	if in.Password != nil {
		r.checkPassword(errs, *in.Password)
	}
	if in.FirstName != nil {
		r.checkRequired(errs, "first_name", *in.FirstName, r.FirstNameMaxLength)
	}
	if in.LastName != nil {
		r.checkRequired(errs, "last_name", *in.LastName, r.LastNameMaxLength)
	}
	return errs.err()
}
