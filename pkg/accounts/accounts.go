// Package accounts holds rider accounts and verifies their credentials.
package accounts

import (
	"context"
	"errors"

	"github.com/travigo/patnametro/pkg/ctdf"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrUnknownAccount     = errors.New("unknown account")

	ErrWeakPassword     = errors.New("password must be at least 8 characters long")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrTermsNotAccepted = errors.New("you must agree to the terms and conditions")
)

const MinimumPasswordLength = 8

type AccountService interface {
	Authenticate(ctx context.Context, email string, password string) (*ctdf.User, error)
	Register(ctx context.Context, name string, email string, password string) (*ctdf.User, error)
	Get(ctx context.Context, identifier string) (*ctdf.User, error)
	List(ctx context.Context) ([]ctdf.User, error)
}

type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

// Validate applies the signup form rules in the order the form reports them
func (f SignupForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if len(f.Password) < MinimumPasswordLength {
		return ErrWeakPassword
	}

	if !f.AcceptTerms {
		return ErrTermsNotAccepted
	}

	return nil
}
