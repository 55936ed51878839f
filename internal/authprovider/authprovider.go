// Package authprovider abstracts the hosted authentication service that owns
// principals. The core only registers new principals; sign-in and token
// issuance live elsewhere.
package authprovider

import (
	"context"
	"errors"
)

// ErrEmailTaken is the one registration failure the provisioning workflow
// reclassifies: the provider already holds a principal for this email.
// Every other failure propagates unchanged.
var ErrEmailTaken = errors.New("email already registered")

// Registrar creates a new authenticated principal and returns its uid.
type Registrar interface {
	Register(ctx context.Context, email, password string) (string, error)
}
