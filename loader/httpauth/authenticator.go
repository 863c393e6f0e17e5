// Package httpauth adds credentials to requests for remote update
// configurations.
package httpauth

import (
	"context"
	"net/http"
)

// Authenticator adds credentials to an outgoing configuration request.
type Authenticator interface {
	// Authenticate mutates req in place.
	Authenticate(req *http.Request) error

	// AuthenticateWithContext is Authenticate that refuses to run once ctx
	// is done.
	AuthenticateWithContext(ctx context.Context, req *http.Request) error

	// Name identifies the scheme in logs and String output.
	Name() string
}

// withContext runs apply unless ctx has already ended.
func withContext(ctx context.Context, req *http.Request, apply func(*http.Request) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// WithContext makes a shallow copy; the Header map is shared with req.
	return apply(req.WithContext(ctx))
}

// Func computes credentials per request, e.g. a token that rotates.
type Func struct {
	name  string
	apply func(req *http.Request) error
}

func NewFunc(name string, apply func(req *http.Request) error) *Func {
	return &Func{name: name, apply: apply}
}

func (f *Func) Authenticate(req *http.Request) error {
	if f.apply == nil {
		return nil
	}
	return f.apply(req)
}

func (f *Func) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return withContext(ctx, req, f.Authenticate)
}

func (f *Func) Name() string {
	if f.name == "" {
		return "Func"
	}
	return f.name
}
