package httpauth

import (
	"context"
	"net/http"
)

// NoAuth leaves requests untouched. It is the HTTP loader default.
type NoAuth struct{}

func NewNoAuth() *NoAuth { return &NoAuth{} }

func (*NoAuth) Authenticate(*http.Request) error { return nil }

func (n *NoAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return withContext(ctx, req, n.Authenticate)
}

func (*NoAuth) Name() string { return "None" }
