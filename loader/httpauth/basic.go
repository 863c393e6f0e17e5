package httpauth

import (
	"context"
	"net/http"
)

// BasicAuth implements HTTP Basic Authentication according to RFC 7617.
type BasicAuth struct {
	Username string
	Password string
}

// NewBasicAuth creates a new BasicAuth authenticator with the given credentials.
// If username is empty, this authenticator does nothing.
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{
		Username: username,
		Password: password,
	}
}

func (b *BasicAuth) Authenticate(req *http.Request) error {
	if b.Username != "" {
		req.SetBasicAuth(b.Username, b.Password)
	}
	return nil
}

func (b *BasicAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return withContext(ctx, req, b.Authenticate)
}

func (b *BasicAuth) Name() string {
	return "Basic"
}
