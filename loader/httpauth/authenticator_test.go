package httpauth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://config.example.com/update.json", nil)
	require.NoError(t, err)
	return req
}

func TestAuthenticators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		auth      Authenticator
		wantName  string
		verifyReq func(t *testing.T, req *http.Request)
	}{
		{
			name:     "basic with credentials",
			auth:     NewBasicAuth("testuser", "testpass"),
			wantName: "Basic",
			verifyReq: func(t *testing.T, req *http.Request) {
				username, password, ok := req.BasicAuth()
				require.True(t, ok, "Basic auth header should be present")
				require.Equal(t, "testuser", username)
				require.Equal(t, "testpass", password)
			},
		},
		{
			name:     "basic with empty username",
			auth:     NewBasicAuth("", "testpass"),
			wantName: "Basic",
			verifyReq: func(t *testing.T, req *http.Request) {
				_, _, ok := req.BasicAuth()
				require.False(t, ok)
				require.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name: "header with several values",
			auth: NewHeaderAuth(map[string]string{
				"Authorization": "Bearer token123",
				"X-API-Key":     "secret-key",
			}),
			wantName: "Header",
			verifyReq: func(t *testing.T, req *http.Request) {
				require.Equal(t, "Bearer token123", req.Header.Get("Authorization"))
				require.Equal(t, "secret-key", req.Header.Get("X-API-Key"))
			},
		},
		{
			name:     "header with nil map",
			auth:     NewHeaderAuth(nil),
			wantName: "Header",
			verifyReq: func(t *testing.T, req *http.Request) {
				require.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:     "bearer helper",
			auth:     NewBearerAuth("my-test-token"),
			wantName: "Header",
			verifyReq: func(t *testing.T, req *http.Request) {
				require.Equal(t, "Bearer my-test-token", req.Header.Get("Authorization"))
			},
		},
		{
			name: "func",
			auth: NewFunc("Rotating", func(req *http.Request) error {
				req.Header.Set("X-Token", "rotated")
				return nil
			}),
			wantName: "Rotating",
			verifyReq: func(t *testing.T, req *http.Request) {
				require.Equal(t, "rotated", req.Header.Get("X-Token"))
			},
		},
		{
			name:     "func without body",
			auth:     NewFunc("", nil),
			wantName: "Func",
			verifyReq: func(t *testing.T, req *http.Request) {
				require.Empty(t, req.Header)
			},
		},
		{
			name:     "no auth",
			auth:     NewNoAuth(),
			wantName: "None",
			verifyReq: func(t *testing.T, req *http.Request) {
				require.Empty(t, req.Header.Get("Authorization"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.wantName, tt.auth.Name())

			t.Run("without context", func(t *testing.T) {
				req := newRequest(t)
				require.NoError(t, tt.auth.Authenticate(req))
				tt.verifyReq(t, req)
			})

			t.Run("with context", func(t *testing.T) {
				req := newRequest(t)
				require.NoError(t, tt.auth.AuthenticateWithContext(context.Background(), req))
				tt.verifyReq(t, req)
			})

			t.Run("with cancelled context", func(t *testing.T) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				require.ErrorIs(t, tt.auth.AuthenticateWithContext(ctx, newRequest(t)), context.Canceled)
			})

			t.Run("with expired context", func(t *testing.T) {
				ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
				defer cancel()
				<-ctx.Done()
				require.ErrorIs(t, tt.auth.AuthenticateWithContext(ctx, newRequest(t)), context.DeadlineExceeded)
			})
		})
	}
}

func TestHeaderAuthCloning(t *testing.T) {
	t.Parallel()

	originalHeaders := map[string]string{"X-Test": "value"}
	auth := NewHeaderAuth(originalHeaders)

	originalHeaders["X-Test"] = "modified"
	originalHeaders["X-New"] = "added"

	req := newRequest(t)
	require.NoError(t, auth.Authenticate(req))

	require.Equal(t, "value", req.Header.Get("X-Test"))
	require.Empty(t, req.Header.Get("X-New"))
}

func TestFuncError(t *testing.T) {
	t.Parallel()

	errSigning := errors.New("signing key unavailable")
	auth := NewFunc("Signed", func(*http.Request) error { return errSigning })

	require.ErrorIs(t, auth.Authenticate(newRequest(t)), errSigning)
	require.ErrorIs(t, auth.AuthenticateWithContext(context.Background(), newRequest(t)), errSigning)
}
