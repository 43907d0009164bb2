package testabilities

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/constants"
	"github.com/stretchr/testify/require"
)

// ServerFixture is an HTTP server standing in for the gateway API.
type ServerFixture interface {
	WithRoute(pattern string, handler func(w http.ResponseWriter, r *http.Request)) ServerBuilder
	Responding(pattern string, status int, document string) ServerBuilder

	URL() *url.URL
}

type ServerBuilder interface {
	WithRoute(pattern string, handler func(w http.ResponseWriter, r *http.Request)) ServerBuilder
	Responding(pattern string, status int, document string) ServerBuilder
	Started() (cleanup func())
}

type serverFixture struct {
	testing.TB
	mux    *http.ServeMux
	server *httptest.Server
}

func NewServerFixture(t testing.TB) ServerFixture {
	return &serverFixture{
		TB:  t,
		mux: http.NewServeMux(),
	}
}

func (f *serverFixture) WithRoute(pattern string, handler func(w http.ResponseWriter, r *http.Request)) ServerBuilder {
	f.mux.HandleFunc(pattern, handler)
	return f
}

// Responding registers a route answering every request with the document and status, as the gateway would.
func (f *serverFixture) Responding(pattern string, status int, document string) ServerBuilder {
	return f.WithRoute(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", constants.ContentTypeXML+"; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write([]byte(document))
		if err != nil {
			f.Logf("failed to write gateway document: %v", err)
		}
	})
}

func (f *serverFixture) Started() (cleanup func()) {
	f.server = httptest.NewServer(f.mux)

	return f.server.Close
}

func (f *serverFixture) URL() *url.URL {
	require.NotNil(f, f.server, "server must be started before URL can be retrieved: invalid test setup")

	serverURL, err := url.Parse(f.server.URL)
	require.NoErrorf(f, err, "failed to parse server URL (%s): invalid test setup", f.server.URL)

	return serverURL
}
