package auth

import (
	"encoding/base64"
	"net/http"
)

// Provider contributes authentication headers to backend requests.
type Provider interface {
	// AuthHeaders returns the headers to attach to a request. A nil or empty
	// result means the request goes out unauthenticated.
	AuthHeaders() http.Header
}

// None is the provider for unauthenticated access.
type None struct{}

func (None) AuthHeaders() http.Header {
	return nil
}

// BasicCredentials authenticates with HTTP basic username and password. It is
// meant for the credentials endpoint that exchanges them for a bearer token,
// not for general API traffic.
type BasicCredentials struct {
	Username string
	Password string
}

func (c BasicCredentials) AuthHeaders() http.Header {
	encoded := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	header := http.Header{}
	header.Set("Authorization", "Basic "+encoded)
	return header
}

// BearerToken authenticates with an access token obtained from a login.
type BearerToken struct {
	Token string
}

func (t BearerToken) AuthHeaders() http.Header {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+t.Token)
	return header
}

var (
	_ Provider = None{}
	_ Provider = BasicCredentials{}
	_ Provider = BearerToken{}
)
