// Package auth provides request authentication for backend connections and
// the private on-disk storage for credentials and refresh tokens.
//
// A [Provider] contributes the Authorization header attached to every backend
// request. [None] sends nothing, [BasicCredentials] sends HTTP basic
// credentials (used for the login call itself), and [BearerToken] sends the
// access token obtained from a login.
//
// [AuthConfig] and [RefreshTokenStore] persist credentials in JSON files that
// must only be readable by the owner; both refuse to touch files with wider
// permissions.
package auth
