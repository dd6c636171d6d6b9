package auth

import (
	"fmt"
	"strings"
	"time"
)

// AuthConfigFilename is the default file name for the credentials config.
const AuthConfigFilename = "auth-config.json"

// AuthConfig persists per-backend authentication settings: basic auth
// credentials and OIDC client configurations. Backends are keyed by URL; a
// lookup tolerates a missing or extra trailing slash.
type AuthConfig struct {
	file *PrivateJSONFile

	// now is overridable for deterministic timestamps in tests.
	now func() time.Time
}

// NewAuthConfig returns the config stored at the given path (a directory is
// resolved to AuthConfigFilename inside it).
func NewAuthConfig(path string) *AuthConfig {
	return &AuthConfig{
		file: NewPrivateJSONFile(path, AuthConfigFilename),
		now:  time.Now,
	}
}

// Path returns the resolved file path.
func (c *AuthConfig) Path() string {
	return c.file.Path()
}

func (c *AuthConfig) timestamp() string {
	return c.now().UTC().Format("2006-01-02T15:04:05Z")
}

// backendKeys returns the lookup candidates for a backend URL: as given and
// with the trailing slash toggled.
func backendKeys(backend string) []string {
	if strings.HasSuffix(backend, "/") {
		return []string{backend, strings.TrimRight(backend, "/")}
	}
	return []string{backend, backend + "/"}
}

// backendEntry returns the stored entry for the backend, trying the trailing
// slash variants.
func (c *AuthConfig) backendEntry(backend string) (map[string]any, error) {
	for _, key := range backendKeys(backend) {
		value, err := c.file.Get("backends", key)
		if err != nil {
			return nil, err
		}
		if entry, ok := value.(map[string]any); ok {
			return entry, nil
		}
	}
	return nil, nil
}

// SetBasicAuth stores basic auth credentials for the backend.
func (c *AuthConfig) SetBasicAuth(backend, username, password string) error {
	return c.file.Set(map[string]any{
		"date":     c.timestamp(),
		"username": username,
		"password": password,
	}, "backends", backend, "basic")
}

// GetBasicAuth returns the stored basic auth credentials for the backend, or
// empty strings when none are stored.
func (c *AuthConfig) GetBasicAuth(backend string) (username, password string, err error) {
	entry, err := c.backendEntry(backend)
	if err != nil || entry == nil {
		return "", "", err
	}
	basic, ok := entry["basic"].(map[string]any)
	if !ok {
		return "", "", nil
	}
	username, _ = basic["username"].(string)
	password, _ = basic["password"].(string)
	return username, password, nil
}

// SetOIDCClientConfig stores the OIDC client id and secret for one provider
// of the backend.
func (c *AuthConfig) SetOIDCClientConfig(backend, providerID, clientID, clientSecret string) error {
	return c.file.Set(map[string]any{
		"date":          c.timestamp(),
		"client_id":     clientID,
		"client_secret": clientSecret,
	}, "backends", backend, "oidc", "providers", providerID)
}

// GetOIDCClientConfig returns the stored client id and secret for one OIDC
// provider of the backend, or empty strings when none are stored.
func (c *AuthConfig) GetOIDCClientConfig(backend, providerID string) (clientID, clientSecret string, err error) {
	providers, err := c.GetOIDCProviderConfigs(backend)
	if err != nil {
		return "", "", err
	}
	provider, ok := providers[providerID]
	if !ok {
		return "", "", nil
	}
	clientID, _ = provider["client_id"].(string)
	clientSecret, _ = provider["client_secret"].(string)
	return clientID, clientSecret, nil
}

// GetOIDCProviderConfigs returns all stored OIDC provider configurations of
// the backend, keyed by provider id.
func (c *AuthConfig) GetOIDCProviderConfigs(backend string) (map[string]map[string]any, error) {
	entry, err := c.backendEntry(backend)
	if err != nil || entry == nil {
		return map[string]map[string]any{}, err
	}
	oidc, _ := entry["oidc"].(map[string]any)
	rawProviders, _ := oidc["providers"].(map[string]any)

	providers := make(map[string]map[string]any, len(rawProviders))
	for id, value := range rawProviders {
		provider, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("openeo: malformed oidc provider entry %q for backend %q", id, backend)
		}
		providers[id] = provider
	}
	return providers, nil
}
