package auth

// RefreshTokensFilename is the default file name for the refresh token store.
const RefreshTokensFilename = "refresh-tokens.json"

// RefreshTokenStore persists OIDC refresh tokens per issuer and client id.
type RefreshTokenStore struct {
	file *PrivateJSONFile
}

// NewRefreshTokenStore returns the store at the given path (a directory is
// resolved to RefreshTokensFilename inside it).
func NewRefreshTokenStore(path string) *RefreshTokenStore {
	return &RefreshTokenStore{file: NewPrivateJSONFile(path, RefreshTokensFilename)}
}

// Path returns the resolved file path.
func (s *RefreshTokenStore) Path() string {
	return s.file.Path()
}

// GetRefreshToken returns the stored token for the issuer and client id, or
// the empty string when none is stored.
func (s *RefreshTokenStore) GetRefreshToken(issuer, clientID string) (string, error) {
	value, err := s.file.Get(issuer, clientID, "refresh_token")
	if err != nil {
		return "", err
	}
	token, _ := value.(string)
	return token, nil
}

// SetRefreshToken stores the token for the issuer and client id.
func (s *RefreshTokenStore) SetRefreshToken(issuer, clientID, token string) error {
	return s.file.Set(token, issuer, clientID, "refresh_token")
}
