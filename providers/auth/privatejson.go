package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFilePermissions is returned when a private JSON file is readable by
// group or others.
var ErrFilePermissions = errors.New("openeo: private file readable by others, expected permissions: 600")

// privateFileMode is the only acceptable mode for files holding secrets.
const privateFileMode = 0o600

// PrivateJSONFile is a JSON document on disk holding secrets (credentials,
// refresh tokens). Values are addressed by a key path into nested objects.
// The file is created with owner-only permissions and every access first
// verifies nobody else can read it.
type PrivateJSONFile struct {
	path string
}

// NewPrivateJSONFile returns the store backed by the given path. A directory
// path is resolved to defaultFilename inside it. The file itself is created
// lazily on the first Set.
func NewPrivateJSONFile(path, defaultFilename string) *PrivateJSONFile {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, defaultFilename)
	}
	return &PrivateJSONFile{path: path}
}

// Path returns the resolved file path.
func (f *PrivateJSONFile) Path() string {
	return f.path
}

// checkPermissions fails when the file exists with permissions wider than
// owner read/write.
func (f *PrivateJSONFile) checkPermissions() error {
	info, err := os.Stat(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("openeo: cannot stat %s: %w", f.path, err)
	}
	if info.Mode().Perm()&0o077 != 0 {
		return fmt.Errorf("%w (%s has %04o)", ErrFilePermissions, f.path, info.Mode().Perm())
	}
	return nil
}

// load reads the document, returning an empty object for a missing file.
func (f *PrivateJSONFile) load() (map[string]any, error) {
	if err := f.checkPermissions(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("openeo: cannot read %s: %w", f.path, err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("openeo: corrupt private file %s: %w", f.path, err)
	}
	return data, nil
}

// Get returns the value at the given key path, or nil when any key along the
// path is absent.
func (f *PrivateJSONFile) Get(keys ...string) (any, error) {
	data, err := f.load()
	if err != nil {
		return nil, err
	}
	var value any = data
	for _, key := range keys {
		object, ok := value.(map[string]any)
		if !ok {
			return nil, nil
		}
		value, ok = object[key]
		if !ok {
			return nil, nil
		}
	}
	return value, nil
}

// Set stores the value at the given key path, creating intermediate objects
// and the file itself as needed.
func (f *PrivateJSONFile) Set(value any, keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("openeo: private file set needs at least one key")
	}
	data, err := f.load()
	if err != nil {
		return err
	}

	object := data
	for _, key := range keys[:len(keys)-1] {
		child, ok := object[key].(map[string]any)
		if !ok {
			child = map[string]any{}
			object[key] = child
		}
		object = child
	}
	object[keys[len(keys)-1]] = value

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("openeo: cannot encode %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, raw, privateFileMode); err != nil {
		return fmt.Errorf("openeo: cannot write %s: %w", f.path, err)
	}
	// WriteFile only applies the mode on creation.
	return os.Chmod(f.path, privateFileMode)
}
