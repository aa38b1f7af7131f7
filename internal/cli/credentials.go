package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/sdassow/atomic"

	apihttp "github.com/formulaic-app/formulaic-go/internal/http"
)

const CredentialsPath = ".formulaic/credentials.json"

// CredentialsStore is a JSON file in a user's home dir that stores API keys
// for one or more Formulaic hosts
type CredentialsStore string

type CredentialsConfig struct {
	Credentials map[string]KeyConfig `json:"credentials"`
}

type KeyConfig struct {
	APIKey string `json:"api_key"`
}

// Directories provides the user's home directory.
type Directories interface {
	UserHomeDir() (string, error)
}

type osDirectories struct{}

func (osDirectories) UserHomeDir() (string, error) { return os.UserHomeDir() }

// NewCredentialsStore is a constructor for CredentialsStore
func NewCredentialsStore(dirs Directories) (CredentialsStore, error) {
	home, err := dirs.UserHomeDir()
	if err != nil {
		return "", err
	}
	return CredentialsStore(filepath.Join(home, CredentialsPath)), nil
}

// Load retrieves the API key for the host of address
func (c CredentialsStore) Load(address string) (string, error) {
	hostname, err := apihttp.SanitizeHostname(address)
	if err != nil {
		return "", err
	}

	config, err := c.read()
	if err != nil {
		return "", fmt.Errorf("reading credentials config: %w", err)
	}

	keyConfig, ok := config.Credentials[hostname]
	if !ok {
		return "", fmt.Errorf("credentials for %s not found in %s", hostname, c)
	}

	return keyConfig.APIKey, nil
}

// Save saves the API key for the host of address to the store, overwriting
// any existing key for the host.
func (c CredentialsStore) Save(address, key string) error {
	hostname, err := apihttp.SanitizeHostname(address)
	if err != nil {
		return err
	}

	if err := c.mkdir(); err != nil {
		return err
	}
	// Serialize concurrent logins so that neither loses the other's key.
	lock := flock.New(string(c) + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking credentials store: %w", err)
	}
	defer lock.Unlock()

	config, err := c.read()
	if err != nil {
		return err
	}

	config.Credentials[hostname] = KeyConfig{APIKey: key}

	return c.write(config)
}

// mkdir ensures all parent directories of the store exist
func (c CredentialsStore) mkdir() error {
	return os.MkdirAll(filepath.Dir(string(c)), 0o700)
}

func (c CredentialsStore) read() (*CredentialsConfig, error) {
	config := CredentialsConfig{Credentials: make(map[string]KeyConfig)}

	// Read any existing file contents
	data, err := os.ReadFile(string(c))
	if err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
		if config.Credentials == nil {
			config.Credentials = make(map[string]KeyConfig)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return &config, nil
}

func (c CredentialsStore) write(config *CredentialsConfig) error {
	data, err := json.MarshalIndent(&config, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(string(c), bytes.NewReader(data), atomic.DefaultFileMode(0o600))
}
