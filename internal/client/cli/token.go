package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/dwitter/internal/filex"
)

const tokenFileName = "token"

func defaultTokenPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	dir, err := filex.EnsureDir(base, "dwitter")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tokenFileName), nil
}

type tokenStore struct {
	path string
}

// Load returns the cached token, or "" when none is stored.
func (t *tokenStore) Load() (string, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (t *tokenStore) Save(token string) error {
	if err := filex.WritePrivateFile(t.path, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (t *tokenStore) Clear() error {
	if err := os.Remove(t.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
