package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/boxsync/boxsync/internal/utils"
)

// Token is the persisted credential for the box server. The file is owner
// read/write only since it carries bearer tokens.
type Token struct {
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoadToken reads a token file. A missing file maps to ErrNoToken so callers
// can route to the login bootstrap.
func LoadToken(path string) (*Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("read token %q: %w", path, err)
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token %q: %w", path, err)
	}

	if tok.AccessToken == "" {
		return nil, ErrNoToken
	}

	return &tok, nil
}

// Save writes the token file with 0600 permissions.
func (t *Token) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
