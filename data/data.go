// Package data is a small JSON file store under $HOME/.chow/data
// (or DATA_DIR when set).
package data

import (
	"encoding/json"
	"os"
	"path/filepath"
)

func root() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return filepath.Join(dir, "data")
	}
	return filepath.Join(os.ExpandEnv("$HOME/.chow"), "data")
}

// Save writes a value to disk under key.
func Save(key, val string) error {
	file := filepath.Join(root(), key)
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}
	return os.WriteFile(file, []byte(val), 0644)
}

// Load reads a value from disk.
func Load(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(root(), key))
}

// SaveJSON marshals val and writes it under key.
func SaveJSON(key string, val interface{}) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	file := filepath.Join(root(), key)
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}
	return os.WriteFile(file, b, 0644)
}

// LoadJSON reads the value under key into val.
func LoadJSON(key string, val interface{}) error {
	b, err := Load(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, val)
}
