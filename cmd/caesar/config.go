package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"caesar/internal/ctxlog"
	"caesar/internal/journal"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Shift         int            `yaml:"shift"`
	Method        string         `yaml:"method"`
	EncryptedFile string         `yaml:"encryptedFile"`
	DecryptedFile string         `yaml:"decryptedFile"`
	Journal       journal.Config `yaml:"journal"`
}

func DefaultConfig() Config {
	return Config{
		Shift:         3,
		Method:        "rotation",
		EncryptedFile: "encrypted.txt",
		DecryptedFile: "decrypted.txt",
		Journal:       journal.Config{File: "data/journal.db"},
	}
}

// LoadConfig reads the YAML config file. A missing or empty file yields the
// defaults; present keys override them.
func LoadConfig(ctx context.Context, filename string) (Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filename)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	dec := yaml.NewDecoder(file, yaml.Strict())

	err = dec.Decode(&config)
	if errors.Is(err, io.EOF) {
		return config, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	return config, nil
}
