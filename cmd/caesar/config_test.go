package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissing(t *testing.T) {
	config, err := LoadConfig(context.Background(), filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if have, want := config, DefaultConfig(); have != want {
		t.Fatalf("config %+v != %+v", have, want)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("shift: 15\nmethod: modular\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := config.Shift, 15; have != want {
		t.Fatalf("shift %d != %d", have, want)
	}
	if have, want := config.Method, "modular"; have != want {
		t.Fatalf("method %q != %q", have, want)
	}
	// Untouched keys keep their defaults.
	if have, want := config.EncryptedFile, "encrypted.txt"; have != want {
		t.Fatalf("encryptedFile %q != %q", have, want)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("rotate: 3\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	_, err = LoadConfig(context.Background(), path)
	if err == nil {
		t.Fatal("expected strict decode error for unknown key")
	}
}
