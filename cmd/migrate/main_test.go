package main

import (
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestResolveDSN(t *testing.T) {
	tests := []struct {
		name string
		flag string
		dsn  string
		url  string
		want string
	}{
		{"flag wins", "postgres://flag", "postgres://dsn", "postgres://url", "postgres://flag"},
		{"dsn env", "", "postgres://dsn", "postgres://url", "postgres://dsn"},
		{"database url", "", "", "postgres://url", "postgres://url"},
		{"default", "", "", "", defaultDSN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envDSN, tt.dsn)
			t.Setenv(envURL, tt.url)

			if got := resolveDSN(tt.flag); got != tt.want {
				t.Errorf("resolveDSN(%q) = %q, want %q", tt.flag, got, tt.want)
			}
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		t.Fatalf("iofs.New: %v", err)
	}
	defer source.Close()

	first, err := source.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if first != 1 {
		t.Errorf("first version = %d, want 1", first)
	}

	next, err := source.Next(first)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next != 2 {
		t.Errorf("next version = %d, want 2", next)
	}

	tests := []struct {
		version uint
		want    []string
	}{
		{1, []string{"users_username_key", "users_email_key", "password_hash"}},
		{2, []string{"REFERENCES users(id) ON DELETE CASCADE", "VARCHAR(100)"}},
	}

	for _, tt := range tests {
		r, _, err := source.ReadUp(tt.version)
		if err != nil {
			t.Fatalf("ReadUp(%d): %v", tt.version, err)
		}
		body, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("read up %d: %v", tt.version, err)
		}

		for _, fragment := range tt.want {
			if !strings.Contains(string(body), fragment) {
				t.Errorf("migration %d missing %q", tt.version, fragment)
			}
		}

		down, _, err := source.ReadDown(tt.version)
		if err != nil {
			t.Errorf("ReadDown(%d): %v", tt.version, err)
			continue
		}
		down.Close()
	}
}
