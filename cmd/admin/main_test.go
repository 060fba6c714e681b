package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/internal/users"
)

type fakeUsers struct {
	users.System
	got users.RegisterCommand
	err error
}

func (f *fakeUsers) Register(_ context.Context, cmd users.RegisterCommand) (*users.User, error) {
	f.got = cmd
	if f.err != nil {
		return nil, f.err
	}
	return &users.User{ID: uuid.New(), Username: cmd.Username, Email: cmd.Email}, nil
}

func TestCreateAdmin(t *testing.T) {
	sys := &fakeUsers{}
	var out bytes.Buffer

	in := strings.NewReader("root\nroot@example.com\ns3cret\n")
	if err := createAdmin(context.Background(), sys, in, &out); err != nil {
		t.Fatalf("createAdmin: %v", err)
	}

	want := users.RegisterCommand{Username: "root", Email: "root@example.com", Password: "s3cret"}
	if sys.got != want {
		t.Errorf("register command = %+v, want %+v", sys.got, want)
	}

	for _, prompt := range []string{"Enter admin username: ", "Enter admin email: ", "Enter admin password: "} {
		if !strings.Contains(out.String(), prompt) {
			t.Errorf("output missing prompt %q", prompt)
		}
	}
	if !strings.Contains(out.String(), "Admin user root created successfully!") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCreateAdminErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		err     error
		wantErr error
	}{
		{"short input", "root\n", nil, io.ErrUnexpectedEOF},
		{"duplicate", "root\nroot@example.com\npw\n", users.ErrDuplicateUsername, users.ErrDuplicateUsername},
		{"invalid", "\n\n\n", users.ErrInvalid, users.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &fakeUsers{err: tt.err}
			err := createAdmin(context.Background(), sys, strings.NewReader(tt.input), io.Discard)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
