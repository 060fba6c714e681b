// Command admin manages accounts from the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JaimeStill/promptsaver/internal/config"
	"github.com/JaimeStill/promptsaver/internal/users"
	"github.com/JaimeStill/promptsaver/pkg/database"
	"github.com/JaimeStill/promptsaver/pkg/mail"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "create-admin" {
		fmt.Fprintln(os.Stderr, "usage: admin create-admin")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer db.Connection().Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Ping(ctx); err != nil {
		log.Fatalf("database unavailable: %v", err)
	}

	sys := users.New(db.Connection(), mail.New(&cfg.Mail, logger), logger)

	if err := createAdmin(ctx, sys, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("create admin failed: %v", err)
	}
}

// createAdmin prompts for the account fields on in and registers the user.
func createAdmin(ctx context.Context, sys users.System, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	ask := func(label string) (string, error) {
		fmt.Fprintf(out, "Enter admin %s: ", label)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("read %s: %w", label, io.ErrUnexpectedEOF)
		}
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}

	var cmd users.RegisterCommand
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"username", &cmd.Username},
		{"email", &cmd.Email},
		{"password", &cmd.Password},
	} {
		v, err := ask(field.label)
		if err != nil {
			return err
		}
		*field.dst = v
	}

	user, err := sys.Register(ctx, cmd)
	if err != nil {
		if errors.Is(err, users.ErrInvalid) {
			return fmt.Errorf("username, email, and password are required: %w", err)
		}
		return err
	}

	fmt.Fprintf(out, "Admin user %s created successfully!\n", user.Username)
	return nil
}
