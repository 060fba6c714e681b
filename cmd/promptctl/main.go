// Command promptctl saves and lists prompts against a running server
// through the same endpoints the home page script uses.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/JaimeStill/promptsaver/pkg/client"
)

const (
	envURL     = "PROMPTSAVER_URL"
	defaultURL = "http://localhost:5000"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "promptctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("promptctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		baseURL = fs.String("url", "", "Server base URL (default $"+envURL+" or "+defaultURL+")")
		timeout = fs.Duration("timeout", 10*time.Second, "Per-request timeout")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: promptctl [-url URL] <list|save TITLE PROMPT|shell>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *baseURL == "" {
		*baseURL = os.Getenv(envURL)
	}
	if *baseURL == "" {
		*baseURL = defaultURL
	}

	c := client.New(*baseURL, nil)
	notifier := client.NotifierFunc(func(n client.Notice) {
		out := stdout
		if n.Level != client.LevelInfo {
			out = stderr
		}
		fmt.Fprintf(out, "[%s] %s\n", n.Level, n.Text)
	})
	manager := client.NewManager(c, notifier)

	cmd := fs.Arg(0)
	switch cmd {
	case "list":
		reqCtx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()

		if err := manager.RefreshPromptList(reqCtx); err != nil {
			return err
		}
		printList(stdout, manager.List())
		return nil
	case "save":
		if fs.NArg() != 3 {
			fs.Usage()
			return errors.New("save requires TITLE and PROMPT")
		}
		reqCtx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()

		manager.Form().Set(fs.Arg(1), fs.Arg(2))
		result := manager.SavePrompt(reqCtx)
		if result.Outcome != client.OutcomeSaved {
			if result.Err != nil {
				return result.Err
			}
			return fmt.Errorf("save %s", result.Outcome)
		}
		fmt.Fprintln(stdout, "saved")
		return nil
	case "shell":
		return shell(ctx, client.NewPage(manager, 0), *timeout, stdin, stdout)
	case "":
		fs.Usage()
		return errors.New("missing command")
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printList(w io.Writer, list *client.List) {
	labels := list.Labels()
	if len(labels) == 0 {
		fmt.Fprintln(w, "no prompts saved")
		return
	}
	for i, label := range labels {
		fmt.Fprintf(w, "%3d  %s\n", i+1, label)
	}
}

// shell runs an interactive session over a page: the list is loaded once,
// then commands read one per line.
func shell(ctx context.Context, page *client.Page, timeout time.Duration, stdin io.Reader, stdout io.Writer) error {
	defer page.Close()

	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	err := page.Load(loadCtx)
	cancel()
	if err == nil {
		printList(stdout, page.List())
	}

	scanner := bufio.NewScanner(stdin)
	prompt := func() { fmt.Fprint(stdout, "> ") }

	for prompt(); scanner.Scan(); prompt() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		cmd, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "":
		case "quit", "exit":
			return nil
		case "list":
			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			if page.RefreshPromptList(reqCtx) == nil {
				printList(stdout, page.List())
			}
			cancel()
		case "show":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				fmt.Fprintln(stdout, "usage: show N")
				continue
			}
			if _, ok := page.Select(n - 1); !ok {
				fmt.Fprintf(stdout, "no prompt %d\n", n)
			}
		case "save":
			fmt.Fprint(stdout, "title: ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			title := scanner.Text()

			fmt.Fprint(stdout, "prompt: ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			page.Form().Set(title, scanner.Text())

			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			if page.SavePrompt(reqCtx).Outcome == client.OutcomeSaved {
				fmt.Fprintln(stdout, "saved")
				printList(stdout, page.List())
			}
			cancel()
		default:
			fmt.Fprintln(stdout, "commands: list, show N, save, quit")
		}
	}

	return scanner.Err()
}
