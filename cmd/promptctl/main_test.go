package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type entry struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type fakeServer struct {
	mu      sync.Mutex
	prompts []entry
	reject  bool
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /save_prompt", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title  string `json:"title"`
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.reject {
			json.NewEncoder(w).Encode(map[string]bool{"success": false})
			return
		}
		f.prompts = append(f.prompts, entry{Title: body.Title, Text: body.Prompt})
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	mux.HandleFunc("GET /get_prompts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"prompts": append([]entry{}, f.prompts...)})
	})

	return mux
}

func setup(t *testing.T, prompts ...entry) (*fakeServer, string) {
	t.Helper()
	fake := &fakeServer{prompts: prompts}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return fake, srv.URL
}

func TestRunList(t *testing.T) {
	_, url := setup(t, entry{"Greeting", "Say hello"}, entry{"Farewell", "Say goodbye"})

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-url", url, "list"}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr %q)", err, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "1  Greeting") || !strings.Contains(out, "2  Farewell") {
		t.Errorf("output = %q", out)
	}
	if strings.Index(out, "Greeting") > strings.Index(out, "Farewell") {
		t.Errorf("list not in server order: %q", out)
	}
}

func TestRunListEmpty(t *testing.T) {
	_, url := setup(t)

	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-url", url, "list"}, nil, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "no prompts saved") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestRunURLFromEnv(t *testing.T) {
	_, url := setup(t, entry{"Greeting", "Say hello"})
	t.Setenv(envURL, url)

	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"list"}, nil, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "Greeting") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestRunSave(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		reject  bool
		wantErr bool
		saved   int
	}{
		{"saved", []string{"save", "Greeting", "Say hello"}, false, false, 1},
		{"rejected", []string{"save", "Greeting", "Say hello"}, true, true, 0},
		{"empty title", []string{"save", "", "Say hello"}, false, true, 0},
		{"missing args", []string{"save", "Greeting"}, false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, url := setup(t)
			fake.reject = tt.reject

			var stdout, stderr bytes.Buffer
			err := run(context.Background(), append([]string{"-url", url}, tt.args...), nil, &stdout, &stderr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(fake.prompts); got != tt.saved {
				t.Errorf("saved prompts = %d, want %d", got, tt.saved)
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	tests := [][]string{{}, {"frobnicate"}}

	for _, args := range tests {
		var stderr bytes.Buffer
		if err := run(context.Background(), args, nil, &bytes.Buffer{}, &stderr); err == nil {
			t.Errorf("run(%v) succeeded", args)
		}
		if !strings.Contains(stderr.String(), "usage: promptctl") {
			t.Errorf("run(%v) printed no usage: %q", args, stderr.String())
		}
	}
}

func TestRunShell(t *testing.T) {
	fake, url := setup(t, entry{"Greeting", "Say hello"})

	input := strings.Join([]string{
		"show 1",
		"show 9",
		"save",
		"Farewell",
		"Say goodbye",
		"help",
		"quit",
		"list",
	}, "\n")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-url", url, "shell"}, strings.NewReader(input), &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr %q)", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"1  Greeting",
		"Title: Greeting\nPrompt: Say hello",
		"no prompt 9",
		"saved",
		"2  Farewell",
		"commands: list, show N, save, quit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if len(fake.prompts) != 2 {
		t.Errorf("saved prompts = %d, want 2", len(fake.prompts))
	}
}
