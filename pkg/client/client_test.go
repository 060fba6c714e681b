package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/JaimeStill/promptsaver/pkg/client"
)

type fakeServer struct {
	mu       sync.Mutex
	saves    []client.SaveRequest
	lists    int
	prompts  []client.Prompt
	saveBody string
	listBody string
	status   int
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /save_prompt", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		var req client.SaveRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.saves = append(f.saves, req)

		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}
		if f.saveBody != "" {
			io.WriteString(w, f.saveBody)
			return
		}
		f.prompts = append(f.prompts, client.Prompt{Title: req.Title, Text: req.Prompt})
		io.WriteString(w, `{"success": true}`)
	})

	mux.HandleFunc("GET /get_prompts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.lists++
		if f.listBody != "" {
			io.WriteString(w, f.listBody)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"prompts": f.prompts})
	})

	return mux
}

func (f *fakeServer) counts() (saves, lists int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves), f.lists
}

func (f *fakeServer) saved() []client.SaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.SaveRequest(nil), f.saves...)
}

func (f *fakeServer) set(fn func(f *fakeServer)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func newFake(t *testing.T, f *fakeServer) *client.Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/", srv.Client())
}

func TestClientSave(t *testing.T) {
	f := &fakeServer{}
	c := newFake(t, f)

	ok, err := c.Save(context.Background(), client.SaveRequest{Title: "Haiku", Prompt: "Write a haiku"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !ok {
		t.Error("expected success")
	}
	saves := f.saved()
	if len(saves) != 1 || saves[0].Title != "Haiku" || saves[0].Prompt != "Write a haiku" {
		t.Errorf("server received %+v", saves)
	}
}

func TestClientDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		saveBody string
		listBody string
	}{
		{"save missing success", `{}`, ""},
		{"save not json", `<html>oops</html>`, ""},
		{"list missing prompts", "", `{"items": []}`},
		{"list not json", "", `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFake(t, &fakeServer{saveBody: tt.saveBody, listBody: tt.listBody})

			var err error
			if tt.saveBody != "" {
				_, err = c.Save(context.Background(), client.SaveRequest{Title: "a", Prompt: "b"})
			} else {
				_, err = c.List(context.Background())
			}

			if !errors.Is(err, client.ErrDecode) {
				t.Errorf("err = %v, want ErrDecode", err)
			}
		})
	}
}

func TestClientStatusError(t *testing.T) {
	c := newFake(t, &fakeServer{status: http.StatusBadRequest})

	_, err := c.Save(context.Background(), client.SaveRequest{Title: "a", Prompt: "b"})
	if !errors.Is(err, client.ErrStatus) {
		t.Errorf("err = %v, want ErrStatus", err)
	}
}

func TestClientListEmpty(t *testing.T) {
	c := newFake(t, &fakeServer{listBody: `{"prompts": []}`})

	prompts, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if prompts == nil || len(prompts) != 0 {
		t.Errorf("prompts: got %#v, want empty non-nil", prompts)
	}
}
