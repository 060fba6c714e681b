package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/promptsaver/pkg/client"
	"github.com/JaimeStill/promptsaver/pkg/flash"
)

type recorder struct {
	mu      sync.Mutex
	notices []client.Notice
}

func (r *recorder) Notify(n client.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) all() []client.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]client.Notice(nil), r.notices...)
}

func TestSavePromptEmptyFields(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		prompt string
	}{
		{"empty title", "", "Summarize this"},
		{"empty prompt", "Summary", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeServer{}
			notes := &recorder{}
			m := client.NewManager(newFake(t, f), notes)
			m.Form().Set(tt.title, tt.prompt)

			result := m.SavePrompt(context.Background())

			if result.Outcome != client.OutcomeInvalid {
				t.Errorf("outcome: got %v, want invalid", result.Outcome)
			}
			if saves, lists := f.counts(); saves != 0 || lists != 0 {
				t.Errorf("requests sent: saves=%d lists=%d", saves, lists)
			}
			if got := notes.all(); len(got) != 1 || got[0].Text != "Title and Prompt cannot be empty." {
				t.Errorf("notices: got %+v", got)
			}
		})
	}
}

func TestSavePromptWhitespaceIsSent(t *testing.T) {
	f := &fakeServer{}
	m := client.NewManager(newFake(t, f), nil)
	m.Form().Set(" ", "\t")

	if result := m.SavePrompt(context.Background()); result.Outcome != client.OutcomeSaved {
		t.Errorf("outcome: got %v, want saved", result.Outcome)
	}
	if saves, _ := f.counts(); saves != 1 {
		t.Errorf("saves: got %d, want 1", saves)
	}
}

func TestSavePromptSuccess(t *testing.T) {
	f := &fakeServer{prompts: []client.Prompt{{Title: "Existing", Text: "old"}}}
	notes := &recorder{}
	m := client.NewManager(newFake(t, f), notes)
	m.Form().Set("Haiku", "Write a haiku about Go")

	result := m.SavePrompt(context.Background())

	if result.Outcome != client.OutcomeSaved {
		t.Fatalf("outcome: got %v, want saved", result.Outcome)
	}

	saves, lists := f.counts()
	if saves != 1 {
		t.Errorf("saves: got %d, want 1", saves)
	}
	if lists != 1 {
		t.Errorf("refreshes: got %d, want exactly 1", lists)
	}
	if got := f.saved()[0]; got != (client.SaveRequest{Title: "Haiku", Prompt: "Write a haiku about Go"}) {
		t.Errorf("body: got %+v", got)
	}

	if title, prompt := m.Form().Values(); title != "" || prompt != "" {
		t.Errorf("form not cleared: %q %q", title, prompt)
	}
	if labels := m.List().Labels(); strings.Join(labels, "|") != "Existing|Haiku" {
		t.Errorf("labels: got %v", labels)
	}
	if len(notes.all()) != 0 {
		t.Errorf("unexpected notices: %+v", notes.all())
	}
}

func TestSavePromptRejected(t *testing.T) {
	f := &fakeServer{saveBody: `{"success": false}`}
	notes := &recorder{}
	m := client.NewManager(newFake(t, f), notes)
	m.Form().Set("Title", "Body")

	result := m.SavePrompt(context.Background())

	if result.Outcome != client.OutcomeRejected {
		t.Errorf("outcome: got %v, want rejected", result.Outcome)
	}
	if _, lists := f.counts(); lists != 0 {
		t.Errorf("refreshes: got %d, want 0", lists)
	}
	if title, prompt := m.Form().Values(); title != "Title" || prompt != "Body" {
		t.Errorf("form should be kept, got %q %q", title, prompt)
	}
	if got := notes.all(); len(got) != 1 || got[0].Text != "Failed to save prompt." {
		t.Errorf("notices: got %+v", got)
	}
}

func TestSavePromptTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	notes := &recorder{}
	m := client.NewManager(client.New(srv.URL, nil), notes)
	m.Form().Set("Title", "Body")

	result := m.SavePrompt(context.Background())

	if result.Outcome != client.OutcomeTransportFailed {
		t.Errorf("outcome: got %v, want transport failed", result.Outcome)
	}
	if result.Err == nil {
		t.Error("transport failure should carry the error")
	}
	if len(notes.all()) != 1 {
		t.Errorf("notices: got %d, want 1", len(notes.all()))
	}
	if title, _ := m.Form().Values(); title != "Title" {
		t.Error("form should be kept after a transport failure")
	}
}

func TestSavePromptDecodeFailure(t *testing.T) {
	f := &fakeServer{saveBody: `{"ok": true}`}
	m := client.NewManager(newFake(t, f), nil)
	m.Form().Set("Title", "Body")

	result := m.SavePrompt(context.Background())

	if result.Outcome != client.OutcomeTransportFailed || !errors.Is(result.Err, client.ErrDecode) {
		t.Errorf("got %v / %v, want transport failed with ErrDecode", result.Outcome, result.Err)
	}
}

func TestRefreshPromptList(t *testing.T) {
	f := &fakeServer{prompts: []client.Prompt{
		{Title: "Zeta", Text: "z"},
		{Title: "Alpha", Text: "a"},
		{Title: "Alpha", Text: "duplicate title"},
	}}
	m := client.NewManager(newFake(t, f), nil)

	if err := m.RefreshPromptList(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	labels := m.List().Labels()
	if strings.Join(labels, "|") != "Zeta|Alpha|Alpha" {
		t.Errorf("labels: got %v", labels)
	}

	f.set(func(f *fakeServer) { f.prompts = nil })
	if err := m.RefreshPromptList(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if m.List().Len() != 0 {
		t.Errorf("list should be emptied, has %d", m.List().Len())
	}
}

func TestRefreshFailureKeepsList(t *testing.T) {
	f := &fakeServer{prompts: []client.Prompt{{Title: "Keep", Text: "k"}}}
	notes := &recorder{}
	m := client.NewManager(newFake(t, f), notes)
	m.RefreshPromptList(context.Background())

	f.set(func(f *fakeServer) { f.listBody = `{"prompts": "broken"}` })
	if err := m.RefreshPromptList(context.Background()); !errors.Is(err, client.ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
	if m.List().Len() != 1 {
		t.Errorf("list length: got %d, want 1", m.List().Len())
	}
	if len(notes.all()) != 1 {
		t.Errorf("notices: got %d, want 1", len(notes.all()))
	}
}

func TestSelect(t *testing.T) {
	f := &fakeServer{prompts: []client.Prompt{{Title: "Greeting", Text: "Say hello"}}}
	notes := &recorder{}
	m := client.NewManager(newFake(t, f), notes)
	m.RefreshPromptList(context.Background())

	if _, ok := m.Select(5); ok {
		t.Error("out of range select should fail")
	}
	if _, ok := m.Select(0); !ok {
		t.Fatal("select 0 failed")
	}

	got := notes.all()
	if len(got) != 1 || got[0].Text != "Title: Greeting\nPrompt: Say hello" {
		t.Errorf("notices: got %+v", got)
	}
}

func TestPageLoad(t *testing.T) {
	f := &fakeServer{prompts: []client.Prompt{{Title: "One", Text: "1"}}}
	page := client.NewPage(
		client.NewManager(newFake(t, f), nil),
		time.Hour,
		flash.Message{Category: "success", Text: "Prompt created successfully!"},
	)
	defer page.Close()

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	page.Dismisser().Stop()

	if page.List().Len() != 1 {
		t.Errorf("list length: got %d, want 1", page.List().Len())
	}
	if len(page.Board().Visible()) != 1 {
		t.Error("flash should still be visible right after load")
	}
}

func TestPageLoadDismissesAfterDelay(t *testing.T) {
	f := &fakeServer{prompts: []client.Prompt{{Title: "One", Text: "1"}}}
	page := client.NewPage(
		client.NewManager(newFake(t, f), nil),
		10*time.Millisecond,
		flash.Message{Category: "success", Text: "Prompt created successfully!"},
	)
	defer page.Close()

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	select {
	case <-page.Dismisser().Done():
	case <-time.After(2 * time.Second):
		t.Fatal("flash was not dismissed")
	}
	if len(page.Board().Visible()) != 0 {
		t.Error("flash should be hidden after the delay")
	}
}
