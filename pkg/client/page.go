package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptsaver/pkg/flash"
)

// Form holds the title and prompt input fields.
type Form struct {
	mu     sync.Mutex
	title  string
	prompt string
}

// Set replaces both field values.
func (f *Form) Set(title, prompt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title, f.prompt = title, prompt
}

// Values returns the current field values.
func (f *Form) Values() (title, prompt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title, f.prompt
}

// Clear empties both fields.
func (f *Form) Clear() {
	f.Set("", "")
}

// List is the rendered prompt list. Each entry's label is the prompt title.
type List struct {
	mu      sync.Mutex
	entries []Prompt
}

// Labels returns the entry labels in display order.
func (l *List) Labels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	labels := make([]string, len(l.entries))
	for i, p := range l.entries {
		labels[i] = p.Title
	}
	return labels
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entry returns the prompt at index i.
func (l *List) Entry(i int) (Prompt, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.entries) {
		return Prompt{}, false
	}
	return l.entries[i], true
}

func (l *List) replace(prompts []Prompt) {
	entries := make([]Prompt, len(prompts))
	copy(entries, prompts)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = entries
}

// Outcome is the result of a save attempt.
type Outcome int

const (
	// OutcomeSaved means the server stored the prompt.
	OutcomeSaved Outcome = iota
	// OutcomeInvalid means a field was empty and nothing was sent.
	OutcomeInvalid
	// OutcomeRejected means the server answered success:false.
	OutcomeRejected
	// OutcomeTransportFailed means the request or its response failed.
	OutcomeTransportFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportFailed:
		return "transport failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// SaveResult reports a save attempt. Err is set for OutcomeTransportFailed.
type SaveResult struct {
	Outcome Outcome
	Err     error
}

// Manager binds a Client to a form, a list, and a notifier.
type Manager struct {
	client   *Client
	form     *Form
	list     *List
	notifier Notifier
}

// NewManager creates a Manager with an empty form and list.
func NewManager(client *Client, notifier Notifier) *Manager {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	return &Manager{
		client:   client,
		form:     &Form{},
		list:     &List{},
		notifier: notifier,
	}
}

// Form returns the manager's input fields.
func (m *Manager) Form() *Form { return m.form }

// List returns the manager's rendered list.
func (m *Manager) List() *List { return m.list }

// RefreshPromptList replaces the list with the server's prompts in response order.
// On failure the list is left as it was and one notice is raised.
func (m *Manager) RefreshPromptList(ctx context.Context) error {
	prompts, err := m.client.List(ctx)
	if err != nil {
		m.notifier.Notify(Notice{Level: LevelError, Text: msgRefreshFailed})
		return err
	}

	m.list.replace(prompts)
	return nil
}

// SavePrompt validates the form, posts it, and on success refreshes the list
// and clears the form. Empty fields are rejected without a request; values
// are not trimmed.
func (m *Manager) SavePrompt(ctx context.Context) SaveResult {
	title, prompt := m.form.Values()
	if title == "" || prompt == "" {
		m.notifier.Notify(Notice{Level: LevelWarn, Text: msgEmptyFields})
		return SaveResult{Outcome: OutcomeInvalid}
	}

	ok, err := m.client.Save(ctx, SaveRequest{Title: title, Prompt: prompt})
	if err != nil {
		m.notifier.Notify(Notice{Level: LevelError, Text: msgUnreachable})
		return SaveResult{Outcome: OutcomeTransportFailed, Err: err}
	}
	if !ok {
		m.notifier.Notify(Notice{Level: LevelWarn, Text: msgSaveFailed})
		return SaveResult{Outcome: OutcomeRejected}
	}

	// the save stands even if the follow-up refresh fails; that failure
	// raises its own notice
	m.RefreshPromptList(ctx)
	m.form.Clear()
	return SaveResult{Outcome: OutcomeSaved}
}

// Select reports the prompt at index i through the notifier.
func (m *Manager) Select(i int) (Prompt, bool) {
	p, ok := m.list.Entry(i)
	if !ok {
		return Prompt{}, false
	}
	m.notifier.Notify(Notice{Level: LevelInfo, Text: describe(p)})
	return p, true
}

// Page combines the prompt manager with the page's flash notices.
// Both are driven by Load and share no state.
type Page struct {
	*Manager
	board     *flash.Board
	dismisser *flash.Dismisser
}

// NewPage creates a page showing the given flash messages, hidden delay after Load.
func NewPage(manager *Manager, delay time.Duration, flashes ...flash.Message) *Page {
	board := flash.NewBoard(flashes...)
	return &Page{
		Manager:   manager,
		board:     board,
		dismisser: flash.NewDismisser(board, delay),
	}
}

// Board returns the page's flash notices.
func (p *Page) Board() *flash.Board { return p.board }

// Dismisser returns the page's flash dismisser.
func (p *Page) Dismisser() *flash.Dismisser { return p.dismisser }

// Load runs the page load behaviors: the initial list refresh and arming
// the flash dismisser.
func (p *Page) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.RefreshPromptList(ctx)
	})

	g.Go(func() error {
		p.dismisser.Schedule()
		return nil
	})

	return g.Wait()
}

// Close cancels a pending flash dismissal.
func (p *Page) Close() {
	p.dismisser.Stop()
}
