package client

import "fmt"

// Level classifies a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a user-visible message raised by the manager.
type Notice struct {
	Level Level
	Text  string
}

// Notifier receives notices. Implementations must not block for long.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

const (
	msgEmptyFields   = "Title and Prompt cannot be empty."
	msgSaveFailed    = "Failed to save prompt."
	msgUnreachable   = "Could not save prompt. Please try again."
	msgRefreshFailed = "Failed to load prompts."
)

func describe(p Prompt) string {
	return fmt.Sprintf("Title: %s\nPrompt: %s", p.Title, p.Text)
}
