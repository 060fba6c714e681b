package flash_test

import (
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/promptsaver/pkg/flash"
)

func TestBoardHideAll(t *testing.T) {
	board := flash.NewBoard(
		flash.Message{Category: "success", Text: "Prompt created successfully!"},
		flash.Message{Category: "danger", Text: "Invalid username or password"},
	)

	if got := len(board.Visible()); got != 2 {
		t.Fatalf("visible: got %d, want 2", got)
	}

	if hidden := board.HideAll(); len(hidden) != 2 {
		t.Errorf("first hide: got %d, want 2", len(hidden))
	}
	if hidden := board.HideAll(); len(hidden) != 0 {
		t.Errorf("second hide should be a no-op, hid %d", len(hidden))
	}
	if got := len(board.Visible()); got != 0 {
		t.Errorf("visible after hide: got %d, want 0", got)
	}
	if board.Len() != 2 {
		t.Errorf("len: got %d, want 2", board.Len())
	}
}

func TestDismisserHidesAfterDelay(t *testing.T) {
	board := flash.NewBoard(
		flash.Message{Text: "one"},
		flash.Message{Text: "two"},
		flash.Message{Text: "three"},
	)
	d := flash.NewDismisser(board, 20*time.Millisecond)
	d.Schedule()

	select {
	case <-d.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("dismisser did not fire")
	}

	if got := len(board.Visible()); got != 0 {
		t.Errorf("visible after delay: got %d, want 0", got)
	}
	if got := len(d.Hidden()); got != 3 {
		t.Errorf("hidden: got %d, want 3", got)
	}
}

func TestDismisserLeavesNoticesBeforeDelay(t *testing.T) {
	board := flash.NewBoard(flash.Message{Text: "pending"})
	d := flash.NewDismisser(board, time.Hour)
	d.Schedule()
	defer d.Stop()

	time.Sleep(10 * time.Millisecond)

	if got := len(board.Visible()); got != 1 {
		t.Errorf("visible before delay: got %d, want 1", got)
	}
	select {
	case <-d.Done():
		t.Error("done closed before delay elapsed")
	default:
	}
}

func TestDismisserScheduleOnce(t *testing.T) {
	board := flash.NewBoard(flash.Message{Text: "only"})
	d := flash.NewDismisser(board, 10*time.Millisecond)

	var wg sync.WaitGroup
	for range 5 {
		wg.Go(d.Schedule)
	}
	wg.Wait()

	<-d.Done()

	// a second close of done would panic inside the timer goroutine
	time.Sleep(30 * time.Millisecond)
	if got := len(d.Hidden()); got != 1 {
		t.Errorf("hidden: got %d, want 1", got)
	}
}

func TestDismisserStop(t *testing.T) {
	board := flash.NewBoard(flash.Message{Text: "kept"})
	d := flash.NewDismisser(board, 50*time.Millisecond)

	if d.Stop() {
		t.Error("stop before schedule should report false")
	}

	d.Schedule()
	if !d.Stop() {
		t.Error("stop should cancel a pending timer")
	}

	time.Sleep(80 * time.Millisecond)
	if got := len(board.Visible()); got != 1 {
		t.Errorf("visible after stop: got %d, want 1", got)
	}
}

func TestDismisserEmptyBoard(t *testing.T) {
	d := flash.NewDismisser(flash.NewBoard(), 5*time.Millisecond)
	d.Schedule()
	<-d.Done()

	if len(d.Hidden()) != 0 {
		t.Error("empty board should hide nothing")
	}
}

func TestDismisserDefaultDelay(t *testing.T) {
	d := flash.NewDismisser(flash.NewBoard(), 0)
	if d.Delay() != flash.DefaultDelay {
		t.Errorf("delay: got %v, want %v", d.Delay(), flash.DefaultDelay)
	}
}

func TestDismisserHiddenReturnsCopy(t *testing.T) {
	board := flash.NewBoard(flash.Message{Text: "first"}, flash.Message{Text: "second"})
	d := flash.NewDismisser(board, time.Millisecond)
	d.Schedule()
	<-d.Done()

	got := d.Hidden()
	got[0].Text = "changed"
	_ = append(got[:1], flash.Message{Text: "appended"})

	again := d.Hidden()
	if len(again) != 2 {
		t.Fatalf("hidden: got %d, want 2", len(again))
	}
	if again[0].Text != "first" || again[1].Text != "second" {
		t.Errorf("hidden changed by caller: %+v", again)
	}
}
