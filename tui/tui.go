package tui

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/kztmrngs/FastSieve/sieve"
)

// TUI is a live progress view for long sieve runs. The sieve itself runs on
// a background goroutine and always completes; closing the view early only
// detaches the display.
type TUI struct {
	App    *tview.Application
	Layout *tview.Flex

	HeaderView   *tview.TextView
	ProgressView *tview.TextView
	StatsView    *tview.TextView

	mu        sync.Mutex
	last      sieve.Progress
	startTime time.Time
	stopped   atomic.Bool
}

// New creates a new progress TUI
func New() *TUI {
	t := &TUI{
		App:          tview.NewApplication(),
		HeaderView:   tview.NewTextView().SetDynamicColors(true),
		ProgressView: tview.NewTextView(), // plain text: the bar glyphs must not parse as color tags
		StatsView:    tview.NewTextView().SetDynamicColors(true),
	}

	t.HeaderView.SetBorder(true).SetTitle(" FastSieve ")
	t.ProgressView.SetBorder(true).SetTitle(" Progress ")
	t.StatsView.SetBorder(true).SetTitle(" Statistics ")

	t.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.HeaderView, 3, 0, false).
		AddItem(t.ProgressView, 4, 0, false).
		AddItem(t.StatsView, 0, 1, true)

	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyCtrlC,
			event.Rune() == 'q', event.Rune() == 'Q':
			t.stopped.Store(true)
			t.App.Stop()
			return nil
		}
		return event
	})

	t.App.SetRoot(t.Layout, true)
	return t
}

// Run executes the sieve with a live display and returns its result. It
// blocks until the sieve finishes, even if the user closes the view first.
func (t *TUI) Run(lo, hi uint64, mode sieve.Mode, opts sieve.Options) ([]uint64, error) {
	type result struct {
		primes []uint64
		err    error
	}

	t.HeaderView.SetText(fmt.Sprintf("[yellow]%s[-]  [%d, %d]  (q to close view)", mode, lo, hi))
	t.ProgressView.SetText("waiting for first segment...")
	t.startTime = time.Now()

	opts.Progress = func(ev sieve.Progress) {
		t.mu.Lock()
		t.last = ev
		t.mu.Unlock()
		if t.stopped.Load() {
			return
		}
		t.App.QueueUpdateDraw(t.render)
	}

	done := make(chan result, 1)
	go func() {
		primes, err := sieve.ComputeWithOptions(lo, hi, mode, opts)
		done <- result{primes, err}
		t.stopped.Store(true)
		t.App.Stop()
	}()

	if err := t.App.Run(); err != nil {
		return nil, err
	}
	t.stopped.Store(true)

	res := <-done
	return res.primes, res.err
}

// render repaints the progress and statistics panels. Called on the UI
// goroutine only.
func (t *TUI) render() {
	t.mu.Lock()
	ev := t.last
	t.mu.Unlock()
	if ev.TotalSegments == 0 {
		return
	}

	elapsed := time.Since(t.startTime)
	bar := progressBar(ev.Segment, ev.TotalSegments, 40)
	t.ProgressView.SetText(fmt.Sprintf("%s %d/%d segments\nwindow [%d, %d]",
		bar, ev.Segment, ev.TotalSegments, ev.WindowLo, ev.WindowHi))

	rate := float64(ev.PrimesSoFar) / elapsed.Seconds()
	t.StatsView.SetText(fmt.Sprintf(
		"primes found: [green]%d[-]\nelapsed: %.1fs\nrate: %.0f primes/s",
		ev.PrimesSoFar, elapsed.Seconds(), rate))
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(done, total, width int) string {
	if total < 1 {
		total = 1
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
