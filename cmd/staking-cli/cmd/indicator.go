package cmd

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// termIndicator prints a transient waiting line. On a terminal the line is
// erased when hidden.
type termIndicator struct {
	out         *os.File
	interactive bool

	mu    sync.Mutex
	shown bool
}

func newTermIndicator(out *os.File) *termIndicator {
	return &termIndicator{out: out, interactive: term.IsTerminal(int(out.Fd()))}
}

func (t *termIndicator) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shown {
		return
	}
	t.shown = true
	if t.interactive {
		fmt.Fprint(t.out, "Waiting for confirmation...")
	} else {
		fmt.Fprintln(t.out, "Waiting for confirmation...")
	}
}

func (t *termIndicator) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.shown {
		return
	}
	t.shown = false
	if t.interactive {
		fmt.Fprint(t.out, "\r\033[K")
	}
}
