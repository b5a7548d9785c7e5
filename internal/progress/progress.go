package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minBarWidth  = 10

	// logEvery is the percentage step between lines in non-interactive mode.
	logEvery = 10
)

// Bar reports scan progress. On a terminal it redraws a single line;
// otherwise it prints a line every logEvery percent.
type Bar struct {
	mu          sync.Mutex
	w           io.Writer
	label       string
	interactive bool
	width       int
	lastPct     int
	done        bool
}

// New creates a bar on f, detecting whether f is a terminal.
func New(f *os.File, label string) *Bar {
	fd := int(f.Fd())
	interactive := term.IsTerminal(fd)
	width := defaultWidth
	if interactive {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	return NewWriter(f, label, interactive, width)
}

// NewWriter creates a bar on w with explicit terminal settings.
func NewWriter(w io.Writer, label string, interactive bool, width int) *Bar {
	if width <= 0 {
		width = defaultWidth
	}
	return &Bar{w: w, label: label, interactive: interactive, width: width, lastPct: -1}
}

// Update records that done of total steps are complete.
func (b *Bar) Update(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done || total <= 0 {
		return
	}
	if done > total {
		done = total
	}
	pct := done * 100 / total

	if b.interactive {
		fmt.Fprint(b.w, "\r"+b.render(done, total, pct))
		return
	}
	if pct/logEvery != b.lastPct/logEvery || (done == total && pct != b.lastPct) {
		fmt.Fprintf(b.w, "%s: %d/%d (%d%%)\n", b.label, done, total, pct)
	}
	b.lastPct = pct
}

// Finish ends the bar. Further updates are ignored.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done {
		return
	}
	b.done = true
	if b.interactive {
		fmt.Fprintln(b.w)
	}
}

func (b *Bar) render(done, total, pct int) string {
	counter := fmt.Sprintf(" %d/%d %3d%%", done, total, pct)
	barWidth := b.width - len(b.label) - len(counter) - 3
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	filled := barWidth * done / total
	return fmt.Sprintf("%s [%s%s]%s",
		b.label, strings.Repeat("=", filled), strings.Repeat(" ", barWidth-filled), counter)
}
