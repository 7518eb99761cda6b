package progressbar

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ProgressBar implements a concurrent progress bar. The bar is redrawn
// in a separate goroutine every updateEvery, and optionally on every
// call to Increment.
type ProgressBar struct {
	// width determines the number of characters wide that the progress
	// bar should be
	width float64

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%.
	maxProgress float64

	mu              sync.Mutex
	currentProgress float64
	startTime       time.Time
	out             io.Writer

	incrementEvent chan struct{}
	closeEvent     chan struct{}
	done           chan struct{}
	displayed      bool
	closed         bool

	updateEvery       time.Duration
	updateAtIncrement bool
}

// NewProgressBar returns a new progress bar that is width characters
// wide and reaches 100% capacity after max Increment() calls.
func NewProgressBar(width, max int, updateEvery time.Duration,
	updateAtIncrement bool) *ProgressBar {
	return &ProgressBar{
		width:             float64(width),
		maxProgress:       float64(max),
		out:               os.Stderr,
		incrementEvent:    make(chan struct{}, 1),
		closeEvent:        make(chan struct{}),
		done:              make(chan struct{}),
		updateEvery:       updateEvery,
		updateAtIncrement: updateAtIncrement,
	}
}

// SetOutput sets the writer the progress bar is displayed on. It must
// be called before Display.
func (p *ProgressBar) SetOutput(w io.Writer) {
	p.out = w
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	if p.currentProgress < p.maxProgress && !p.closed {
		p.currentProgress++
	}
	p.mu.Unlock()

	// Never block the caller if a redraw is already pending
	select {
	case p.incrementEvent <- struct{}{}:
	default:
	}
}

// Progress returns the number of increments so far
func (p *ProgressBar) Progress() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.currentProgress)
}

// Close stops displaying the progress bar after drawing it a final
// time, and cleans up any resources the progress bar is using. Close
// returns an error if called more than once.
func (p *ProgressBar) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("close: close on closed progress bar")
	}
	p.closed = true
	displayed := p.displayed
	p.mu.Unlock()

	close(p.closeEvent)
	if displayed {
		<-p.done
		fmt.Fprintln(p.out) // Jump to next line after printed bar
	}
	return nil
}

// Display starts displaying the progress bar on the screen. It should
// only be called once.
func (p *ProgressBar) Display() {
	p.mu.Lock()
	if p.displayed || p.closed {
		p.mu.Unlock()
		return
	}
	p.displayed = true
	p.startTime = time.Now()
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		tick := time.NewTicker(p.updateEvery)
		defer tick.Stop()

		for {
			select {
			case <-p.incrementEvent:
				if !p.updateAtIncrement {
					continue
				}

			case <-tick.C:

			case <-p.closeEvent:
				p.draw()
				return
			}
			p.draw()
		}
	}()
}

func (p *ProgressBar) draw() {
	p.mu.Lock()
	bar := draw(p.currentProgress, p.maxProgress, p.width,
		time.Since(p.startTime))
	p.mu.Unlock()

	display(p.out, bar)
}
