package progressbar

import (
	"io"
	"os"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed to the screen.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	width           float64
	maxProgress     float64
	currentProgress float64
	startTime       time.Time
	out             io.Writer
}

// NewManualProgressBar returns a new ManualProgressBar writing to
// standard error
func NewManualProgressBar(width, max int) *ManualProgressBar {
	return &ManualProgressBar{
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
		out:         os.Stderr,
	}
}

// SetOutput sets the writer the progress bar is displayed on
func (p *ManualProgressBar) SetOutput(w io.Writer) {
	p.out = w
}

// Increment increments the internal progress counter and displays the
// updated bar
func (p *ManualProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
	p.Display()
}

// Display displays the progress bar on the screen
func (p *ManualProgressBar) Display() {
	display(p.out, draw(p.currentProgress, p.maxProgress, p.width,
		time.Since(p.startTime)))
}
