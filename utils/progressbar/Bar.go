// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Incrementer is a progress counter which is incremented once per
// iteration
type Incrementer interface {
	Increment()
}

// draw returns the bar for current/max progress, width characters wide
func draw(current, max, width float64, elapsed time.Duration) string {
	var bar strings.Builder
	bar.WriteString("|")

	var fraction float64
	if max > 0 {
		fraction = current / max
	}

	filled := int(fraction * width)
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", int(width)-filled))

	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]", fraction*100,
		elapsed.Truncate(time.Second))
	return bar.String()
}

// display overwrites the current terminal line with bar
func display(w io.Writer, bar string) {
	fmt.Fprintf(w, "\n\033[1A\033[K%v", bar)
}
