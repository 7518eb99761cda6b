package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
)

const (
	valueWidth = 8
	stateWidth = 4
)

// center centres s in a field width characters wide, placing the odd
// padding character on the right. Longer strings are not truncated.
func center(s string, width int) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// writeTable writes one line per state of table: its action values
// followed by the state components. The header holds the action names,
// or a0, a1, ... if names does not name every action.
func writeTable(w io.Writer, table *qtable.Table, names []string,
	color bool) error {
	if len(names) != table.Actions() {
		names = make([]string, table.Actions())
		for a := range names {
			names[a] = fmt.Sprintf("a%d", a)
		}
	}

	var header strings.Builder
	for _, name := range names {
		header.WriteString(center(name, valueWidth))
	}
	header.WriteString(" | ")
	for i := range table.Cardinalities() {
		header.WriteString(center(fmt.Sprintf("s%d", i), stateWidth))
	}

	au := aurora.NewAurora(color)
	if _, err := fmt.Fprintln(w, au.Bold(header.String())); err != nil {
		return fmt.Errorf("writeTable: %v", err)
	}

	var err error
	var line strings.Builder
	table.Each(func(state []int, row []float64) {
		if err != nil {
			return
		}

		line.Reset()
		for _, v := range row {
			line.WriteString(center(fmt.Sprintf("%.2f", v), valueWidth))
		}
		line.WriteString(" | ")
		for _, s := range state {
			line.WriteString(center(fmt.Sprintf("%d", s), stateWidth))
		}
		_, err = fmt.Fprintln(w, line.String())
	})
	if err != nil {
		return fmt.Errorf("writeTable: %v", err)
	}
	return nil
}
