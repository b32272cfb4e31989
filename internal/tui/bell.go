package tui

import (
	"io"
	"os"
)

// Bell rings the terminal bell when a timer completes. It implements
// timer.Alerter.
type Bell struct {
	Out io.Writer
}

// Alert writes the BEL control character
func (b Bell) Alert() error {
	out := b.Out
	if out == nil {
		out = os.Stderr
	}
	_, err := io.WriteString(out, "\a")
	return err
}
