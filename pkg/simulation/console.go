package simulation

import (
	"fmt"
	"io"
)

// ConsoleObserver prints one human-readable line per record
type ConsoleObserver struct {
	w io.Writer
}

// NewConsoleObserver creates a console observer writing to w
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	return &ConsoleObserver{w: w}
}

// Observe writes the record line. Write errors are ignored, the console is not a contract.
func (c *ConsoleObserver) Observe(record TelemetryRecord) {
	_, _ = fmt.Fprintln(c.w, FormatLine(record))
}

// FormatLine renders a record the way it appears on the console
func FormatLine(record TelemetryRecord) string {
	line := fmt.Sprintf("[%s] Alt: %.2fft, Speed: %.2fkts, Pitch: %.2f°, Vib: %.2fg",
		record.Phase(), record.Altitude, record.Airspeed, record.Pitch, record.Vibration)
	if record.EngineFailure {
		line += " [ENGINE FAILURE]"
	}
	return line
}
