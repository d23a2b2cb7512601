package notifier

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"MusicTycoon/internal/model"
)

var kindColors = map[model.EventKind]*color.Color{
	model.EventViral:       color.New(color.FgMagenta, color.Bold),
	model.EventScandal:     color.New(color.FgRed, color.Bold),
	model.EventMarketShift: color.New(color.FgCyan),
	model.EventRelease:     color.New(color.FgGreen),
	model.EventRetired:     color.New(color.FgYellow),
	model.EventInfo:        color.New(color.FgWhite),
}

// ConsoleNotifier prints events and reports to a terminal.
type ConsoleNotifier struct {
	mu  sync.Mutex
	Out io.Writer
}

// NewConsoleNotifier writes to out, or stdout when out is nil.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{Out: out}
}

// Send writes a multi-line report.
func (c *ConsoleNotifier) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintln(c.Out, text); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Publish prints one event line, colored by kind.
func (c *ConsoleNotifier) Publish(evt model.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.Out, ColorizeEvent(evt))
}

// ColorizeEvent renders evt like FormatEvent with its kind tag colored.
// With color disabled it is FormatEvent.
func ColorizeEvent(evt model.Event) string {
	if color.NoColor {
		return FormatEvent(evt)
	}
	tag := fmt.Sprintf("%-12s", evt.Kind)
	if c, ok := kindColors[evt.Kind]; ok {
		tag = c.Sprint(tag)
	}
	return fmt.Sprintf("[%8.1fs] %s %s", evt.At, tag, evt.Text)
}
