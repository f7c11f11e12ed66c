package observability

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ANSI escapes for role-colored transcript output.
const (
	colorSystem    = "\033[1;33m" // bright yellow
	colorUser      = "\033[1;32m" // bright green
	colorAssistant = "\033[1;36m" // bright cyan
	colorReset     = "\033[0m"
)

var transcriptRule = strings.Repeat("-", 100)

// ConsoleObserver renders conversation transcript events as role-colored
// blocks on a writer, one block per appended message followed by a dashed
// rule. Events without "role" and "content" data are ignored, so the same
// observer can sit on a multi-fanout without echoing driver internals.
type ConsoleObserver struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewConsoleObserver creates a ConsoleObserver writing to w with color
// enabled.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	return &ConsoleObserver{w: w, color: true}
}

// SetColor toggles ANSI color output. Disable for dumb terminals or when
// NO_COLOR is set.
func (o *ConsoleObserver) SetColor(enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.color = enabled
}

func (o *ConsoleObserver) OnEvent(ctx context.Context, event Event) {
	role, ok := event.Data["role"].(string)
	if !ok {
		return
	}
	content, ok := event.Data["content"].(string)
	if !ok {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	color, reset := o.roleColor(role)
	fmt.Fprintf(o.w, "%sRole: %s%s\n", color, role, reset)
	fmt.Fprintf(o.w, "%sContent:\n%s%s\n", color, content, reset)
	fmt.Fprintf(o.w, "%s\n\n", transcriptRule)
}

func (o *ConsoleObserver) roleColor(role string) (color, reset string) {
	if !o.color {
		return "", ""
	}
	switch role {
	case "system":
		return colorSystem, colorReset
	case "user":
		return colorUser, colorReset
	case "assistant":
		return colorAssistant, colorReset
	default:
		return "", ""
	}
}
