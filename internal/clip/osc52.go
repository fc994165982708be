package clip

import (
	"context"
	"io"
	"os"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// OSC52 asks the terminal emulator to set the clipboard with an OSC 52 escape sequence.
// It works over SSH where no local clipboard utility can reach the user's machine.
type OSC52 struct {
	out io.Writer
}

// NewOSC52 writes sequences to out; nil means the controlling terminal's stderr.
func NewOSC52(out io.Writer) OSC52 {
	if out == nil {
		out = os.Stderr
	}
	return OSC52{out: out}
}

func (o OSC52) WriteText(ctx context.Context, s string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq := osc52.New(strings.ReplaceAll(s, "\r\n", "\n"))
	switch {
	case strings.TrimSpace(os.Getenv("TMUX")) != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(o.out)
	return err
}
