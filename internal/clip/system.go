package clip

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// System writes to the OS clipboard via atotto/clipboard, falling back to known
// clipboard commands when atotto reports no supported utility.
type System struct{}

func (System) WriteText(ctx context.Context, s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(s); err == nil {
			return nil
		}
	}
	return copyWithCommands(ctx, s)
}

func copyWithCommands(ctx context.Context, s string) error {
	switch runtime.GOOS {
	case "darwin":
		return runClipboardCmd(ctx, "pbcopy", nil, s)
	case "windows":
		// Try clip.exe first; fall back to PowerShell.
		if err := runClipboardCmd(ctx, "cmd", []string{"/c", "clip"}, s); err == nil {
			return nil
		}
		return runClipboardCmd(ctx, "powershell", []string{"-NoProfile", "-Command", "Set-Clipboard"}, s)
	default:
		// Prefer Wayland if available, then X11 fallbacks.
		if err := runClipboardCmd(ctx, "wl-copy", nil, s); err == nil {
			return nil
		}
		if err := runClipboardCmd(ctx, "xclip", []string{"-selection", "clipboard"}, s); err == nil {
			return nil
		}
		return runClipboardCmd(ctx, "xsel", []string{"--clipboard", "--input"}, s)
	}
}

func runClipboardCmd(ctx context.Context, name string, args []string, stdin string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if err := cmd.Run(); err != nil {
		return errors.New(name + ": " + err.Error())
	}
	return nil
}
