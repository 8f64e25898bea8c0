package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// IsTerminal returns true if stdout is a terminal (TTY).
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// colorEnabled honors NO_COLOR (https://no-color.org).
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal()
}

// StyleIfTerminal applies the style only when stdout is a color-capable terminal.
func StyleIfTerminal(style lipgloss.Style, content string) string {
	if colorEnabled() {
		return style.Render(content)
	}
	return content
}

// IsInteractive reports whether stdin is a terminal a user can answer prompts on.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
