package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/kailas-cloud/lostmatch/internal/domain/similarity"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// confidenceLabel colors the label by level when color is true.
func confidenceLabel(c similarity.Confidence, color bool) string {
	if !color {
		return c.String()
	}
	switch c.Level() {
	case "high":
		return text.Colors{text.FgGreen, text.Bold}.Sprint(c.String())
	case "possible":
		return text.FgYellow.Sprint(c.String())
	default:
		return text.FgRed.Sprint(c.String())
	}
}
