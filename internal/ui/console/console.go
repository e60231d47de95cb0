package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiBlue   = "\033[34m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiGray   = "\033[90m"
)

// Writer orchestrates styled console output to stdout/stderr.
type Writer struct {
	out   io.Writer
	err   io.Writer
	theme theme

	mu    sync.Mutex
	wrote bool
}

// New constructs a console writer. Colours are enabled when stdout looks
// like a TTY and the NO_COLOR convention is not set.
func New(out, err io.Writer) *Writer {
	if out == nil {
		out = io.Discard
	}
	if err == nil {
		err = io.Discard
	}

	var enabled bool
	if _, noColor := os.LookupEnv("NO_COLOR"); !noColor {
		enabled = detectTTY(out)
	}

	return &Writer{
		out:   out,
		err:   err,
		theme: theme{colorEnabled: enabled},
	}
}

func detectTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Section prints a highlighted section heading.
func (w *Writer) Section(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.wrote {
		_, _ = fmt.Fprintln(w.out)
	}
	headline := w.theme.style(fmt.Sprintf("== %s ==", strings.TrimSpace(title)), ansiBold, ansiBlue)
	_, _ = fmt.Fprintln(w.out, headline)
	w.wrote = true
}

// Info prints a neutral informational line.
func (w *Writer) Info(format string, args ...any) {
	w.printLine(w.out, "[i]", ansiBlue, nil, format, args...)
}

// Success prints a success line.
func (w *Writer) Success(format string, args ...any) {
	w.printLine(w.out, "[+]", ansiGreen, []string{ansiBold}, format, args...)
}

// Warn prints a warning line to stderr.
func (w *Writer) Warn(format string, args ...any) {
	w.printLine(w.err, "[!]", ansiYellow, nil, format, args...)
}

// Error prints an error line to stderr.
func (w *Writer) Error(format string, args ...any) {
	w.printLine(w.err, "[x]", ansiRed, []string{ansiBold}, format, args...)
}

// KV prints an aligned key/value block, for showing a single entity.
func (w *Writer) KV(pairs [][2]string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(pairs) == 0 {
		return
	}
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		key := w.theme.style(fmt.Sprintf("%-*s", width, p[0]), ansiGray)
		_, _ = fmt.Fprintf(w.out, "  %s  %s\n", key, p[1])
	}
	w.wrote = true
}

// Table prints a header row and aligned data rows, for listings.
func (w *Writer) Table(header []string, rows [][]string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(header) == 0 {
		return
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range header {
		fmt.Fprintf(&b, "%-*s  ", widths[i], h)
	}
	_, _ = fmt.Fprintln(w.out, w.theme.style(strings.TrimRight(b.String(), " "), ansiBold))

	for _, row := range rows {
		b.Reset()
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
			}
		}
		_, _ = fmt.Fprintln(w.out, strings.TrimRight(b.String(), " "))
	}
	w.wrote = true
}

// RawLine prints a line verbatim to stdout.
func (w *Writer) RawLine(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintf(w.out, format+"\n", args...)
	w.wrote = true
}

func (w *Writer) printLine(target io.Writer, icon, iconColor string, msgStyles []string, format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	styledIcon := w.theme.style(icon, iconColor, ansiBold)
	styledMsg := w.theme.style(msg, msgStyles...)
	_, _ = fmt.Fprintf(target, "  %s %s\n", styledIcon, styledMsg)
	w.wrote = true
}

type theme struct {
	colorEnabled bool
}

func (t theme) style(text string, codes ...string) string {
	if !t.colorEnabled || len(codes) == 0 {
		return text
	}
	var b strings.Builder
	for _, code := range codes {
		if code != "" {
			b.WriteString(code)
		}
	}
	b.WriteString(text)
	b.WriteString(ansiReset)
	return b.String()
}
