// Package util holds small domain-agnostic helpers shared by the CLI and the engine.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify returns "1 file" or "n files".
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize upper-cases the first byte of s.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalWidth falls back to def when stdout is not a terminal.
func TerminalWidth(def int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return def
}

// Wrap word-wraps s at width columns.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// Ellipsis truncates s to width printable columns, ending with "…" when cut.
func Ellipsis(s string, width int) string {
	return truncate.StringWithTail(s, uint(Max(width, 1)), "…")
}

// FileStem is the base name of path without its extension.
func FileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// ReGroups maps named capture groups of the first match.
func ReGroups(pattern *regexp.Regexp, str string) map[string]string {
	groups := make(map[string]string)
	match := pattern.FindStringSubmatch(str)
	if match == nil {
		return groups
	}

	for i, name := range pattern.SubexpNames() {
		if i > 0 && i < len(match) && name != "" {
			groups[name] = match[i]
		}
	}
	return groups
}

// PrintErasable prints msg on the current line and returns a func that blanks it again.
func PrintErasable(msg string) func() {
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore calls f and drops its error. Meant for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

// Max returns the largest of items, or the zero value when there are none.
func Max[T constraints.Ordered](items ...T) T {
	return pick(items, func(a, b T) bool { return a > b })
}

// Min returns the smallest of items, or the zero value when there are none.
func Min[T constraints.Ordered](items ...T) T {
	return pick(items, func(a, b T) bool { return a < b })
}

func pick[T any](items []T, better func(a, b T) bool) (best T) {
	for i, item := range items {
		if i == 0 || better(item, best) {
			best = item
		}
	}
	return
}
