// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package format decodes the records printed by compiled scripts and
// renders the text returned to callers.
package format

import (
	"regexp"
	"strconv"
	"strings"

	"focusmcp/internal/script"
)

// Record is one decoded output record.
type Record []string

// Field returns field i, or "" when the record is shorter.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Int returns field i as an integer, 0 when it is not a number.
func (r Record) Int(i int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.Field(i)))
	if err != nil {
		return 0
	}
	return n
}

// Bool reports whether field i is the text "true".
func (r Record) Bool(i int) bool {
	return strings.EqualFold(strings.TrimSpace(r.Field(i)), "true")
}

// Records splits script output into records and fields. Empty records
// are dropped.
func Records(out string) []Record {
	var recs []Record
	for _, raw := range strings.Split(out, string(script.RecordSep)) {
		raw = strings.TrimLeft(raw, "\r\n")
		if raw == "" {
			continue
		}
		recs = append(recs, Record(strings.Split(raw, string(script.FieldSep))))
	}
	return recs
}

// first returns the first record, or an empty one.
func first(out string) Record {
	recs := Records(out)
	if len(recs) == 0 {
		return Record{}
	}
	return recs[0]
}

var nameEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `|`, `\|`)

// Name escapes the characters that delimit bracketed annotations.
func Name(s string) string {
	return nameEscaper.Replace(s)
}

// Path renders a separator-joined folder path as "A > B".
func Path(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, string(script.PathSep))
	for i, p := range parts {
		parts[i] = Name(p)
	}
	return strings.Join(parts, " > ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

// Filter controls sanitisation and truncation of rendered output.
type Filter struct {
	// MaxChars truncates output to this many runes; 0 means unlimited.
	MaxChars     int
	StripANSI    bool
	StripControl bool
}

// DefaultFilter strips escape sequences and control characters without
// truncating.
func DefaultFilter() Filter {
	return Filter{StripANSI: true, StripControl: true}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]|\x1b\][^\x1b]*(?:\x07|\x1b\\)`)

// Apply sanitises output and reports whether it was truncated.
func (f Filter) Apply(output string) (string, bool) {
	if f.StripANSI {
		output = ansiPattern.ReplaceAllString(output, "")
	}
	if f.StripControl {
		output = stripControlChars(output)
	}
	return truncate(output, f.MaxChars)
}

func stripControlChars(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func truncate(input string, max int) (string, bool) {
	if max <= 0 || len(input) <= max {
		return input, false
	}
	runes := []rune(input)
	if len(runes) <= max {
		return input, false
	}
	return string(runes[:max]), true
}
