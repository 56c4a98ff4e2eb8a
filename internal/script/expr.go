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

package script

import (
	"strconv"
	"strings"
)

// Expr is an AppleScript expression in its concrete syntax.
// Build expressions with the constructors below so that every string
// literal goes through Escape.
type Expr string

// MissingValue is AppleScript's null.
const MissingValue Expr = "missing value"

// Record and path separators emitted by generated scripts. Field values never
// contain these characters in practice, and the formatter splits on them.
const (
	FieldSep  = '\x1f'
	RecordSep = '\x1e'
	PathSep   = '\x1d'
)

// Variables holding the separators, declared in the program prelude.
const (
	fieldSepVar  Expr = "fieldSep"
	recordSepVar Expr = "recordSep"
	pathSepVar   Expr = "pathSep"
)

// Escape makes s safe to place between double quotes in a script.
// Backslashes are escaped first so the quote escapes are not doubled.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Str returns a quoted, escaped string literal.
func Str(s string) Expr {
	return Expr(`"` + Escape(s) + `"`)
}

// Ident refers to a script variable or a bare term.
func Ident(name string) Expr {
	return Expr(name)
}

// Raw wraps trusted script text. Never pass caller input to Raw.
func Raw(text string) Expr {
	return Expr(text)
}

func Int(n int) Expr {
	return Expr(strconv.Itoa(n))
}

func Bool(b bool) Expr {
	if b {
		return "true"
	}
	return "false"
}

// Of builds "prop of obj".
func Of(prop string, obj Expr) Expr {
	return Expr(prop + " of " + string(obj))
}

// Concat joins expressions with the & operator.
func Concat(parts ...Expr) Expr {
	items := make([]string, len(parts))
	for i, part := range parts {
		items[i] = string(part)
	}
	return Expr(strings.Join(items, " & "))
}

// Paren wraps e in parentheses.
func Paren(e Expr) Expr {
	return "(" + e + ")"
}

func Eq(a, b Expr) Expr {
	return a + " is " + b
}

func IsMissing(e Expr) Expr {
	return e + " is missing value"
}

func NotMissing(e Expr) Expr {
	return e + " is not missing value"
}

func Not(e Expr) Expr {
	return "not " + Paren(e)
}

// And joins conditions; empty conditions are skipped.
func And(conds ...Expr) Expr {
	return joinConds(" and ", conds)
}

// Or joins conditions; empty conditions are skipped.
func Or(conds ...Expr) Expr {
	return joinConds(" or ", conds)
}

func joinConds(op string, conds []Expr) Expr {
	kept := make([]string, 0, len(conds))
	for _, c := range conds {
		if c == "" {
			continue
		}
		kept = append(kept, string(c))
	}
	if len(kept) == 1 {
		return Expr(kept[0])
	}
	for i, c := range kept {
		kept[i] = "(" + c + ")"
	}
	return Expr(strings.Join(kept, op))
}

// AsText coerces e to text, mapping missing value to the empty string.
func AsText(e Expr) Expr {
	return Expr("my textOf(" + string(e) + ")")
}

// Record joins field expressions into one record of the output stream.
func Record(fields ...Expr) Expr {
	parts := make([]Expr, 0, len(fields)*2)
	for i, f := range fields {
		if i > 0 {
			parts = append(parts, fieldSepVar)
		}
		parts = append(parts, f)
	}
	parts = append(parts, recordSepVar)
	return Concat(parts...)
}

// Path joins path segments with the path separator.
func Path(segments ...Expr) Expr {
	if len(segments) == 0 {
		return `""`
	}
	parts := make([]Expr, 0, len(segments)*2)
	for i, s := range segments {
		if i > 0 {
			parts = append(parts, pathSepVar)
		}
		parts = append(parts, s)
	}
	return Concat(parts...)
}

// Coerce renders "((e) as text)". Evaluated inside the application tell it
// keeps enumerations such as project status readable. The outer parentheses
// matter because "as" binds looser than "&".
func Coerce(e Expr) Expr {
	return Paren(Paren(e) + " as text")
}

// Count renders "(count of (e))".
func Count(e Expr) Expr {
	return Paren("count of " + Paren(e))
}
