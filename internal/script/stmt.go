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
	"fmt"
	"strings"
)

// ErrNotFound is the error number raised by resolution guards. The executor
// maps it to a resolution failure.
const ErrNotFound = 4040

// Stmt is one statement of a generated script.
type Stmt interface {
	render(w *writer)
}

// Set assigns Value to Target.
type Set struct {
	Target Expr
	Value  Expr
}

func (s Set) render(w *writer) {
	w.linef("set %s to %s", s.Target, s.Value)
}

// Command is a bare command such as "delete x" or "move x to y".
type Command struct {
	Text Expr
}

func (c Command) render(w *writer) {
	w.line(string(c.Text))
}

// Tell scopes Body to Target.
type Tell struct {
	Target Expr
	Body   []Stmt
}

func (t Tell) render(w *writer) {
	w.linef("tell %s", t.Target)
	w.block(t.Body)
	w.line("end tell")
}

// Try runs Body and swallows errors, or runs OnError when set.
type Try struct {
	Body    []Stmt
	OnError []Stmt
	// ErrVar names the variable receiving the error message in OnError.
	ErrVar string
}

func (t Try) render(w *writer) {
	w.line("try")
	w.block(t.Body)
	if len(t.OnError) > 0 {
		if t.ErrVar != "" {
			w.linef("on error %s", t.ErrVar)
		} else {
			w.line("on error")
		}
		w.block(t.OnError)
	}
	w.line("end try")
}

type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (i If) render(w *writer) {
	w.linef("if %s then", i.Cond)
	w.block(i.Then)
	if len(i.Else) > 0 {
		w.line("else")
		w.block(i.Else)
	}
	w.line("end if")
}

// Repeat iterates Var over the items of In.
type Repeat struct {
	Var  string
	In   Expr
	Body []Stmt
}

func (r Repeat) render(w *writer) {
	w.linef("repeat with %s in %s", r.Var, r.In)
	w.block(r.Body)
	w.line("end repeat")
}

// RepeatWhile loops while Cond holds.
type RepeatWhile struct {
	Cond Expr
	Body []Stmt
}

func (r RepeatWhile) render(w *writer) {
	w.linef("repeat while %s", r.Cond)
	w.block(r.Body)
	w.line("end repeat")
}

// ExitRepeatIf leaves the innermost loop when Cond holds, or always when
// Cond is empty.
type ExitRepeatIf struct {
	Cond Expr
}

func (e ExitRepeatIf) render(w *writer) {
	if e.Cond == "" {
		w.line("exit repeat")
		return
	}
	w.linef("if %s then exit repeat", e.Cond)
}

// Raise aborts the script with a message and error number.
type Raise struct {
	Message Expr
	Number  int
}

func (r Raise) render(w *writer) {
	if r.Number != 0 {
		w.linef("error %s number %d", r.Message, r.Number)
		return
	}
	w.linef("error %s", r.Message)
}

type Return struct {
	Value Expr
}

func (r Return) render(w *writer) {
	w.linef("return %s", r.Value)
}

// Considering applies a comparison attribute such as "case" to Body.
type Considering struct {
	Attribute string
	Body      []Stmt
}

func (c Considering) render(w *writer) {
	w.linef("considering %s", c.Attribute)
	w.block(c.Body)
	w.line("end considering")
}

type Comment string

func (c Comment) render(w *writer) {
	text := strings.ReplaceAll(string(c), "\n", " ")
	w.line("-- " + text)
}

// Block groups statements without adding a scope.
type Block []Stmt

func (b Block) render(w *writer) {
	for _, s := range b {
		if s != nil {
			s.render(w)
		}
	}
}

// DeclareScope initialises a resolution variable to missing value.
func DeclareScope(name string) Stmt {
	return Set{Target: Ident(name), Value: MissingValue}
}

// AssignField sets a property of obj.
func AssignField(obj Expr, field string, value Expr) Stmt {
	return Set{Target: Of(field, obj), Value: value}
}

// AssertFound raises "<kind> not found: <name>" when target was not resolved.
func AssertFound(target Expr, kind, name string) Stmt {
	return If{
		Cond: IsMissing(target),
		Then: []Stmt{Raise{Message: Str(kind + " not found: " + name), Number: ErrNotFound}},
	}
}

// Append adds value to the text accumulated in variable name.
func Append(name string, value Expr) Stmt {
	return Set{Target: Ident(name), Value: Concat(Ident(name), value)}
}

type writer struct {
	b     strings.Builder
	depth int
}

func (w *writer) line(s string) {
	for i := 0; i < w.depth; i++ {
		w.b.WriteByte('\t')
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

func (w *writer) block(stmts []Stmt) {
	w.depth++
	for _, s := range stmts {
		if s != nil {
			s.render(w)
		}
	}
	w.depth--
}

// Render serialises statements at the given indentation depth.
func Render(depth int, stmts ...Stmt) string {
	w := &writer{depth: depth}
	for _, s := range stmts {
		if s != nil {
			s.render(w)
		}
	}
	return w.b.String()
}
