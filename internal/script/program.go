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

// Package script builds AppleScript programs from typed statements.
//
// A Program is assembled from Stmt values and serialised once, by String.
// Generated programs print their result as records separated by control
// characters (see Record), which the format package decodes.
package script

import "strings"

// DefaultApplication is the scripted application name.
const DefaultApplication = "OmniFocus"

// Target selects the object the program body is told to.
type Target int

const (
	FrontDocument Target = iota
	FrontWindow
)

// Program is one complete compiled script.
type Program struct {
	// Application defaults to DefaultApplication when empty.
	Application string
	Target      Target
	Body        []Stmt
}

// New returns a program told to the front document.
func New(body ...Stmt) *Program {
	return &Program{Target: FrontDocument, Body: body}
}

// NewWindow returns a program told to the front window.
func NewWindow(body ...Stmt) *Program {
	return &Program{Target: FrontWindow, Body: body}
}

// Add appends statements to the body.
func (p *Program) Add(stmts ...Stmt) *Program {
	p.Body = append(p.Body, stmts...)
	return p
}

const prelude = `on textOf(v)
	if v is missing value then return ""
	return v as text
end textOf

set fieldSep to character id 31
set recordSep to character id 30
set pathSep to character id 29
set out to ""
`

// String serialises the program to AppleScript source.
func (p *Program) String() string {
	app := p.Application
	if app == "" {
		app = DefaultApplication
	}
	target := Raw("front document")
	if p.Target == FrontWindow {
		target = Raw("front window")
	}

	var b strings.Builder
	b.WriteString(prelude)
	b.WriteString(Render(0, Tell{
		Target: Raw("application " + string(Str(app))),
		Body:   []Stmt{Tell{Target: target, Body: p.Body}},
	}))
	return b.String()
}
