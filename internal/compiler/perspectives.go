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

package compiler

import (
	"fmt"

	"focusmcp/internal/omnifocus"
	"focusmcp/internal/script"
)

// Markers of the records emitted by PerspectiveContents.
const (
	ContentPerspective = "perspective"
	ContentItem        = "item"
	ContentTruncated   = "truncated"
)

// ListPerspectives emits one record per perspective name.
func ListPerspectives(*omnifocus.NoArgs) (*script.Program, error) {
	name := script.Ident("eachName")
	return script.New(
		script.Repeat{Var: string(name), In: script.Raw("perspective names"), Body: []script.Stmt{
			emit(script.AsText(script.Of("contents", name))),
		}},
		finish(),
	), nil
}

// CurrentPerspective returns the perspective of the front window, or an
// empty name when none is selected.
func CurrentPerspective(*omnifocus.NoArgs) (*script.Program, error) {
	return script.NewWindow(script.Try{
		Body:    []script.Stmt{result(script.AsText(script.Raw("perspective name")))},
		OnError: []script.Stmt{result(script.Str(""))},
	}), nil
}

// switchTo shows a perspective in the front window. An unknown name raises
// a not-found error.
func switchTo(name string) script.Stmt {
	return script.Try{
		Body: []script.Stmt{script.Set{Target: script.Raw("perspective name"), Value: script.Str(name)}},
		OnError: []script.Stmt{script.Raise{
			Message: script.Str("Perspective not found: " + name),
			Number:  script.ErrNotFound,
		}},
	}
}

func SwitchPerspective(a *omnifocus.SwitchPerspectiveArgs) (*script.Program, error) {
	return script.NewWindow(
		switchTo(a.PerspectiveName),
		result(script.AsText(script.Raw("perspective name"))),
	), nil
}

// PerspectiveContents emits a perspective record (name), then one item
// record per visible row (name, class, project, tag, flagged, due), and a
// truncated record (limit) when rows were left out.
func PerspectiveContents(a *omnifocus.PerspectiveContentsArgs) (*script.Program, error) {
	limit := omnifocus.DefaultPerspectiveLimit
	if a.Limit != nil {
		limit = *a.Limit
	}
	p := script.NewWindow()
	if name, ok := omnifocus.Ref(a.PerspectiveName); ok {
		p.Add(switchTo(name))
	}

	current := script.Ident("perspectiveText")
	count := script.Ident(countVar)
	row := script.Ident("treeItem")
	value := script.Ident("itemValue")
	project := script.Ident("projectText")
	due := script.Ident("dueText")
	flagged := script.Ident("flaggedText")

	optional := func(v, e script.Expr) []script.Stmt {
		return []script.Stmt{
			script.Set{Target: v, Value: script.Str("")},
			script.Try{Body: []script.Stmt{script.Set{Target: v, Value: script.AsText(e)}}},
		}
	}

	item := []script.Stmt{
		script.If{
			Cond: script.Raw(fmt.Sprintf("%s >= %d", count, limit)),
			Then: []script.Stmt{emit(script.Str(ContentTruncated), script.Int(limit)), script.ExitRepeatIf{}},
		},
		script.Set{Target: value, Value: script.Of("value", row)},
	}
	item = append(item, optional(project, script.Of("name", script.Of("containing project", value)))...)
	item = append(item, optional(due, script.Of("due date", value))...)
	item = append(item, optional(flagged, script.Of("flagged", value))...)
	item = append(item, primaryTagName(value)...)
	item = append(item,
		emit(
			script.Str(ContentItem),
			text("name", value),
			script.Coerce(script.Of("class", value)),
			project,
			script.Ident(tagTextVar),
			flagged,
			due,
		),
		script.Set{Target: count, Value: script.Raw(string(count) + " + 1")},
	)

	p.Add(optional(current, script.Raw("perspective name"))...)
	p.Add(
		emit(script.Str(ContentPerspective), current),
		script.Set{Target: count, Value: script.Int(0)},
		script.Tell{Target: script.Raw("content"), Body: []script.Stmt{
			script.Repeat{Var: string(row), In: script.Raw("every tree"), Body: []script.Stmt{
				script.Try{Body: item},
			}},
		}},
		finish(),
	)
	return p, nil
}
