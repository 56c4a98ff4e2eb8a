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
	"focusmcp/internal/locator"
	"focusmcp/internal/omnifocus"
	"focusmcp/internal/script"
)

// CreateContext makes a tag, nested under parent when given. The record is
// name, id, parent name.
func CreateContext(a *omnifocus.CreateContextArgs) (*script.Program, error) {
	p := script.New()
	item := script.Ident(newVar)
	parent, nested := omnifocus.Ref(a.Parent)
	if nested {
		p.Add(resolve(locator.KindTag, parent, parentVar)...)
	}
	cmd := "make new tag"
	if nested {
		cmd += " at end of tags of " + parentVar
	}
	cmd += " with properties {name:" + string(script.Str(a.Name)) + "}"
	p.Add(script.Set{Target: item, Value: script.Raw(cmd)})

	parentName := script.Str("")
	if nested {
		parentName = text("name", script.Ident(parentVar))
	}
	p.Add(result(text("name", item), text("id", item), parentName))
	return p, nil
}

// ListContexts emits name, id, hidden for every tag at any depth. Hidden
// tags are skipped unless asked for.
func ListContexts(a *omnifocus.ListContextsArgs) (*script.Program, error) {
	cond := script.Expr("hidden is false")
	if a.IncludeInactive {
		cond = ""
	}
	tag := script.Ident("eachTag")
	return script.New(
		script.Repeat{
			Var:  string(tag),
			In:   every("flattened tag", "", cond),
			Body: []script.Stmt{emit(text("name", tag), text("id", tag), text("hidden", tag))},
		},
		finish(),
	), nil
}

// TagDetails returns name, id, hidden, incomplete task count, completed
// task count, remaining count and available count of one tag.
func TagDetails(a *omnifocus.TagRefArgs) (*script.Program, error) {
	tag := script.Ident(tagVar)
	p := script.New(resolve(locator.KindTag, a.TagName, tagVar)...)
	p.Add(result(
		text("name", tag),
		text("id", tag),
		text("hidden", tag),
		script.AsText(script.Count(every("flattened task", "", "primary tag is "+tagVar+" and completed is false"))),
		script.AsText(script.Count(every("flattened task", "", "primary tag is "+tagVar+" and completed is true"))),
		text("remaining task count", tag),
		text("available task count", tag),
	))
	return p, nil
}
