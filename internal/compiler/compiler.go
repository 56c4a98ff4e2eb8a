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

// Package compiler turns validated tool arguments into AppleScript programs.
//
// Each exported function compiles one operation. Mutations resolve their
// targets first, guard every resolution, then apply one statement per
// present field and return a record describing the result. Queries walk the
// document and append one record per match to the out variable.
package compiler

import (
	"fmt"

	"focusmcp/internal/locator"
	"focusmcp/internal/omnifocus"
	"focusmcp/internal/script"
)

// Variables holding resolved entities.
const (
	taskVar     = "targetTask"
	projectVar  = "targetProject"
	folderVar   = "targetFolder"
	tagVar      = "targetTag"
	destVar     = "destination"
	parentVar   = "parentTag"
	newVar      = "newItem"
	outVar      = "out"
	pathVar     = "pathText"
	tagTextVar  = "tagText"
	previousVar = "previousStatus"
	cursorVar   = "cursor"
	countVar    = "itemCount"
)

var out = script.Ident(outVar)

// resolve emits the lookup of a project, folder or tag into target and a
// guard raising "<Kind> not found: <name>".
func resolve(kind locator.Kind, name, target string) []script.Stmt {
	stmts := locator.Locate(kind, name).Fragment(target)
	return append(stmts, script.AssertFound(script.Ident(target), kind.String(), name))
}

// resolveTask looks a task up, inside project when it is not empty.
// incompleteOnly skips completed tasks of the same name.
func resolveTask(name, project, target string, incompleteOnly bool) []script.Stmt {
	stmts := locator.LocateTask(name, project, incompleteOnly).Fragment(target)
	return append(stmts, script.AssertFound(script.Ident(target), locator.KindTask.String(), name))
}

// assignTag resolves the tag before anything is changed and sets it as the
// primary tag of obj. A missing tag aborts the script.
func assignTag(obj script.Expr, name string) []script.Stmt {
	stmts := resolve(locator.KindTag, name, tagVar)
	return append(stmts, script.AssignField(obj, "primary tag", script.Ident(tagVar)))
}

// setDate assigns a date property from components, so the script does not
// depend on the locale's date format. "none" clears the property.
func setDate(obj script.Expr, field, value string) ([]script.Stmt, error) {
	d, err := omnifocus.ParseDate(value)
	if err != nil {
		return nil, err
	}
	if d.Clear {
		return []script.Stmt{script.AssignField(obj, field, script.MissingValue)}, nil
	}
	v := script.Ident("dateValue")
	return []script.Stmt{
		script.Set{Target: v, Value: script.Raw("current date")},
		script.AssignField(v, "day", script.Int(1)),
		script.AssignField(v, "year", script.Int(d.Time.Year())),
		script.AssignField(v, "month", script.Int(int(d.Time.Month()))),
		script.AssignField(v, "day", script.Int(d.Time.Day())),
		script.AssignField(v, "time", script.Int(d.SecondsOfDay())),
		script.AssignField(obj, field, v),
	}, nil
}

// dates emits the due and defer assignments for the present values.
func dates(obj script.Expr, due, deferred *string) ([]script.Stmt, error) {
	var stmts []script.Stmt
	for _, f := range []struct {
		field string
		value *string
	}{{"due date", due}, {"defer date", deferred}} {
		if f.value == nil {
			continue
		}
		s, err := setDate(obj, f.field, *f.value)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s...)
	}
	return stmts, nil
}

// projectType emits the sequential and singleton flags for t.
func projectType(obj script.Expr, t omnifocus.ProjectType) []script.Stmt {
	return []script.Stmt{
		script.AssignField(obj, "sequential", script.Bool(t == omnifocus.TypeSequential)),
		script.AssignField(obj, "singleton action holder", script.Bool(t == omnifocus.TypeSingle)),
	}
}

// containerPath leaves the folder path of obj in pathText, segments joined
// by the path separator. It is empty for top-level items.
func containerPath(obj script.Expr) []script.Stmt {
	path := script.Ident(pathVar)
	cur := script.Ident(cursorVar)
	return []script.Stmt{
		script.Set{Target: path, Value: script.Str("")},
		script.Try{Body: []script.Stmt{
			script.Set{Target: cur, Value: script.Of("container", obj)},
			script.RepeatWhile{
				Cond: script.Eq(script.Of("class", cur), script.Raw("folder")),
				Body: []script.Stmt{
					script.If{
						Cond: script.Eq(path, script.Str("")),
						Then: []script.Stmt{script.Set{Target: path, Value: script.Of("name", cur)}},
						Else: []script.Stmt{script.Set{Target: path, Value: script.Path(script.Of("name", cur), path)}},
					},
					script.Set{Target: cur, Value: script.Of("container", cur)},
				},
			},
		}},
	}
}

// primaryTagName leaves the name of the primary tag of obj in tagText.
func primaryTagName(obj script.Expr) []script.Stmt {
	v := script.Ident(tagTextVar)
	return []script.Stmt{
		script.Set{Target: v, Value: script.Str("")},
		script.Try{Body: []script.Stmt{
			script.Set{Target: v, Value: script.Of("name", script.Of("primary tag", obj))},
		}},
	}
}

// emit appends one record to out.
func emit(fields ...script.Expr) script.Stmt {
	return script.Set{Target: out, Value: script.Concat(out, script.Paren(script.Record(fields...)))}
}

// finish returns the accumulated records.
func finish() script.Stmt {
	return script.Return{Value: out}
}

// result returns a single record.
func result(fields ...script.Expr) script.Stmt {
	return script.Return{Value: script.Record(fields...)}
}

func text(prop string, obj script.Expr) script.Expr {
	return script.AsText(script.Of(prop, obj))
}

// eachProject runs body for every project: top-level projects first, then
// the projects of each folder in pre-order down to MaxFolderDepth.
func eachProject(body func(p script.Expr) []script.Stmt) []script.Stmt {
	top := "topProject"
	return []script.Stmt{
		script.Repeat{Var: top, In: script.Raw("every project"), Body: body(script.Ident(top))},
		folderWalk(1, "", func(folder script.Expr, _ int) []script.Stmt {
			v := string(folder) + "Project"
			return []script.Stmt{script.Repeat{
				Var:  v,
				In:   script.Of("projects", folder),
				Body: body(script.Ident(v)),
			}}
		}),
	}
}

// folderWalk visits folders level by level under parent, calling visit for
// each folder before descending into its subfolders.
func folderWalk(level int, parent script.Expr, visit func(folder script.Expr, level int) []script.Stmt) script.Stmt {
	v := fmt.Sprintf("folder%d", level)
	in := script.Raw("every folder")
	if parent != "" {
		in = script.Of("folders", parent)
	}
	body := visit(script.Ident(v), level)
	if level < locator.MaxFolderDepth {
		body = append(body, folderWalk(level+1, script.Ident(v), visit))
	}
	return script.Repeat{Var: v, In: in, Body: body}
}

// every renders "every <noun>[ of container][ whose cond]".
func every(noun string, container, cond script.Expr) script.Expr {
	e := "every " + noun
	if container != "" {
		e += " of " + string(container)
	}
	if cond != "" {
		e += " whose " + string(cond)
	}
	return script.Raw(e)
}
