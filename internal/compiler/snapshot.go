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

	"focusmcp/internal/locator"
	"focusmcp/internal/script"
)

// SnapshotScope selects the parts of the document a snapshot covers.
type SnapshotScope int

const (
	SnapshotFolders SnapshotScope = 1 << iota
	SnapshotTasks
	SnapshotTags
)

// Markers of snapshot records, all emitted in pre-order:
//
//	F depth id name hidden                         folder, depth 1 to 3
//	P depth id name status remaining total         project, depth 0 at top level
//	K id name completed                            task of the preceding project
//	I id name completed                            inbox task
//	G depth id name hidden remaining available     tag, depth 1 to 5
const (
	MarkFolder    = "F"
	MarkProject   = "P"
	MarkTask      = "K"
	MarkInboxTask = "I"
	MarkTag       = "G"
)

// Snapshot compiles a script that dumps the hierarchy so it can be rebuilt
// and searched in memory. Folders and projects are included whenever tasks
// are, since tasks are attached to the preceding project record.
func Snapshot(scope SnapshotScope) *script.Program {
	p := script.New()
	if scope&(SnapshotFolders|SnapshotTasks) != 0 {
		withTasks := scope&SnapshotTasks != 0
		p.Add(script.Repeat{Var: "topProject", In: script.Raw("every project"),
			Body: snapshotProject(script.Ident("topProject"), 0, withTasks)})
		p.Add(folderWalk(1, "", func(folder script.Expr, level int) []script.Stmt {
			v := string(folder) + "Project"
			return []script.Stmt{
				emit(script.Str(MarkFolder), script.Int(level), text("id", folder), text("name", folder), text("hidden", folder)),
				script.Repeat{Var: v, In: script.Of("projects", folder), Body: snapshotProject(script.Ident(v), level, withTasks)},
			}
		}))
		if withTasks {
			t := script.Ident("inboxItem")
			p.Add(script.Repeat{Var: string(t), In: script.Raw("every inbox task"), Body: []script.Stmt{
				emit(script.Str(MarkInboxTask), text("id", t), text("name", t), text("completed", t)),
			}})
		}
	}
	if scope&SnapshotTags != 0 {
		p.Add(tagWalk(1, ""))
	}
	p.Add(finish())
	return p
}

func snapshotProject(project script.Expr, depth int, withTasks bool) []script.Stmt {
	stmts := []script.Stmt{emit(
		script.Str(MarkProject),
		script.Int(depth),
		text("id", project),
		text("name", project),
		script.Coerce(script.Of("status", project)),
		script.AsText(script.Count(every("flattened task", project, "completed is false"))),
		script.AsText(script.Count(every("flattened task", project, ""))),
	)}
	if withTasks {
		t := script.Ident(taskLoopVar)
		stmts = append(stmts, script.Repeat{Var: taskLoopVar, In: every("task", project, ""), Body: []script.Stmt{
			emit(script.Str(MarkTask), text("id", t), text("name", t), text("completed", t)),
		}})
	}
	return stmts
}

func tagWalk(depth int, parent script.Expr) script.Stmt {
	v := fmt.Sprintf("tag%d", depth)
	t := script.Ident(v)
	in := script.Raw("every tag")
	if parent != "" {
		in = script.Of("tags", parent)
	}
	body := []script.Stmt{emit(
		script.Str(MarkTag),
		script.Int(depth),
		text("id", t),
		text("name", t),
		text("hidden", t),
		text("remaining task count", t),
		text("available task count", t),
	)}
	if depth < locator.MaxTagDepth {
		body = append(body, tagWalk(depth+1, t))
	}
	return script.Repeat{Var: v, In: in, Body: body}
}
