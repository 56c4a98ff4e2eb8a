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

const taskLoopVar = "eachTask"

// emitTask appends name, id, project name, tag name, flagged.
func emitTask(task, projectName script.Expr) []script.Stmt {
	return append(primaryTagName(task),
		emit(text("name", task), text("id", task), projectName, script.Ident(tagTextVar), text("flagged", task)))
}

// eachTask loops over the tasks of in and emits each.
func eachTask(in, projectName script.Expr) script.Stmt {
	t := script.Ident(taskLoopVar)
	return script.Repeat{Var: taskLoopVar, In: in, Body: emitTask(t, projectName)}
}

// allTasks walks inbox tasks and then the tasks of every project.
func allTasks(cond script.Expr) []script.Stmt {
	stmts := []script.Stmt{eachTask(every("inbox task", "", cond), script.Str(""))}
	return append(stmts, eachProject(func(project script.Expr) []script.Stmt {
		return []script.Stmt{eachTask(every("task", project, cond), text("name", project))}
	})...)
}

// ListTasks emits name, id, project name, tag name and flagged for every
// matching task. Completed tasks are skipped unless asked for.
func ListTasks(a *omnifocus.ListTasksArgs) (*script.Program, error) {
	p := script.New()
	var conds []script.Expr
	if !a.IncludeCompleted {
		conds = append(conds, "completed is false")
	}
	if a.FlaggedOnly {
		conds = append(conds, "flagged is true")
	}
	if tag, ok := omnifocus.Ref(a.Context); ok {
		p.Add(resolve(locator.KindTag, tag, tagVar)...)
		conds = append(conds, script.Raw("primary tag is "+tagVar))
	}
	cond := script.And(conds...)

	project, inProject := omnifocus.Ref(a.Project)
	switch {
	case a.InboxOnly:
		p.Add(eachTask(every("inbox task", "", cond), script.Str("")))
	case inProject:
		p.Add(resolve(locator.KindProject, project, projectVar)...)
		p.Add(eachTask(every("task", script.Ident(projectVar), cond), text("name", script.Ident(projectVar))))
	default:
		p.Add(allTasks(cond)...)
	}
	p.Add(finish())
	return p, nil
}

// SearchTasks matches task names containing the query, ignoring case.
func SearchTasks(a *omnifocus.SearchTasksArgs) (*script.Program, error) {
	conds := []script.Expr{script.Raw("name contains " + string(script.Str(a.Query)))}
	if !a.IncludeCompleted {
		conds = append(conds, "completed is false")
	}
	p := script.New(allTasks(script.And(conds...))...)
	p.Add(finish())
	return p, nil
}

// ListProjects emits name, id, status, folder path and incomplete task
// count. Completed and dropped projects are skipped unless asked for.
func ListProjects(a *omnifocus.ListProjectsArgs) (*script.Program, error) {
	folder, byFolder := omnifocus.Ref(a.Folder)
	p := script.New(eachProject(func(project script.Expr) []script.Stmt {
		status := script.Of("status", project)
		remaining := script.Count(every("flattened task", project, "completed is false"))

		var conds []script.Expr
		if !a.IncludeCompleted || a.IncompleteOnly {
			conds = append(conds, script.Raw(string(status)+" is not done status"))
		}
		if !a.IncludeCompleted {
			conds = append(conds, script.Raw(string(status)+" is not dropped status"))
		}
		if a.EmptyProjectsOnly {
			conds = append(conds, script.Eq(remaining, script.Int(0)))
		}

		record := []script.Stmt{emit(
			text("name", project),
			text("id", project),
			script.Coerce(status),
			script.Ident(pathVar),
			script.AsText(remaining),
		)}
		body := containerPath(project)
		if byFolder {
			// Whole path segments only: "Work" does not match "Homework".
			wrapped := script.Paren(script.Path(script.Str(""), script.Ident(pathVar), script.Str("")))
			segment := script.Paren(script.Path(script.Str(""), script.Str(folder), script.Str("")))
			body = append(body, script.If{Cond: script.Raw(string(wrapped) + " contains " + string(segment)), Then: record})
		} else {
			body = append(body, record...)
		}
		if cond := script.And(conds...); cond != "" {
			return []script.Stmt{script.If{Cond: cond, Then: body}}
		}
		return body
	})...)
	p.Add(finish())
	return p, nil
}
