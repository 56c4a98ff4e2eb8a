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

// CreateTask adds a task to the inbox, or to the end of a project. The
// record returned is name, id, project name.
func CreateTask(a *omnifocus.CreateTaskArgs) (*script.Program, error) {
	p := script.New()
	item := script.Ident(newVar)
	project, inProject := omnifocus.Ref(a.Project)
	tag, hasTag := omnifocus.Ref(a.Context)

	if inProject {
		p.Add(resolve(locator.KindProject, project, projectVar)...)
	}
	if hasTag {
		p.Add(resolve(locator.KindTag, tag, tagVar)...)
	}

	props := script.Raw("{name:" + string(script.Str(a.Name)) + "}")
	if inProject {
		p.Add(script.Set{Target: item, Value: script.Raw("make new task at end of tasks of " + projectVar + " with properties " + string(props))})
	} else {
		p.Add(script.Set{Target: item, Value: script.Raw("make new inbox task with properties " + string(props))})
	}

	if a.Note != nil {
		p.Add(script.AssignField(item, "note", script.Str(*a.Note)))
	}
	ds, err := dates(item, a.DueDate, a.DeferDate)
	if err != nil {
		return nil, err
	}
	p.Add(ds...)
	if a.EstimatedMinutes != nil {
		p.Add(script.AssignField(item, "estimated minutes", script.Int(*a.EstimatedMinutes)))
	}
	if a.Flagged != nil {
		p.Add(script.AssignField(item, "flagged", script.Bool(*a.Flagged)))
	}
	if hasTag {
		p.Add(script.AssignField(item, "primary tag", script.Ident(tagVar)))
	}
	projectName := script.Str("")
	if inProject {
		projectName = text("name", script.Ident(projectVar))
	}
	p.Add(result(text("name", item), text("id", item), projectName))
	return p, nil
}

// EditTask changes the fields that are present. Tag and destination
// project are resolved before the task is touched.
func EditTask(a *omnifocus.EditTaskArgs) (*script.Program, error) {
	p := script.New()
	task := script.Ident(taskVar)
	p.Add(resolveTask(a.TaskName, omnifocus.Deref(a.Project), taskVar, false)...)

	tag, hasTag := omnifocus.Ref(a.NewContext)
	if hasTag {
		p.Add(resolve(locator.KindTag, tag, tagVar)...)
	}
	dest, moving := omnifocus.Ref(a.NewProject)
	if moving {
		p.Add(resolve(locator.KindProject, dest, destVar)...)
	}

	if a.NewName != nil {
		p.Add(script.AssignField(task, "name", script.Str(*a.NewName)))
	}
	if a.NewNote != nil {
		p.Add(script.AssignField(task, "note", script.Str(*a.NewNote)))
	}
	ds, err := dates(task, a.NewDueDate, a.NewDeferDate)
	if err != nil {
		return nil, err
	}
	p.Add(ds...)
	if a.Flagged != nil {
		p.Add(script.AssignField(task, "flagged", script.Bool(*a.Flagged)))
	}
	if a.EstimatedMinutes != nil {
		p.Add(script.AssignField(task, "estimated minutes", script.Int(*a.EstimatedMinutes)))
	}
	if hasTag {
		p.Add(script.AssignField(task, "primary tag", script.Ident(tagVar)))
	}
	if moving {
		p.Add(moveTask(task, script.Ident(destVar)))
	}
	p.Add(result(text("name", task), text("id", task)))
	return p, nil
}

func moveTask(task, project script.Expr) script.Stmt {
	return script.Command{Text: script.Raw("move " + string(task) + " to end of tasks of " + string(project))}
}

// CompleteTask marks the first incomplete task of that name complete.
func CompleteTask(a *omnifocus.TaskRefArgs) (*script.Program, error) {
	task := script.Ident(taskVar)
	p := script.New(resolveTask(a.TaskName, omnifocus.Deref(a.Project), taskVar, true)...)
	p.Add(
		script.AssignField(task, "completed", script.Bool(true)),
		result(text("name", task), text("id", task)),
	)
	return p, nil
}

// MoveTask moves a task to the end of another project. The record is
// name, id, destination project name.
func MoveTask(a *omnifocus.MoveTaskArgs) (*script.Program, error) {
	task := script.Ident(taskVar)
	dest := script.Ident(destVar)
	p := script.New(resolveTask(a.TaskName, omnifocus.Deref(a.FromProject), taskVar, false)...)
	p.Add(resolve(locator.KindProject, a.ToProject, destVar)...)
	p.Add(
		moveTask(task, dest),
		result(text("name", task), text("id", task), text("name", dest)),
	)
	return p, nil
}

// DeleteTask captures the name, then deletes the task.
func DeleteTask(a *omnifocus.TaskRefArgs) (*script.Program, error) {
	task := script.Ident(taskVar)
	name := script.Ident("deletedName")
	p := script.New(resolveTask(a.TaskName, omnifocus.Deref(a.Project), taskVar, false)...)
	p.Add(
		script.Set{Target: name, Value: script.Of("name", task)},
		script.Command{Text: script.Raw("delete " + taskVar)},
		result(name),
	)
	return p, nil
}

// SetTaskFlag records name and new flag state.
func SetTaskFlag(a *omnifocus.SetTaskFlagArgs) (*script.Program, error) {
	task := script.Ident(taskVar)
	p := script.New(resolveTask(a.TaskName, omnifocus.Deref(a.Project), taskVar, false)...)
	p.Add(
		script.AssignField(task, "flagged", script.Bool(*a.Flagged)),
		result(text("name", task), text("flagged", task)),
	)
	return p, nil
}

func SetTaskDates(a *omnifocus.SetTaskDatesArgs) (*script.Program, error) {
	task := script.Ident(taskVar)
	p := script.New(resolveTask(a.TaskName, omnifocus.Deref(a.Project), taskVar, false)...)
	ds, err := dates(task, a.DueDate, a.DeferDate)
	if err != nil {
		return nil, err
	}
	p.Add(ds...)
	if a.EstimatedMinutes != nil {
		p.Add(script.AssignField(task, "estimated minutes", script.Int(*a.EstimatedMinutes)))
	}
	p.Add(result(text("name", task), text("id", task)))
	return p, nil
}

// TaskNote returns name and note of a task.
func TaskNote(a *omnifocus.TaskRefArgs) (*script.Program, error) {
	task := script.Ident(taskVar)
	p := script.New(resolveTask(a.TaskName, omnifocus.Deref(a.Project), taskVar, false)...)
	p.Add(result(text("name", task), text("note", task)))
	return p, nil
}

// TaskLink returns name, id and containing project name of a task.
func TaskLink(a *omnifocus.TaskLinkArgs) (*script.Program, error) {
	task := script.Ident(taskVar)
	project := script.Ident("projectText")
	p := script.New(resolveTask(a.TaskName, omnifocus.Deref(a.Project), taskVar, false)...)
	p.Add(
		script.Set{Target: project, Value: script.Str("")},
		script.Try{Body: []script.Stmt{
			script.Set{Target: project, Value: script.Of("name", script.Of("containing project", task))},
		}},
		result(text("name", task), text("id", task), project),
	)
	return p, nil
}
