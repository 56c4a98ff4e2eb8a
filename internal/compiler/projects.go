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
	"focusmcp/internal/omnifocus"
	"focusmcp/internal/script"
)

// CreateProject makes a project at the top level or at the end of a
// folder. The record is name, id, folder name.
func CreateProject(a *omnifocus.CreateProjectArgs) (*script.Program, error) {
	p := script.New()
	item := script.Ident(newVar)
	folder, inFolder := omnifocus.Ref(a.Folder)
	if inFolder {
		p.Add(resolve(locator.KindFolder, folder, folderVar)...)
	}

	cmd := "make new project"
	if inFolder {
		cmd += " at end of projects of " + folderVar
	}
	cmd += " with properties {name:" + string(script.Str(a.Name)) + "}"
	p.Add(script.Set{Target: item, Value: script.Raw(cmd)})

	if a.Note != nil {
		p.Add(script.AssignField(item, "note", script.Str(*a.Note)))
	}
	if a.Type != nil {
		t, err := omnifocus.ParseProjectType(*a.Type)
		if err != nil {
			return nil, err
		}
		p.Add(projectType(item, t)...)
	}
	ds, err := dates(item, a.DueDate, a.DeferDate)
	if err != nil {
		return nil, err
	}
	p.Add(ds...)
	if a.Flagged != nil {
		p.Add(script.AssignField(item, "flagged", script.Bool(*a.Flagged)))
	}
	folderName := script.Str("")
	if inFolder {
		folderName = text("name", script.Ident(folderVar))
	}
	p.Add(result(text("name", item), text("id", item), folderName))
	return p, nil
}

// EditProject changes the fields that are present. The tag and the
// destination folder are resolved before the project is touched.
func EditProject(a *omnifocus.EditProjectArgs) (*script.Program, error) {
	project := script.Ident(projectVar)
	p := script.New(resolve(locator.KindProject, a.ProjectName, projectVar)...)

	tag, hasTag := omnifocus.Ref(a.NewContext)
	if hasTag {
		p.Add(resolve(locator.KindTag, tag, tagVar)...)
	}
	dest, moving := omnifocus.Ref(a.NewFolder)
	if moving {
		p.Add(resolve(locator.KindFolder, dest, destVar)...)
	}

	if a.NewName != nil {
		p.Add(script.AssignField(project, "name", script.Str(*a.NewName)))
	}
	if a.NewNote != nil {
		p.Add(script.AssignField(project, "note", script.Str(*a.NewNote)))
	}
	if a.NewType != nil {
		t, err := omnifocus.ParseProjectType(*a.NewType)
		if err != nil {
			return nil, err
		}
		p.Add(projectType(project, t)...)
	}
	if a.Flagged != nil {
		p.Add(script.AssignField(project, "flagged", script.Bool(*a.Flagged)))
	}
	ds, err := dates(project, a.NewDueDate, a.NewDeferDate)
	if err != nil {
		return nil, err
	}
	p.Add(ds...)
	if hasTag {
		p.Add(script.AssignField(project, "primary tag", script.Ident(tagVar)))
	}
	if moving {
		p.Add(moveProject(project, script.Ident(destVar)))
	}
	p.Add(result(text("name", project), text("id", project)))
	return p, nil
}

func moveProject(project, folder script.Expr) script.Stmt {
	return script.Command{Text: script.Raw("move " + string(project) + " to end of projects of " + string(folder))}
}

// MoveProject moves a project into a folder. The record is name, id,
// folder name.
func MoveProject(a *omnifocus.MoveProjectArgs) (*script.Program, error) {
	project := script.Ident(projectVar)
	dest := script.Ident(destVar)
	p := script.New(resolve(locator.KindProject, a.ProjectName, projectVar)...)
	p.Add(resolve(locator.KindFolder, a.ToFolder, destVar)...)
	p.Add(
		moveProject(project, dest),
		result(text("name", project), text("id", project), text("name", dest)),
	)
	return p, nil
}

func DeleteProject(a *omnifocus.ProjectRefArgs) (*script.Program, error) {
	name := script.Ident("deletedName")
	p := script.New(resolve(locator.KindProject, a.ProjectName, projectVar)...)
	p.Add(
		script.Set{Target: name, Value: script.Of("name", script.Ident(projectVar))},
		script.Command{Text: script.Raw("delete " + projectVar)},
		result(name),
	)
	return p, nil
}

func SetProjectFlag(a *omnifocus.SetProjectFlagArgs) (*script.Program, error) {
	project := script.Ident(projectVar)
	p := script.New(resolve(locator.KindProject, a.ProjectName, projectVar)...)
	p.Add(
		script.AssignField(project, "flagged", script.Bool(*a.Flagged)),
		result(text("name", project), text("flagged", project)),
	)
	return p, nil
}

func SetProjectDates(a *omnifocus.SetProjectDatesArgs) (*script.Program, error) {
	project := script.Ident(projectVar)
	p := script.New(resolve(locator.KindProject, a.ProjectName, projectVar)...)
	ds, err := dates(project, a.DueDate, a.DeferDate)
	if err != nil {
		return nil, err
	}
	p.Add(ds...)
	p.Add(result(text("name", project), text("id", project)))
	return p, nil
}

// statusSteps moves obj to status. Completed and dropped are flags; active
// and on hold are status references, applied after both flags are cleared.
func statusSteps(obj script.Expr, status omnifocus.ProjectStatus) ([]script.Stmt, error) {
	switch status {
	case omnifocus.StatusDropped:
		return []script.Stmt{script.AssignField(obj, "dropped", script.Bool(true))}, nil
	case omnifocus.StatusCompleted:
		return []script.Stmt{script.AssignField(obj, "completed", script.Bool(true))}, nil
	case omnifocus.StatusActive, omnifocus.StatusOnHold:
		ref := script.Raw("active status")
		if status == omnifocus.StatusOnHold {
			ref = script.Raw("on hold status")
		}
		return []script.Stmt{
			script.AssignField(obj, "dropped", script.Bool(false)),
			script.AssignField(obj, "completed", script.Bool(false)),
			script.AssignField(obj, "status", ref),
		}, nil
	}
	return nil, fmt.Errorf("invalid project status %q", status)
}

// transition captures the previous status, applies the new one and returns
// name, previous status, new status.
func transition(name string, status omnifocus.ProjectStatus) (*script.Program, error) {
	project := script.Ident(projectVar)
	steps, err := statusSteps(project, status)
	if err != nil {
		return nil, err
	}
	p := script.New(resolve(locator.KindProject, name, projectVar)...)
	p.Add(script.Set{Target: script.Ident(previousVar), Value: script.Coerce(script.Of("status", project))})
	p.Add(steps...)
	p.Add(result(text("name", project), script.Ident(previousVar), script.Str(string(status))))
	return p, nil
}

func SetProjectStatus(a *omnifocus.SetProjectStatusArgs) (*script.Program, error) {
	status, err := omnifocus.ParseProjectStatus(a.Status)
	if err != nil {
		return nil, err
	}
	return transition(a.ProjectName, status)
}

// ArchiveProject completes a project, or drops it when asked.
func ArchiveProject(a *omnifocus.ArchiveProjectArgs) (*script.Program, error) {
	status := omnifocus.StatusCompleted
	if a.Status != nil && *a.Status == string(omnifocus.StatusDropped) {
		status = omnifocus.StatusDropped
	}
	return transition(a.ProjectName, status)
}

// ProjectNote returns name, id, status, folder path, sequential,
// singleton, incomplete count, total count and note.
func ProjectNote(a *omnifocus.ProjectRefArgs) (*script.Program, error) {
	project := script.Ident(projectVar)
	p := script.New(resolve(locator.KindProject, a.ProjectName, projectVar)...)
	p.Add(containerPath(project)...)
	p.Add(result(
		text("name", project),
		text("id", project),
		script.Coerce(script.Of("status", project)),
		script.Ident(pathVar),
		text("sequential", project),
		text("singleton action holder", project),
		script.Count(every("flattened task", project, "completed is false")),
		script.Count(every("flattened task", project, "")),
		text("note", project),
	))
	return p, nil
}

// ProjectLink returns name, id and folder path of a project.
func ProjectLink(a *omnifocus.ProjectLinkArgs) (*script.Program, error) {
	project := script.Ident(projectVar)
	p := script.New(resolve(locator.KindProject, a.ProjectName, projectVar)...)
	p.Add(containerPath(project)...)
	p.Add(result(text("name", project), text("id", project), script.Ident(pathVar)))
	return p, nil
}
