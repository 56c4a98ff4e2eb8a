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

package tools

import (
	"focusmcp/internal/compiler"
	"focusmcp/internal/format"
	"focusmcp/internal/locator"
	"focusmcp/internal/omnifocus"
)

// Catalog returns every tool in presentation order.
func Catalog() []*Tool {
	return []*Tool{
		// Tasks
		operation("create_task", "Create a task in the OmniFocus inbox or in a project, optionally with a tag, dates, estimate and flag.",
			Mutation, compiler.CreateTask, plain(format.CreateTask)),
		operation("edit_task", "Edit an existing task. Only the fields given are changed; newProject moves the task.",
			Mutation, compiler.EditTask, plain(format.EditTask)),
		operation("complete_task", "Mark the first incomplete task with this name as completed.",
			Mutation, compiler.CompleteTask, plain(format.CompleteTask)),
		operation("move_task", "Move a task to the end of another project.",
			Mutation, compiler.MoveTask, plain(format.MoveTask)),
		destructive(operation("delete_task", "Delete a task permanently.",
			Mutation, compiler.DeleteTask, plain(format.DeleteTask))),
		operation("set_task_flag", "Flag or unflag a task.",
			Mutation, compiler.SetTaskFlag, plain(format.SetTaskFlag)),
		operation("set_task_dates", "Set or clear (with none) the due and defer dates and the estimate of a task.",
			Mutation, compiler.SetTaskDates, plain(format.SetTaskDates)),
		operation("list_tasks", "List tasks, optionally limited to a project, a tag, the inbox or flagged tasks. Completed tasks are excluded by default.",
			Query, compiler.ListTasks, plain(format.ListTasks)),
		operation("search_tasks", "Search task names for a text, ignoring case.",
			Query, compiler.SearchTasks, plain(format.SearchTasks)),
		operation("get_task_note", "Read the note of a task.",
			Query, compiler.TaskNote, plain(format.TaskNote)),
		operation("get_task_link", "Build an omnifocus:// deep link to a task.",
			Query, compiler.TaskLink, format.TaskLink),

		// Projects
		operation("create_project", "Create a project at the top level or in a folder.",
			Mutation, compiler.CreateProject, plain(format.CreateProject)),
		operation("edit_project", "Edit an existing project. Only the fields given are changed; newFolder moves the project.",
			Mutation, compiler.EditProject, plain(format.EditProject)),
		operation("move_project", "Move a project into a folder.",
			Mutation, compiler.MoveProject, plain(format.MoveProject)),
		destructive(operation("delete_project", "Delete a project and its tasks permanently.",
			Mutation, compiler.DeleteProject, plain(format.DeleteProject))),
		operation("set_project_flag", "Flag or unflag a project.",
			Mutation, compiler.SetProjectFlag, plain(format.SetProjectFlag)),
		operation("set_project_dates", "Set or clear (with none) the due and defer dates of a project.",
			Mutation, compiler.SetProjectDates, plain(format.SetProjectDates)),
		operation("set_project_status", "Change the status of a project to active, on-hold, completed or dropped.",
			Mutation, compiler.SetProjectStatus, plain(format.SetProjectStatus)),
		operation("archive_project", "Archive a project by completing it, or dropping it when status is dropped.",
			Mutation, compiler.ArchiveProject, plain(format.ArchiveProject)),
		operation("list_projects", "List projects with status, folder and incomplete task count. Completed and dropped projects are excluded by default.",
			Query, compiler.ListProjects, plain(format.ListProjects)),
		operation("get_project_note", "Read the note and details of a project.",
			Query, compiler.ProjectNote, plain(format.ProjectNote)),
		operation("get_project_link", "Build an omnifocus:// deep link to a project.",
			Query, compiler.ProjectLink, format.ProjectLink),

		// Tags and folders
		operation("create_context", "Create a tag, optionally nested under a parent tag.",
			Mutation, compiler.CreateContext, plain(format.CreateContext)),
		operation("list_contexts", "List tags at every level. Hidden tags are excluded by default.",
			Query, compiler.ListContexts, plain(format.ListContexts)),
		operation("get_tag_details", "Show task counts and status of a tag.",
			Query, compiler.TagDetails, plain(format.TagDetails)),
		snapshot("list_tags_hierarchy", "Show the tag tree down to five levels.",
			func(*omnifocus.ListTagsHierarchyArgs) compiler.SnapshotScope { return compiler.SnapshotTags },
			noFail(format.TagsHierarchy)),
		snapshot("list_folders", "List folders with their paths.",
			func(*omnifocus.ListFoldersArgs) compiler.SnapshotScope { return compiler.SnapshotFolders },
			noFail(format.ListFolders)),
		operation("get_folder_details", "Show the projects and subfolders of a folder.",
			Query, compiler.FolderDetails, plain(format.FolderDetails)),
		snapshot("list_folder_hierarchy", "Show the folder tree with its projects, three levels deep.",
			func(*omnifocus.ListFolderHierarchyArgs) compiler.SnapshotScope { return compiler.SnapshotFolders },
			noFail(format.FolderHierarchy)),
		snapshot("resolve_entity", "Show which project, folder, tag or task a name refers to, and any other entities with the same name.",
			resolveScope, resolveEntity),

		// Perspectives
		operation("list_perspectives", "List built-in and custom perspectives.",
			Query, compiler.ListPerspectives, plain(format.ListPerspectives)),
		operation("get_current_perspective", "Show the perspective of the front window.",
			Query, compiler.CurrentPerspective, plain(format.CurrentPerspective)),
		operation("switch_perspective", "Show a perspective in the front window.",
			Mutation, compiler.SwitchPerspective, plain(format.SwitchPerspective)),
		operation("get_perspective_contents", "List the items visible in a perspective, switching to it first when a name is given.",
			Query, compiler.PerspectiveContents, plain(format.PerspectiveContents)),
	}
}

func destructive(t *Tool) *Tool {
	t.Destructive = true
	return t
}

// noFail adapts a hierarchy renderer that cannot fail.
func noFail[T any](f func(*locator.Hierarchy, *T) string) func(*locator.Hierarchy, *T) (string, error) {
	return func(h *locator.Hierarchy, a *T) (string, error) {
		return f(h, a), nil
	}
}

func resolveScope(a *omnifocus.ResolveEntityArgs) compiler.SnapshotScope {
	kind, _ := locator.ParseKind(a.Kind)
	switch kind {
	case locator.KindTag:
		return compiler.SnapshotTags
	case locator.KindTask:
		return compiler.SnapshotTasks
	}
	return compiler.SnapshotFolders
}

func resolveEntity(h *locator.Hierarchy, a *omnifocus.ResolveEntityArgs) (string, error) {
	kind, err := locator.ParseKind(a.Kind)
	if err != nil {
		return "", err
	}
	return format.ResolveEntity(h, locator.Locate(kind, a.Name)), nil
}
