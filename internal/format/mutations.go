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

package format

import (
	"fmt"

	"focusmcp/internal/omnifocus"
)

// created renders "Successfully created <noun>: name (ID: id)" followed by
// where it was created.
func created(noun, out, where string) string {
	r := first(out)
	msg := fmt.Sprintf("Successfully created %s: %s (ID: %s)", noun, r.Field(0), r.Field(1))
	if where != "" {
		msg += " " + where
	}
	return msg
}

func CreateTask(out string, _ *omnifocus.CreateTaskArgs) string {
	project := first(out).Field(2)
	if project == "" {
		return created("task", out, "in Inbox")
	}
	return created("task", out, "in project: "+project)
}

func CreateProject(out string, _ *omnifocus.CreateProjectArgs) string {
	folder := first(out).Field(2)
	if folder == "" {
		return created("project", out, "")
	}
	return created("project", out, "in folder: "+folder)
}

func CreateContext(out string, _ *omnifocus.CreateContextArgs) string {
	parent := first(out).Field(2)
	if parent == "" {
		return created("context", out, "")
	}
	return created("context", out, "under: "+parent)
}

func EditTask(out string, _ *omnifocus.EditTaskArgs) string {
	return "Task updated: " + first(out).Field(0)
}

func EditProject(out string, _ *omnifocus.EditProjectArgs) string {
	return "Project updated: " + first(out).Field(0)
}

func CompleteTask(out string, _ *omnifocus.TaskRefArgs) string {
	return "Task completed: " + first(out).Field(0)
}

func MoveTask(out string, _ *omnifocus.MoveTaskArgs) string {
	r := first(out)
	return fmt.Sprintf("Task moved: %s to project %s", r.Field(0), r.Field(2))
}

func MoveProject(out string, _ *omnifocus.MoveProjectArgs) string {
	r := first(out)
	return fmt.Sprintf("Project moved: %s to folder %s", r.Field(0), r.Field(2))
}

func DeleteTask(out string, _ *omnifocus.TaskRefArgs) string {
	return "Task deleted: " + first(out).Field(0)
}

func DeleteProject(out string, _ *omnifocus.ProjectRefArgs) string {
	return "Project deleted: " + first(out).Field(0)
}

func SetTaskFlag(out string, _ *omnifocus.SetTaskFlagArgs) string {
	r := first(out)
	return fmt.Sprintf("Task flag updated: %s (flagged: %t)", r.Field(0), r.Bool(1))
}

func SetProjectFlag(out string, _ *omnifocus.SetProjectFlagArgs) string {
	r := first(out)
	return fmt.Sprintf("Project flag updated: %s (flagged: %t)", r.Field(0), r.Bool(1))
}

func SetTaskDates(out string, _ *omnifocus.SetTaskDatesArgs) string {
	return "Task dates updated: " + first(out).Field(0)
}

func SetProjectDates(out string, _ *omnifocus.SetProjectDatesArgs) string {
	return "Project dates updated: " + first(out).Field(0)
}

// statusChange renders a name, previous status, new status record.
func statusChange(out string) string {
	r := first(out)
	return fmt.Sprintf("Project %s status changed from %s to %s",
		r.Field(0), omnifocus.StatusFromScript(r.Field(1)), omnifocus.StatusFromScript(r.Field(2)))
}

func SetProjectStatus(out string, _ *omnifocus.SetProjectStatusArgs) string {
	return statusChange(out)
}

func ArchiveProject(out string, _ *omnifocus.ArchiveProjectArgs) string {
	return statusChange(out)
}

func SwitchPerspective(out string, _ *omnifocus.SwitchPerspectiveArgs) string {
	return "Successfully switched to perspective: " + first(out).Field(0)
}
