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
	"strings"

	"focusmcp/internal/compiler"
	"focusmcp/internal/omnifocus"
)

// taskLine renders a name, id, project, tag, flagged record.
func taskLine(r Record) string {
	var b strings.Builder
	b.WriteString(Name(r.Field(0)))
	if project := r.Field(2); project != "" {
		b.WriteString(" [Project: " + Name(project) + "]")
	} else {
		b.WriteString(" [Inbox]")
	}
	if tag := r.Field(3); tag != "" {
		b.WriteString(" [Context: " + Name(tag) + "]")
	}
	if r.Bool(4) {
		b.WriteString(" [Flagged]")
	}
	return b.String()
}

func taskLines(out string) []string {
	recs := Records(out)
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = taskLine(r)
	}
	return lines
}

func ListTasks(out string, _ *omnifocus.ListTasksArgs) string {
	lines := taskLines(out)
	if len(lines) == 0 {
		return "No tasks found"
	}
	return strings.Join(lines, "\n")
}

func SearchTasks(out string, a *omnifocus.SearchTasksArgs) string {
	lines := taskLines(out)
	if len(lines) == 0 {
		return "No tasks found matching: " + a.Query
	}
	return strings.Join(lines, "\n")
}

// projectLine renders name - status [Location: A > B] [N incomplete tasks].
func projectLine(name, status, path string, remaining int) string {
	line := fmt.Sprintf("%s - %s", Name(name), omnifocus.StatusFromScript(status))
	if path != "" {
		line += " [Location: " + Path(path) + "]"
	}
	return line + " [" + plural(remaining, "incomplete task", "incomplete tasks") + "]"
}

func ListProjects(out string, _ *omnifocus.ListProjectsArgs) string {
	recs := Records(out)
	if len(recs) == 0 {
		return "No projects found"
	}
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = projectLine(r.Field(0), r.Field(2), r.Field(3), r.Int(4))
	}
	return strings.Join(lines, "\n")
}

func ListContexts(out string, _ *omnifocus.ListContextsArgs) string {
	recs := Records(out)
	if len(recs) == 0 {
		return "No contexts found"
	}
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = Name(r.Field(0))
		if r.Bool(2) {
			lines[i] += " (inactive)"
		}
	}
	return strings.Join(lines, "\n")
}

func FolderDetails(out string, _ *omnifocus.FolderRefArgs) string {
	var (
		b        strings.Builder
		projects []string
		subs     []string
	)
	for _, r := range Records(out) {
		switch r.Field(0) {
		case compiler.DetailFolder:
			fmt.Fprintf(&b, "Folder: %s\nID: %s\n", r.Field(1), r.Field(2))
			if path := r.Field(3); path != "" {
				fmt.Fprintf(&b, "Parent folder: %s\n", Path(path))
			}
		case compiler.DetailProject:
			projects = append(projects, "- "+projectLine(r.Field(1), r.Field(2), "", r.Int(3)))
		case compiler.DetailSubfolder:
			subs = append(subs, fmt.Sprintf("- %s (%s)", Name(r.Field(1)), plural(r.Int(2), "project", "projects")))
		}
	}
	fmt.Fprintf(&b, "Total projects: %d\n", len(projects))
	if len(projects) > 0 {
		b.WriteString("\nProjects in this folder:\n" + strings.Join(projects, "\n") + "\n")
	}
	if len(subs) > 0 {
		b.WriteString("\nSubfolders:\n" + strings.Join(subs, "\n") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func TagDetails(out string, _ *omnifocus.TagRefArgs) string {
	r := first(out)
	status := "active"
	if r.Bool(2) {
		status = "inactive"
	}
	return fmt.Sprintf("Tag: %s\nID: %s\nStatus: %s\nActive tasks: %d\nCompleted tasks: %d\nRemaining tasks: %d\nAvailable tasks: %d",
		r.Field(0), r.Field(1), status, r.Int(3), r.Int(4), r.Int(5), r.Int(6))
}

func TaskNote(out string, _ *omnifocus.TaskRefArgs) string {
	r := first(out)
	if strings.TrimSpace(r.Field(1)) == "" {
		return fmt.Sprintf("Task %s has no note", r.Field(0))
	}
	return fmt.Sprintf("Note for task %s:\n%s", r.Field(0), r.Field(1))
}

func ProjectNote(out string, _ *omnifocus.ProjectRefArgs) string {
	r := first(out)
	kind := omnifocus.TypeParallel
	switch {
	case r.Bool(4):
		kind = omnifocus.TypeSequential
	case r.Bool(5):
		kind = omnifocus.TypeSingle
	}
	location := "Top level"
	if path := r.Field(3); path != "" {
		location = Path(path)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\nID: %s\nStatus: %s\nLocation: %s\nType: %s\nTasks: %d incomplete of %d\n",
		r.Field(0), r.Field(1), omnifocus.StatusFromScript(r.Field(2)), location, kind, r.Int(6), r.Int(7))
	if note := r.Field(8); strings.TrimSpace(note) != "" {
		b.WriteString("\nNote:\n" + note)
	} else {
		b.WriteString("\nNo note")
	}
	return b.String()
}

func ListPerspectives(out string, _ *omnifocus.NoArgs) string {
	var builtin, custom []string
	for _, r := range Records(out) {
		name := r.Field(0)
		if omnifocus.IsBuiltinPerspective(name) {
			builtin = append(builtin, name)
		} else {
			custom = append(custom, name)
		}
	}
	return fmt.Sprintf("Built-in Perspectives:\n%s\n\nCustom Perspectives:\n%s\n\nTotal: %d perspectives",
		strings.Join(builtin, "\n"), strings.Join(custom, "\n"), len(builtin)+len(custom))
}

func CurrentPerspective(out string, _ *omnifocus.NoArgs) string {
	name := first(out).Field(0)
	if name == "" {
		return "No perspective selected (possibly in a custom view)"
	}
	return "Current perspective: " + name
}

// itemKind maps the class of a perspective row to its label.
func itemKind(class, project string) string {
	switch {
	case strings.Contains(class, "project"):
		return "[Project]"
	case strings.Contains(class, "task"):
		if project == "" {
			return "[Inbox Task]"
		}
		return "[Task]"
	case strings.Contains(class, "folder"):
		return "[Folder]"
	case strings.Contains(class, "tag"):
		return "[Tag]"
	}
	return "[" + Name(class) + "]"
}

func PerspectiveContents(out string, _ *omnifocus.PerspectiveContentsArgs) string {
	var (
		name      string
		items     []string
		truncated int
	)
	for _, r := range Records(out) {
		switch r.Field(0) {
		case compiler.ContentPerspective:
			name = r.Field(1)
		case compiler.ContentItem:
			line := Name(r.Field(1)) + " " + itemKind(r.Field(2), r.Field(3))
			if tag := r.Field(4); tag != "" {
				line += " @" + Name(tag)
			}
			if due := r.Field(6); due != "" {
				line += " (Due: " + due + ")"
			}
			if r.Bool(5) {
				line += " [Flagged]"
			}
			items = append(items, line)
		case compiler.ContentTruncated:
			truncated = r.Int(1)
		}
	}
	if len(items) == 0 {
		return "No items visible in perspective: " + name
	}
	text := fmt.Sprintf("Perspective: %s\nItems: %d\n\n%s", name, len(items), strings.Join(items, "\n"))
	if truncated > 0 {
		text += fmt.Sprintf("\n\n... (showing first %d items)", truncated)
	}
	return text
}
