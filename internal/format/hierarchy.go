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
	"focusmcp/internal/locator"
	"focusmcp/internal/omnifocus"
)

// DecodeHierarchy rebuilds a snapshot from the pre-order records of a
// compiler.Snapshot script.
func DecodeHierarchy(out string) (*locator.Hierarchy, error) {
	h := &locator.Hierarchy{}
	folders := make([]*locator.Folder, locator.MaxFolderDepth+1)
	tags := make([]*locator.Tag, locator.MaxTagDepth+1)
	var project *locator.Project

	for i, r := range Records(out) {
		switch r.Field(0) {
		case compiler.MarkFolder:
			depth := r.Int(1)
			if depth < 1 || depth > locator.MaxFolderDepth {
				return nil, fmt.Errorf("record %d: folder depth %d out of range", i, depth)
			}
			f := &locator.Folder{ID: r.Field(2), Name: r.Field(3), Hidden: r.Bool(4)}
			if depth == 1 {
				h.Folders = append(h.Folders, f)
			} else {
				parent := folders[depth-1]
				if parent == nil {
					return nil, fmt.Errorf("record %d: folder %q has no parent", i, f.Name)
				}
				parent.Folders = append(parent.Folders, f)
			}
			folders[depth] = f
			for d := depth + 1; d < len(folders); d++ {
				folders[d] = nil
			}
		case compiler.MarkProject:
			depth := r.Int(1)
			project = &locator.Project{
				ID:        r.Field(2),
				Name:      r.Field(3),
				Status:    string(omnifocus.StatusFromScript(r.Field(4))),
				Remaining: r.Int(5),
				Total:     r.Int(6),
			}
			if depth == 0 {
				h.Projects = append(h.Projects, project)
				continue
			}
			if depth > locator.MaxFolderDepth || folders[depth] == nil {
				return nil, fmt.Errorf("record %d: project %q has no folder at depth %d", i, project.Name, depth)
			}
			folders[depth].Projects = append(folders[depth].Projects, project)
		case compiler.MarkTask:
			if project == nil {
				return nil, fmt.Errorf("record %d: task before any project", i)
			}
			project.Tasks = append(project.Tasks, &locator.Task{ID: r.Field(1), Name: r.Field(2), Completed: r.Bool(3)})
		case compiler.MarkInboxTask:
			h.Inbox = append(h.Inbox, &locator.Task{ID: r.Field(1), Name: r.Field(2), Completed: r.Bool(3)})
		case compiler.MarkTag:
			depth := r.Int(1)
			if depth < 1 || depth > locator.MaxTagDepth {
				return nil, fmt.Errorf("record %d: tag depth %d out of range", i, depth)
			}
			t := &locator.Tag{ID: r.Field(2), Name: r.Field(3), Hidden: r.Bool(4), Remaining: r.Int(5), Available: r.Int(6)}
			if depth == 1 {
				h.Tags = append(h.Tags, t)
			} else {
				parent := tags[depth-1]
				if parent == nil {
					return nil, fmt.Errorf("record %d: tag %q has no parent", i, t.Name)
				}
				parent.Tags = append(parent.Tags, t)
			}
			tags[depth] = t
			for d := depth + 1; d < len(tags); d++ {
				tags[d] = nil
			}
		default:
			return nil, fmt.Errorf("record %d: unknown marker %q", i, r.Field(0))
		}
	}
	return h, nil
}

// folderProjects counts the projects of f and its subfolders.
func folderProjects(f *locator.Folder) int {
	n := len(f.Projects)
	for _, sub := range f.Folders {
		n += folderProjects(sub)
	}
	return n
}

// ListFolders renders one line per folder with its path.
func ListFolders(h *locator.Hierarchy, a *omnifocus.ListFoldersArgs) string {
	var lines []string
	var walk func(folders []*locator.Folder, path []string)
	walk = func(folders []*locator.Folder, path []string) {
		for _, f := range folders {
			p := append(append([]string(nil), path...), Name(f.Name))
			if a.IncludeEmptyFolders || folderProjects(f) > 0 {
				line := strings.Join(p, " > ")
				if a.IncludeProjectCounts {
					line += " [" + plural(len(f.Projects), "project", "projects") + "]"
				}
				lines = append(lines, line)
			}
			walk(f.Folders, p)
		}
	}
	walk(h.Folders, nil)
	if len(lines) == 0 {
		return "No folders found"
	}
	return strings.Join(lines, "\n")
}

// FolderHierarchy renders the folder tree with two-space indentation,
// top-level projects first.
func FolderHierarchy(h *locator.Hierarchy, a *omnifocus.ListFolderHierarchyArgs) string {
	var b strings.Builder
	project := func(p *locator.Project, indent string) {
		b.WriteString(indent + "- " + Name(p.Name))
		if a.IncludeTaskCounts {
			b.WriteString(" [" + plural(p.Remaining, "incomplete task", "incomplete tasks") + "]")
		}
		b.WriteByte('\n')
	}
	if len(h.Projects) > 0 {
		b.WriteString("Top-level projects:\n")
		for _, p := range h.Projects {
			project(p, "  ")
		}
		b.WriteByte('\n')
	}
	var walk func(folders []*locator.Folder, depth int)
	walk = func(folders []*locator.Folder, depth int) {
		indent := strings.Repeat("  ", depth)
		for _, f := range folders {
			if !a.IncludeEmptyFolders && folderProjects(f) == 0 {
				continue
			}
			b.WriteString(indent + Name(f.Name) + "/")
			if a.IncludeProjectCounts {
				b.WriteString(" [" + plural(len(f.Projects), "project", "projects") + "]")
			}
			b.WriteByte('\n')
			for _, p := range f.Projects {
				project(p, indent+"  ")
			}
			walk(f.Folders, depth+1)
		}
	}
	walk(h.Folders, 0)
	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return "No folders found"
	}
	return out
}

// TagsHierarchy renders the tag tree with two-space indentation. Hidden
// tags and their children are left out unless asked for.
func TagsHierarchy(h *locator.Hierarchy, a *omnifocus.ListTagsHierarchyArgs) string {
	var lines []string
	var walk func(tags []*locator.Tag, depth int)
	walk = func(tags []*locator.Tag, depth int) {
		for _, t := range tags {
			if t.Hidden && !a.IncludeInactive {
				continue
			}
			line := strings.Repeat("  ", depth) + Name(t.Name)
			if t.Hidden {
				line += " (inactive)"
			}
			if a.IncludeUsageStats {
				line += fmt.Sprintf(" [%d remaining, %d available]", t.Remaining, t.Available)
			}
			lines = append(lines, line)
			walk(t.Tags, depth+1)
		}
	}
	walk(h.Tags, 0)
	if len(lines) == 0 {
		return "No tags found"
	}
	return strings.Join(lines, "\n")
}

func location(m locator.Match) string {
	if len(m.Path) == 0 {
		return m.Scope.String()
	}
	parts := make([]string, len(m.Path))
	for i, p := range m.Path {
		parts[i] = Name(p)
	}
	return strings.Join(parts, " > ") + " (" + m.Scope.String() + ")"
}

// ResolveEntity reports the entity plan picks in h and every other
// candidate with the same name.
func ResolveEntity(h *locator.Hierarchy, plan locator.Plan) string {
	all := plan.FindAll(h)
	if len(all) == 0 {
		return fmt.Sprintf("%s not found: %s\nSearched: %s", plan.Kind, plan.Name, plan.Describe())
	}
	var b strings.Builder
	winner := all[0]
	fmt.Fprintf(&b, "%s: %s (ID: %s)\nLocation: %s\n", plan.Kind, Name(winner.Name), winner.ID, location(winner))
	if len(all) > 1 {
		fmt.Fprintf(&b, "\nOther matches not reachable by name (%d):\n", len(all)-1)
		for _, m := range all[1:] {
			fmt.Fprintf(&b, "- ID: %s, Location: %s\n", m.ID, location(m))
		}
	}
	fmt.Fprintf(&b, "\nSearched: %s", plan.Describe())
	return b.String()
}
