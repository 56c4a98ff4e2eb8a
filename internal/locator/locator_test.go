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

package locator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"focusmcp/internal/script"
)

func project(id, name string, tasks ...*Task) *Project {
	return &Project{ID: id, Name: name, Tasks: tasks}
}

func folder(name string, projects []*Project, children ...*Folder) *Folder {
	return &Folder{ID: "f-" + name, Name: name, Projects: projects, Folders: children}
}

func tag(name string, children ...*Tag) *Tag {
	return &Tag{ID: "t-" + name, Name: name, Tags: children}
}

// layeredProjects has a project named Dup at every depth.
func layeredProjects() *Hierarchy {
	return &Hierarchy{
		Projects: []*Project{project("p0", "Dup")},
		Folders: []*Folder{
			folder("A", []*Project{project("p1", "Dup")},
				folder("A1", []*Project{project("p2", "Dup")},
					folder("A1a", []*Project{project("p3", "Dup")}),
				),
			),
		},
	}
}

func TestProjectDepthOrder(t *testing.T) {
	h := layeredProjects()
	plan := Locate(KindProject, "Dup")

	wantIDs := []string{"p0", "p1", "p2", "p3"}
	for i, want := range wantIDs {
		m, ok := plan.Resolve(h)
		if !ok {
			t.Fatalf("step %d: expected a match", i)
		}
		if m.ID != want {
			t.Fatalf("step %d: resolved %s, want %s", i, m.ID, want)
		}
		// Remove the winner so the next level becomes visible.
		switch i {
		case 0:
			h.Projects = nil
		case 1:
			h.Folders[0].Projects = nil
		case 2:
			h.Folders[0].Folders[0].Projects = nil
		}
	}
}

func TestProjectBeyondDepthNotFound(t *testing.T) {
	h := &Hierarchy{Folders: []*Folder{
		folder("L1", nil, folder("L2", nil, folder("L3", nil, folder("L4", []*Project{project("deep", "Deep")})))),
	}}
	if _, ok := Locate(KindProject, "Deep").Resolve(h); ok {
		t.Fatalf("project at folder depth 4 must not be found")
	}
}

func TestProjectPreOrderAcrossFolders(t *testing.T) {
	h := &Hierarchy{Folders: []*Folder{
		folder("A", nil, folder("A1", []*Project{project("a1x", "X")})),
		folder("B", []*Project{project("bx", "X")}),
	}}
	m, ok := Locate(KindProject, "X").Resolve(h)
	if !ok {
		t.Fatalf("expected a match")
	}
	if m.ID != "a1x" {
		t.Fatalf("resolved %s, want a1x (first declared folder wins)", m.ID)
	}
	if diff := cmp.Diff([]string{"A", "A1"}, m.Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if m.Scope != (Scope{Kind: ScopeFolder, Depth: 2}) {
		t.Fatalf("scope = %v", m.Scope)
	}
}

func TestFindAllListsEveryCandidateInOrder(t *testing.T) {
	all := Locate(KindProject, "Dup").FindAll(layeredProjects())
	var ids []string
	for _, m := range all {
		ids = append(ids, m.ID)
	}
	if diff := cmp.Diff([]string{"p0", "p1", "p2", "p3"}, ids); diff != "" {
		t.Fatalf("FindAll order mismatch (-want +got):\n%s", diff)
	}
}

func TestExactNameMatchOnly(t *testing.T) {
	h := &Hierarchy{Projects: []*Project{project("1", "home"), project("2", "Home Office")}}
	if _, ok := Locate(KindProject, "Home").Resolve(h); ok {
		t.Fatalf("lookup must not fold case or match prefixes")
	}
}

func TestFolderOrder(t *testing.T) {
	h := &Hierarchy{Folders: []*Folder{
		folder("Work", nil, folder("Clients", nil, folder("Archive", nil))),
		folder("Archive", nil),
	}}
	m, ok := Locate(KindFolder, "Archive").Resolve(h)
	if !ok || m.ID != "f-Archive" || len(m.Path) != 0 {
		t.Fatalf("top-level folder should win, got %+v ok=%v", m, ok)
	}

	h.Folders = h.Folders[:1]
	m, ok = Locate(KindFolder, "Archive").Resolve(h)
	if !ok {
		t.Fatalf("nested folder at level 3 should be found")
	}
	if diff := cmp.Diff([]string{"Work", "Clients"}, m.Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
}

func tagChain(names ...string) *Tag {
	var child *Tag
	for i := len(names) - 1; i >= 0; i-- {
		if child == nil {
			child = tag(names[i])
			continue
		}
		child = tag(names[i], child)
	}
	return child
}

func TestTagDepthLimit(t *testing.T) {
	five := &Hierarchy{Tags: []*Tag{tagChain("L1", "L2", "L3", "L4", "Target")}}
	m, ok := Locate(KindTag, "Target").Resolve(five)
	if !ok {
		t.Fatalf("tag at depth 5 must be found")
	}
	if m.Scope.Depth != 5 {
		t.Fatalf("depth = %d, want 5", m.Scope.Depth)
	}

	six := &Hierarchy{Tags: []*Tag{tagChain("L1", "L2", "L3", "L4", "L5", "Target")}}
	if _, ok := Locate(KindTag, "Target").Resolve(six); ok {
		t.Fatalf("tag at depth 6 must not be found")
	}
}

func TestTagTopLevelBeforeDescendants(t *testing.T) {
	h := &Hierarchy{Tags: []*Tag{
		tag("Errands", tag("Waiting")),
		{ID: "top-waiting", Name: "Waiting"},
	}}
	m, ok := Locate(KindTag, "Waiting").Resolve(h)
	if !ok || m.ID != "top-waiting" {
		t.Fatalf("top-level tag should win, got %+v", m)
	}
}

func TestTagDepthFirstPerRoot(t *testing.T) {
	h := &Hierarchy{Tags: []*Tag{
		tag("A", tag("A2", &Tag{ID: "deep", Name: "X"})),
		tag("B", &Tag{ID: "shallow", Name: "X"}),
	}}
	m, ok := Locate(KindTag, "X").Resolve(h)
	if !ok || m.ID != "deep" {
		t.Fatalf("first root's subtree should be exhausted first, got %+v", m)
	}
}

func TestTaskOrder(t *testing.T) {
	h := &Hierarchy{
		Inbox:    []*Task{{ID: "inbox", Name: "Call"}},
		Projects: []*Project{project("p", "Home", &Task{ID: "home", Name: "Call"})},
		Folders: []*Folder{
			folder("Work", []*Project{project("w", "Clients", &Task{ID: "work", Name: "Call"})}),
		},
	}

	if m, _ := LocateTask("Call", "", false).Resolve(h); m.ID != "inbox" {
		t.Fatalf("inbox should win, got %s", m.ID)
	}
	h.Inbox[0].Completed = true
	if m, _ := LocateTask("Call", "", true).Resolve(h); m.ID != "home" {
		t.Fatalf("completed inbox task must be skipped, got %s", m.ID)
	}
	m, ok := LocateTask("Call", "Clients", false).Resolve(h)
	if !ok || m.ID != "work" {
		t.Fatalf("project-scoped lookup should find work, got %+v", m)
	}
	if diff := cmp.Diff([]string{"Work", "Clients"}, m.Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if _, ok := LocateTask("Call", "Missing", false).Resolve(h); ok {
		t.Fatalf("unknown scoping project must not resolve")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"project": KindProject, "Folder": KindFolder, "context": KindTag, " task ": KindTask} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("perspective"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func renderFragment(p Plan, target string) string {
	return script.Render(0, p.Fragment(target)...)
}

func assertOrdered(t *testing.T, src string, fragments ...string) {
	t.Helper()
	last := -1
	for _, f := range fragments {
		idx := strings.Index(src, f)
		if idx < 0 {
			t.Fatalf("fragment %q missing from:\n%s", f, src)
		}
		if idx < last {
			t.Fatalf("fragment %q out of order in:\n%s", f, src)
		}
		last = idx
	}
}

func TestProjectFragmentOrder(t *testing.T) {
	src := renderFragment(Locate(KindProject, "Home"), "targetProject")
	assertOrdered(t, src,
		"considering case",
		"set targetProject to missing value",
		`set targetProject to first project whose name is "Home"`,
		"repeat with targetProjectFolder1 in every folder",
		`first project of targetProjectFolder1 whose name is "Home"`,
		"repeat with targetProjectFolder2 in folders of targetProjectFolder1",
		"repeat with targetProjectFolder3 in folders of targetProjectFolder2",
		`first project of targetProjectFolder3 whose name is "Home"`,
	)
	if strings.Contains(src, "targetProjectFolder4") {
		t.Fatalf("project search must stop at three folder levels:\n%s", src)
	}
}

func TestTagFragmentDepth(t *testing.T) {
	src := renderFragment(Locate(KindTag, "Errands"), "targetTag")
	assertOrdered(t, src,
		`set targetTag to first tag whose name is "Errands"`,
		"repeat with targetTagTag1 in every tag",
		"repeat with targetTagTag2 in tags of targetTagTag1",
		"repeat with targetTagTag5 in tags of targetTagTag4",
		"set targetTag to contents of targetTagTag5",
	)
	if strings.Contains(src, "targetTagTag6") {
		t.Fatalf("tag search must stop at five levels:\n%s", src)
	}
}

func TestFragmentSanitizesName(t *testing.T) {
	src := renderFragment(Locate(KindFolder, `Q"1\2`), "targetFolder")
	if !strings.Contains(src, `first folder whose name is "Q\"1\\2"`) {
		t.Fatalf("name not escaped:\n%s", src)
	}
}

func TestScopedTaskFragment(t *testing.T) {
	src := renderFragment(LocateTask("Pay rent", "Home", true), "targetTask")
	assertOrdered(t, src,
		`set targetTaskProject to first project whose name is "Home"`,
		`error "Project not found: Home" number 4040`,
		`set targetTask to first task of targetTaskProject whose name is "Pay rent" and completed is false`,
	)
	if strings.Contains(src, "inbox task") {
		t.Fatalf("scoped lookup must not search the inbox:\n%s", src)
	}

	global := renderFragment(LocateTask("Pay rent", "", false), "targetTask")
	assertOrdered(t, global,
		`first inbox task whose name is "Pay rent"`,
		"repeat with targetTaskTop in every project",
		"repeat with targetTaskFolder1 in every folder",
		"repeat with targetTaskFolder1Project in projects of targetTaskFolder1",
		"repeat with targetTaskFolder3Project in projects of targetTaskFolder3",
	)
}

func TestDescribe(t *testing.T) {
	got := Locate(KindProject, "x").Describe()
	want := "top level -> folder level 1 -> folder level 2 -> folder level 3"
	if got != want {
		t.Fatalf("Describe = %q, want %q", got, want)
	}
}
