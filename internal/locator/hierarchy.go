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

// Hierarchy is an in-memory snapshot of an OmniFocus document.
// Slices keep the document order.
type Hierarchy struct {
	Inbox    []*Task
	Projects []*Project
	Folders  []*Folder
	Tags     []*Tag
}

type Folder struct {
	ID       string
	Name     string
	Hidden   bool
	Folders  []*Folder
	Projects []*Project
}

type Project struct {
	ID     string
	Name   string
	Status string
	// Remaining is the number of incomplete tasks reported by the store.
	Remaining int
	Total     int
	Tasks     []*Task
}

type Task struct {
	ID        string
	Name      string
	Completed bool
}

type Tag struct {
	ID        string
	Name      string
	Hidden    bool
	Remaining int
	Available int
	Tags      []*Tag
}

// Match is one entity found by a plan.
type Match struct {
	Kind Kind
	Name string
	ID   string
	// Path lists the names of the containers above the entity.
	Path  []string
	Scope Scope
}

// Resolve returns the first entity the plan finds in h.
func (p Plan) Resolve(h *Hierarchy) (Match, bool) {
	var found Match
	ok := false
	p.walk(h, func(m Match) bool {
		found, ok = m, true
		return false
	})
	return found, ok
}

// FindAll returns every entity the plan can reach in h, in search order.
// The first element, when present, is what Resolve returns.
func (p Plan) FindAll(h *Hierarchy) []Match {
	var all []Match
	p.walk(h, func(m Match) bool {
		all = append(all, m)
		return true
	})
	return all
}

func (p Plan) walk(h *Hierarchy, yield func(Match) bool) {
	if h == nil {
		return
	}
	switch p.Kind {
	case KindProject:
		walkProjects(h, p.chainDepth(), func(pr *Project, path []string, scope Scope) bool {
			if pr.Name != p.Name {
				return true
			}
			return yield(Match{Kind: KindProject, Name: pr.Name, ID: pr.ID, Path: path, Scope: scope})
		})
	case KindFolder:
		p.walkFolders(h, yield)
	case KindTag:
		p.walkTags(h, yield)
	case KindTask:
		p.walkTasks(h, yield)
	}
}

// walkProjects visits top-level projects, then folder projects in per-root
// pre-order down to depth folder levels. It returns false when fn stopped
// the walk.
func walkProjects(h *Hierarchy, depth int, fn func(pr *Project, path []string, scope Scope) bool) bool {
	for _, pr := range h.Projects {
		if !fn(pr, nil, Scope{Kind: ScopeTopLevel}) {
			return false
		}
	}
	var descend func(folders []*Folder, level int, path []string) bool
	descend = func(folders []*Folder, level int, path []string) bool {
		for _, f := range folders {
			fp := appendPath(path, f.Name)
			for _, pr := range f.Projects {
				if !fn(pr, fp, Scope{Kind: ScopeFolder, Depth: level}) {
					return false
				}
			}
			if level < depth && !descend(f.Folders, level+1, fp) {
				return false
			}
		}
		return true
	}
	return descend(h.Folders, 1, nil)
}

func (p Plan) walkFolders(h *Hierarchy, yield func(Match) bool) {
	for _, f := range h.Folders {
		if f.Name == p.Name && !yield(Match{Kind: KindFolder, Name: f.Name, ID: f.ID, Scope: Scope{Kind: ScopeTopLevel}}) {
			return
		}
	}
	depth := p.chainDepth()
	var descend func(folders []*Folder, level int, path []string) bool
	descend = func(folders []*Folder, level int, path []string) bool {
		for _, f := range folders {
			fp := appendPath(path, f.Name)
			for _, child := range f.Folders {
				if child.Name != p.Name {
					continue
				}
				if !yield(Match{Kind: KindFolder, Name: child.Name, ID: child.ID, Path: fp, Scope: Scope{Kind: ScopeFolder, Depth: level}}) {
					return false
				}
			}
			if level < depth && !descend(f.Folders, level+1, fp) {
				return false
			}
		}
		return true
	}
	descend(h.Folders, 1, nil)
}

func (p Plan) walkTags(h *Hierarchy, yield func(Match) bool) {
	for _, t := range h.Tags {
		if t.Name == p.Name && !yield(Match{Kind: KindTag, Name: t.Name, ID: t.ID, Scope: Scope{Kind: ScopeTopLevel}}) {
			return
		}
	}
	maxDepth := 1 + p.chainDepth()
	var descend func(tags []*Tag, depth int, path []string) bool
	descend = func(tags []*Tag, depth int, path []string) bool {
		for _, t := range tags {
			if t.Name == p.Name {
				if !yield(Match{Kind: KindTag, Name: t.Name, ID: t.ID, Path: path, Scope: Scope{Kind: ScopeTag, Depth: depth}}) {
					return false
				}
			}
			if depth < maxDepth && !descend(t.Tags, depth+1, appendPath(path, t.Name)) {
				return false
			}
		}
		return true
	}
	for _, root := range h.Tags {
		if maxDepth < 2 {
			return
		}
		if !descend(root.Tags, 2, []string{root.Name}) {
			return
		}
	}
}

func (p Plan) walkTasks(h *Hierarchy, yield func(Match) bool) {
	matches := func(t *Task) bool {
		return t.Name == p.Name && !(p.IncompleteOnly && t.Completed)
	}
	visitProject := func(pr *Project, path []string, scope Scope) bool {
		tp := appendPath(path, pr.Name)
		for _, t := range pr.Tasks {
			if matches(t) && !yield(Match{Kind: KindTask, Name: t.Name, ID: t.ID, Path: tp, Scope: scope}) {
				return false
			}
		}
		return true
	}

	if p.Project != "" {
		owner, ok := Locate(KindProject, p.Project).Resolve(h)
		if !ok {
			return
		}
		walkProjects(h, MaxFolderDepth, func(pr *Project, path []string, _ Scope) bool {
			if pr.ID != owner.ID || pr.Name != owner.Name {
				return true
			}
			visitProject(pr, path, Scope{Kind: ScopeProject})
			return false
		})
		return
	}

	if p.has(ScopeInbox) {
		for _, t := range h.Inbox {
			if matches(t) && !yield(Match{Kind: KindTask, Name: t.Name, ID: t.ID, Scope: Scope{Kind: ScopeInbox}}) {
				return
			}
		}
	}
	walkProjects(h, p.chainDepth(), visitProject)
}

func appendPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}
