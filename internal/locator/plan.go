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

// Package locator finds named entities in the OmniFocus hierarchy.
//
// Resolution happens inside generated scripts, so a lookup is described by
// a Plan: an ordered list of candidate scopes. Fragment renders a plan as
// script statements and Resolve evaluates the same plan against an
// in-memory Hierarchy. Both walk the scopes in the same order and stop at
// the first exact name match.
package locator

import (
	"fmt"
	"strings"
)

// Kind is the type of entity being resolved.
type Kind int

const (
	KindProject Kind = iota + 1
	KindFolder
	KindTag
	KindTask
)

func (k Kind) String() string {
	switch k {
	case KindProject:
		return "Project"
	case KindFolder:
		return "Folder"
	case KindTag:
		return "Tag"
	case KindTask:
		return "Task"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a lower-case kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "project":
		return KindProject, nil
	case "folder":
		return KindFolder, nil
	case "tag", "context":
		return KindTag, nil
	case "task":
		return KindTask, nil
	}
	return 0, fmt.Errorf("unknown entity kind %q", s)
}

// Depth limits of the hierarchy walk. Folders nest three levels deep and
// tags five; deeper entities are never found.
const (
	MaxFolderDepth = 3
	MaxTagDepth    = 5
)

// ScopeKind is the collection a scope scans.
type ScopeKind int

const (
	// ScopeInbox scans inbox tasks.
	ScopeInbox ScopeKind = iota + 1
	// ScopeTopLevel scans the document-level collection of the kind
	// (tasks: the tasks of each top-level project).
	ScopeTopLevel
	// ScopeFolder scans the kind's collection inside folders at Depth.
	ScopeFolder
	// ScopeTag scans tags at Depth, below the top level.
	ScopeTag
	// ScopeProject scans the tasks of one named project.
	ScopeProject
)

// Scope is one step of a plan.
type Scope struct {
	Kind  ScopeKind
	Depth int
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeInbox:
		return "inbox"
	case ScopeTopLevel:
		return "top level"
	case ScopeFolder:
		return fmt.Sprintf("folder level %d", s.Depth)
	case ScopeTag:
		return fmt.Sprintf("tag level %d", s.Depth)
	case ScopeProject:
		return "project"
	}
	return "unknown"
}

// Plan describes how to find one named entity.
//
// Scopes are searched in order. Consecutive ScopeFolder (or ScopeTag)
// scopes form a chain walked in pre-order: the scope at depth d+1 is
// searched inside each container of depth d before moving to that
// container's next sibling. The first match ends the search.
type Plan struct {
	Kind   Kind
	Name   string
	Scopes []Scope
	// Project restricts a task plan to the tasks of this project.
	Project string
	// IncompleteOnly skips completed tasks.
	IncompleteOnly bool
}

// Locate returns the plan for a project, folder or tag.
func Locate(kind Kind, name string) Plan {
	p := Plan{Kind: kind, Name: name}
	switch kind {
	case KindProject:
		p.Scopes = append([]Scope{{Kind: ScopeTopLevel}}, folderChain(MaxFolderDepth)...)
	case KindFolder:
		// Level 1 folders are the top level; the chain scans children of
		// levels 1 and 2.
		p.Scopes = append([]Scope{{Kind: ScopeTopLevel}}, folderChain(MaxFolderDepth-1)...)
	case KindTag:
		p.Scopes = []Scope{{Kind: ScopeTopLevel}}
		for d := 2; d <= MaxTagDepth; d++ {
			p.Scopes = append(p.Scopes, Scope{Kind: ScopeTag, Depth: d})
		}
	case KindTask:
		return LocateTask(name, "", false)
	}
	return p
}

// LocateTask returns the plan for a task, optionally scoped to a project.
func LocateTask(name, project string, incompleteOnly bool) Plan {
	p := Plan{Kind: KindTask, Name: name, Project: project, IncompleteOnly: incompleteOnly}
	if project != "" {
		p.Scopes = []Scope{{Kind: ScopeProject}}
		return p
	}
	p.Scopes = append([]Scope{{Kind: ScopeInbox}, {Kind: ScopeTopLevel}}, folderChain(MaxFolderDepth)...)
	return p
}

func folderChain(depth int) []Scope {
	scopes := make([]Scope, 0, depth)
	for d := 1; d <= depth; d++ {
		scopes = append(scopes, Scope{Kind: ScopeFolder, Depth: d})
	}
	return scopes
}

// chainDepth is the number of chained folder or tag scopes in the plan.
func (p Plan) chainDepth() int {
	n := 0
	for _, s := range p.Scopes {
		if s.Kind == ScopeFolder || s.Kind == ScopeTag {
			n++
		}
	}
	return n
}

func (p Plan) has(kind ScopeKind) bool {
	for _, s := range p.Scopes {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// Describe lists the scopes in search order.
func (p Plan) Describe() string {
	parts := make([]string, len(p.Scopes))
	for i, s := range p.Scopes {
		parts[i] = s.String()
	}
	return strings.Join(parts, " -> ")
}
