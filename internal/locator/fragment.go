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
	"fmt"

	"focusmcp/internal/script"
)

// Fragment renders the plan as statements that leave the first match in the
// variable target, or missing value when nothing matched. Loop variables are
// derived from target, so fragments for different targets can share a
// program.
func (p Plan) Fragment(target string) []script.Stmt {
	body := []script.Stmt{script.DeclareScope(target)}
	switch p.Kind {
	case KindProject:
		body = append(body, p.projectSteps(target)...)
	case KindFolder:
		body = append(body, p.folderSteps(target)...)
	case KindTag:
		body = append(body, p.tagSteps(target)...)
	case KindTask:
		body = append(body, p.taskSteps(target)...)
	}
	return []script.Stmt{script.Considering{Attribute: "case", Body: body}}
}

// ProjectVar names the variable holding the scoping project of a task plan.
func ProjectVar(target string) string {
	return target + "Project"
}

func (p Plan) nameCond() script.Expr {
	cond := script.Eq("name", script.Str(p.Name))
	if p.Kind == KindTask && p.IncompleteOnly {
		cond += " and completed is false"
	}
	return cond
}

// firstOf tries "set target to first <noun> [of container] whose <cond>".
func (p Plan) firstOf(target, noun string, container script.Expr) script.Stmt {
	spec := "first " + noun
	if container != "" {
		spec += " of " + string(container)
	}
	spec += " whose " + string(p.nameCond())
	return script.Try{Body: []script.Stmt{
		script.Set{Target: script.Ident(target), Value: script.Raw(spec)},
	}}
}

func found(target string) script.Stmt {
	return script.ExitRepeatIf{Cond: script.NotMissing(script.Ident(target))}
}

// folderLoops nests one repeat per folder level, from level to depth. check
// renders the search performed inside each folder.
func folderLoops(target string, level, depth int, parent script.Expr, check func(folder script.Expr) []script.Stmt) script.Stmt {
	v := fmt.Sprintf("%sFolder%d", target, level)
	in := script.Raw("every folder")
	if parent != "" {
		in = script.Of("folders", parent)
	}
	body := append(check(script.Ident(v)), found(target))
	if level < depth {
		body = append(body, folderLoops(target, level+1, depth, script.Ident(v), check), found(target))
	}
	return script.Repeat{Var: v, In: in, Body: body}
}

func (p Plan) projectSteps(target string) []script.Stmt {
	steps := []script.Stmt{p.firstOf(target, "project", "")}
	if depth := p.chainDepth(); depth > 0 {
		steps = append(steps, script.If{
			Cond: script.IsMissing(script.Ident(target)),
			Then: []script.Stmt{folderLoops(target, 1, depth, "", func(folder script.Expr) []script.Stmt {
				return []script.Stmt{p.firstOf(target, "project", folder)}
			})},
		})
	}
	return steps
}

func (p Plan) folderSteps(target string) []script.Stmt {
	steps := []script.Stmt{p.firstOf(target, "folder", "")}
	if depth := p.chainDepth(); depth > 0 {
		steps = append(steps, script.If{
			Cond: script.IsMissing(script.Ident(target)),
			Then: []script.Stmt{folderLoops(target, 1, depth, "", func(folder script.Expr) []script.Stmt {
				return []script.Stmt{p.firstOf(target, "folder", folder)}
			})},
		})
	}
	return steps
}

func (p Plan) tagSteps(target string) []script.Stmt {
	steps := []script.Stmt{p.firstOf(target, "tag", "")}
	maxDepth := 1 + p.chainDepth()
	if maxDepth < 2 {
		return steps
	}
	root := target + "Tag1"
	steps = append(steps, script.If{
		Cond: script.IsMissing(script.Ident(target)),
		Then: []script.Stmt{script.Repeat{
			Var: root,
			In:  script.Raw("every tag"),
			Body: []script.Stmt{
				p.tagLoop(target, 2, maxDepth, script.Ident(root)),
				found(target),
			},
		}},
	})
	return steps
}

// tagLoop checks every tag at depth under parent, descending depth first.
func (p Plan) tagLoop(target string, depth, maxDepth int, parent script.Expr) script.Stmt {
	v := fmt.Sprintf("%sTag%d", target, depth)
	tv := script.Ident(v)
	body := []script.Stmt{
		script.If{
			Cond: script.Eq(script.Of("name", tv), script.Str(p.Name)),
			Then: []script.Stmt{
				script.Set{Target: script.Ident(target), Value: script.Of("contents", tv)},
				script.ExitRepeatIf{},
			},
		},
	}
	if depth < maxDepth {
		body = append(body, p.tagLoop(target, depth+1, maxDepth, tv), found(target))
	}
	return script.Repeat{Var: v, In: script.Of("tags", parent), Body: body}
}

func (p Plan) taskSteps(target string) []script.Stmt {
	if p.Project != "" {
		pv := ProjectVar(target)
		steps := Locate(KindProject, p.Project).Fragment(pv)
		steps = append(steps,
			script.AssertFound(script.Ident(pv), KindProject.String(), p.Project),
			p.firstOf(target, "task", script.Ident(pv)),
		)
		return steps
	}

	var steps []script.Stmt
	if p.has(ScopeInbox) {
		steps = append(steps, p.firstOf(target, "inbox task", ""))
	}
	top := target + "Top"
	searchProjects := []script.Stmt{
		script.Repeat{
			Var: top,
			In:  script.Raw("every project"),
			Body: []script.Stmt{
				p.firstOf(target, "task", script.Ident(top)),
				found(target),
			},
		},
	}
	if depth := p.chainDepth(); depth > 0 {
		searchProjects = append(searchProjects, script.If{
			Cond: script.IsMissing(script.Ident(target)),
			Then: []script.Stmt{folderLoops(target, 1, depth, "", func(folder script.Expr) []script.Stmt {
				pv := script.Ident(string(folder) + "Project")
				return []script.Stmt{script.Repeat{
					Var: string(pv),
					In:  script.Of("projects", folder),
					Body: []script.Stmt{
						p.firstOf(target, "task", pv),
						found(target),
					},
				}}
			})},
		})
	}
	if len(steps) == 0 {
		return searchProjects
	}
	return append(steps, script.If{
		Cond: script.IsMissing(script.Ident(target)),
		Then: searchProjects,
	})
}
