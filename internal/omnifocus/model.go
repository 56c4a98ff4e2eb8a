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

// Package omnifocus holds the domain vocabulary shared by the compiler, the
// formatter and the tool catalog: argument types, enumerations and dates.
package omnifocus

import (
	"fmt"
	"strings"
)

// ProjectStatus is the caller-facing project status.
type ProjectStatus string

const (
	StatusActive    ProjectStatus = "active"
	StatusOnHold    ProjectStatus = "on-hold"
	StatusCompleted ProjectStatus = "completed"
	StatusDropped   ProjectStatus = "dropped"
)

// ParseProjectStatus accepts the four caller-facing statuses.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(s) {
	case StatusActive, StatusOnHold, StatusCompleted, StatusDropped:
		return ProjectStatus(s), nil
	}
	return "", fmt.Errorf("invalid project status %q: must be one of active, on-hold, completed, dropped", s)
}

// StatusFromScript maps the text of an OmniFocus status constant, such as
// "on hold status", to a ProjectStatus. Unknown text is returned as is.
func StatusFromScript(s string) ProjectStatus {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "active", "active status":
		return StatusActive
	case "on hold", "on hold status", "on-hold":
		return StatusOnHold
	case "done", "done status", "completed", "completed status":
		return StatusCompleted
	case "dropped", "dropped status":
		return StatusDropped
	}
	return ProjectStatus(s)
}

// ProjectType controls how the tasks of a project become available.
type ProjectType string

const (
	TypeParallel   ProjectType = "parallel"
	TypeSequential ProjectType = "sequential"
	TypeSingle     ProjectType = "single"
)

func ParseProjectType(s string) (ProjectType, error) {
	switch ProjectType(s) {
	case TypeParallel, TypeSequential, TypeSingle:
		return ProjectType(s), nil
	}
	return "", fmt.Errorf("invalid project type %q: must be one of parallel, sequential, single", s)
}

// LinkFormat selects how a deep link is rendered.
type LinkFormat string

const (
	LinkURL      LinkFormat = "url"
	LinkMarkdown LinkFormat = "markdown"
	LinkHTML     LinkFormat = "html"
)

// ParseLinkFormat defaults to markdown for an empty value.
func ParseLinkFormat(s string) (LinkFormat, error) {
	switch LinkFormat(s) {
	case "":
		return LinkMarkdown, nil
	case LinkURL, LinkMarkdown, LinkHTML:
		return LinkFormat(s), nil
	}
	return "", fmt.Errorf("invalid link format %q: must be one of url, markdown, html", s)
}

// BuiltinPerspectives are the perspectives every OmniFocus document has.
var BuiltinPerspectives = []string{
	"Inbox", "Projects", "Tags", "Flagged", "Review", "Forecast", "Completed", "Changed", "Nearby",
}

// IsBuiltinPerspective reports whether name is a built-in perspective.
func IsBuiltinPerspective(name string) bool {
	for _, p := range BuiltinPerspectives {
		if p == name {
			return true
		}
	}
	return false
}

// DefaultPerspectiveLimit caps get_perspective_contents output.
const DefaultPerspectiveLimit = 100

// Deref returns the value of p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Ref returns the value of an optional entity reference and whether it
// names anything. Names are matched exactly, so the value is not trimmed.
func Ref(p *string) (string, bool) {
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}
