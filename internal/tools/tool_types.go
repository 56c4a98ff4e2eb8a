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
	"focusmcp/internal/script"
)

// Kind separates tools that change the document from tools that read it.
// A missing entity is an error for mutations and a plain answer for
// queries.
type Kind int

const (
	Query Kind = iota
	Mutation
)

func (k Kind) String() string {
	if k == Mutation {
		return "mutation"
	}
	return "query"
}

// Tool is one entry of the catalog.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	Kind        Kind           `json:"-"`
	// Destructive tools delete data.
	Destructive bool `json:"-"`

	// prepare decodes and validates raw arguments and compiles the script.
	prepare func(args map[string]any) (*prepared, error)
}

// prepared is a compiled call waiting for its script output.
type prepared struct {
	program *script.Program
	render  func(out string) (string, error)
}

// Required lists the names of the required parameters.
func (t *Tool) Required() []string {
	return requiredOf(t.Parameters)
}

// ReadOnly reports whether the tool leaves the document unchanged.
func (t *Tool) ReadOnly() bool {
	return t.Kind == Query
}

type renderFunc[T any] func(out string, a *T) (string, error)

// plain adapts a renderer that cannot fail.
func plain[T any](f func(string, *T) string) renderFunc[T] {
	return func(out string, a *T) (string, error) {
		return f(out, a), nil
	}
}

// operation binds one compiled operation: decode, validate, compile, and
// render with the same decoded arguments.
func operation[T any](name, description string, kind Kind, compile func(*T) (*script.Program, error), render renderFunc[T]) *Tool {
	return &Tool{
		Name:        name,
		Description: description,
		Parameters:  schemaParametersFor[T](),
		Kind:        kind,
		prepare: func(raw map[string]any) (*prepared, error) {
			a, err := omnifocus.Decode[T](raw)
			if err != nil {
				return nil, err
			}
			program, err := compile(a)
			if err != nil {
				return nil, err
			}
			return &prepared{
				program: program,
				render:  func(out string) (string, error) { return render(out, a) },
			}, nil
		},
	}
}

// snapshot binds a query answered from an in-memory hierarchy.
func snapshot[T any](name, description string, scope func(*T) compiler.SnapshotScope, render func(*locator.Hierarchy, *T) (string, error)) *Tool {
	return operation[T](name, description, Query,
		func(a *T) (*script.Program, error) {
			return compiler.Snapshot(scope(a)), nil
		},
		func(out string, a *T) (string, error) {
			h, err := format.DecodeHierarchy(out)
			if err != nil {
				return "", err
			}
			return render(h, a)
		},
	)
}
