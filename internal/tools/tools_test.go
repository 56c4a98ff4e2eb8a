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
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	apperrors "focusmcp/internal/errors"
	"focusmcp/internal/format"
)

type fakeRunner struct {
	mu      sync.Mutex
	out     string
	err     error
	sources []string
}

func (f *fakeRunner) Run(_ context.Context, source string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, source)
	return f.out, f.err
}

func (f *fakeRunner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sources)
}

func newTestRegistry(runner *fakeRunner, policy Policy) *Registry {
	return NewRegistry(Options{
		Runner: runner,
		Policy: policy,
		Filter: format.DefaultFilter(),
		Logger: zerolog.Nop(),
	})
}

func rec(fields ...string) string {
	return strings.Join(fields, "\x1f") + "\x1e"
}

func TestCatalogNames(t *testing.T) {
	seen := map[string]bool{}
	for _, tool := range Catalog() {
		if seen[tool.Name] {
			t.Fatalf("duplicate tool %s", tool.Name)
		}
		seen[tool.Name] = true
		if tool.Description == "" {
			t.Fatalf("tool %s has no description", tool.Name)
		}
		if tool.Parameters["type"] != "object" {
			t.Fatalf("tool %s parameters are not an object schema", tool.Name)
		}
	}
	if len(seen) != 34 {
		t.Fatalf("catalog has %d tools, want 34", len(seen))
	}
	for _, name := range []string{"create_task", "list_projects", "get_folder_hierarchy", "resolve_entity", "get_perspective_contents"} {
		if !seen[name] {
			t.Fatalf("catalog is missing %s", name)
		}
	}
}

func TestToolKinds(t *testing.T) {
	r := newTestRegistry(&fakeRunner{}, Policy{})
	tests := map[string]struct {
		readOnly    bool
		destructive bool
	}{
		"create_task":    {false, false},
		"delete_task":    {false, true},
		"delete_project": {false, true},
		"list_tasks":     {true, false},
		"get_task_link":  {true, false},
		"resolve_entity": {true, false},
	}
	for name, want := range tests {
		tool, ok := r.getTool(name)
		if !ok {
			t.Fatalf("tool %s not registered", name)
		}
		if tool.ReadOnly() != want.readOnly || tool.Destructive != want.destructive {
			t.Fatalf("%s: readOnly=%v destructive=%v", name, tool.ReadOnly(), tool.Destructive)
		}
	}
}

func TestExecuteCreateTask(t *testing.T) {
	runner := &fakeRunner{out: rec("Buy milk", "t1", "")}
	r := newTestRegistry(runner, Policy{})

	result := r.Execute(context.Background(), "create_task", map[string]any{"name": "Buy milk"})
	if result.Error != nil || result.IsError {
		t.Fatalf("unexpected failure: %v", result.Error)
	}
	if result.Result != "Successfully created task: Buy milk (ID: t1) in Inbox" {
		t.Fatalf("unexpected result %q", result.Result)
	}
	if runner.calls() != 1 || !strings.Contains(runner.sources[0], `tell application "OmniFocus"`) {
		t.Fatalf("script not run: %v", runner.sources)
	}
}

func TestExecuteUsesConfiguredApplication(t *testing.T) {
	runner := &fakeRunner{out: ""}
	r := NewRegistry(Options{Runner: runner, Application: "OmniFocus 3", Logger: zerolog.Nop()})
	r.Execute(context.Background(), "list_tasks", nil)
	if !strings.Contains(runner.sources[0], `tell application "OmniFocus 3"`) {
		t.Fatalf("application not applied:\n%s", runner.sources[0])
	}
}

func TestExecuteValidationFailsBeforeRunning(t *testing.T) {
	runner := &fakeRunner{}
	r := newTestRegistry(runner, Policy{})

	result := r.Execute(context.Background(), "set_project_status", map[string]any{"projectName": "Home", "status": "paused"})
	if !result.IsError || !apperrors.IsCode(result.Error, apperrors.CodeValidation) {
		t.Fatalf("expected validation failure, got %+v", result)
	}
	if !strings.HasPrefix(result.Result, "Error: ") {
		t.Fatalf("result should start with Error:, got %q", result.Result)
	}
	if runner.calls() != 0 {
		t.Fatalf("no script may run for invalid arguments")
	}
}

func TestExecuteResolutionFailure(t *testing.T) {
	notFound := &apperrors.Error{Code: apperrors.CodeResolution, Message: "Task not found: Ghost"}
	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		want    string
		isError bool
	}{
		{
			name:    "query answers plainly",
			tool:    "get_task_note",
			args:    map[string]any{"taskName": "Ghost"},
			want:    "Task not found: Ghost",
			isError: false,
		},
		{
			name:    "mutation reports an error",
			tool:    "complete_task",
			args:    map[string]any{"taskName": "Ghost"},
			want:    "Error: Task not found: Ghost",
			isError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(&fakeRunner{err: notFound}, Policy{})
			result := r.Execute(context.Background(), tt.tool, tt.args)
			if result.Result != tt.want || result.IsError != tt.isError {
				t.Fatalf("got %q (isError=%v), want %q (isError=%v)", result.Result, result.IsError, tt.want, tt.isError)
			}
		})
	}
}

func TestExecuteRemoteFailureMentionsScript(t *testing.T) {
	remote := &apperrors.Error{Code: apperrors.CodeRemoteExecution, Message: "OmniFocus got an error (-1728)", ScriptPath: "/tmp/omnifocus-1-1.applescript"}
	r := newTestRegistry(&fakeRunner{err: remote}, Policy{})

	result := r.Execute(context.Background(), "list_projects", nil)
	if !result.IsError {
		t.Fatalf("remote failure must be an error")
	}
	want := "Error: OmniFocus got an error (-1728) (script kept at /tmp/omnifocus-1-1.applescript)"
	if result.Result != want {
		t.Fatalf("got %q, want %q", result.Result, want)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	r := newTestRegistry(&fakeRunner{}, Policy{})
	result := r.Execute(context.Background(), "does_not_exist", nil)
	if !errors.Is(result.Error, ErrToolNotFound) || !apperrors.IsCode(result.Error, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", result.Error)
	}
}

func TestPolicy(t *testing.T) {
	runner := &fakeRunner{}
	r := newTestRegistry(runner, Policy{Allow: []string{"list_tasks", "delete_task"}, Deny: []string{"delete_task"}})

	var names []string
	for _, tool := range r.Tools() {
		names = append(names, tool.Name)
	}
	if diff := cmp.Diff([]string{"list_tasks"}, names); diff != "" {
		t.Fatalf("allowed tools mismatch (-want +got):\n%s", diff)
	}

	result := r.Execute(context.Background(), "delete_task", map[string]any{"taskName": "x"})
	if !errors.Is(result.Error, ErrToolNotAllowed) || !apperrors.IsCode(result.Error, apperrors.CodePermission) {
		t.Fatalf("expected permission error, got %v", result.Error)
	}
	if runner.calls() != 0 {
		t.Fatalf("blocked tool must not run")
	}
	if len(r.GetToolNames()) != 34 {
		t.Fatalf("policy must not unregister tools")
	}
}

func TestCompile(t *testing.T) {
	r := newTestRegistry(&fakeRunner{}, Policy{})
	src, err := r.Compile("search_tasks", map[string]any{"query": "milk"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(src, `"milk"`) {
		t.Fatalf("query missing from script:\n%s", src)
	}
	if _, err := r.Compile("search_tasks", map[string]any{}); !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExecuteFilterTruncates(t *testing.T) {
	runner := &fakeRunner{out: rec("A very long task name", "t1", "Home", "", "false")}
	r := NewRegistry(Options{Runner: runner, Filter: format.Filter{MaxChars: 10}, Logger: zerolog.Nop()})
	result := r.Execute(context.Background(), "list_tasks", nil)
	if !strings.HasSuffix(result.Result, "... (output truncated)") {
		t.Fatalf("expected truncation marker, got %q", result.Result)
	}
}

func TestExecuteOpenAIToolCall(t *testing.T) {
	runner := &fakeRunner{out: rec("Buy milk", "t1", "Home")}
	r := newTestRegistry(runner, Policy{})

	call := openai.ToolCall{
		ID:   "call-1",
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      "get_task_link",
			Arguments: `{"taskName": "Buy milk", "format": "url"}`,
		},
	}
	result := r.ExecuteOpenAIToolCall(context.Background(), call)
	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if !strings.Contains(result.Result, "omnifocus:///task/t1") {
		t.Fatalf("link missing from %q", result.Result)
	}

	bad := r.ExecuteOpenAIToolCall(context.Background(), openai.ToolCall{Function: openai.FunctionCall{Name: "list_tasks", Arguments: "{"}})
	if !errors.Is(bad.Error, ErrInvalidArguments) {
		t.Fatalf("expected invalid arguments, got %v", bad.Error)
	}
}

func TestValidateToolCall(t *testing.T) {
	r := newTestRegistry(&fakeRunner{}, Policy{})
	if res := r.ValidateToolCall("list_tasks", ""); res != nil {
		t.Fatalf("empty arguments should validate, got %v", res.Error)
	}
	if res := r.ValidateToolCall("create_task", `{"name": ""}`); res == nil || !res.IsError {
		t.Fatalf("blank name should fail validation")
	}
}

func TestOpenAITools(t *testing.T) {
	r := newTestRegistry(&fakeRunner{}, Policy{Allow: []string{"create_task"}})
	defs := r.OpenAITools()
	if len(defs) != 1 || defs[0].Function.Name != "create_task" {
		t.Fatalf("unexpected definitions %+v", defs)
	}
	params, ok := defs[0].Function.Parameters.(map[string]any)
	if !ok {
		t.Fatalf("parameters are %T", defs[0].Function.Parameters)
	}
	if diff := cmp.Diff([]string{"name"}, requiredOf(params)); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}
