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

package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "focusmcp/internal/errors"
	"focusmcp/internal/tools"
)

type fakeRunner struct {
	out string
	err error
	ran int
}

func (f *fakeRunner) Run(context.Context, string) (string, error) {
	f.ran++
	return f.out, f.err
}

func newTestServer(t *testing.T, runner *fakeRunner, policy tools.Policy) *Server {
	t.Helper()
	registry := tools.NewRegistry(tools.Options{Runner: runner, Policy: policy, Logger: zerolog.Nop()})
	s, err := New(registry, "test", zerolog.Nop())
	require.NoError(t, err)
	return s
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", result.Content[0])
	return text.Text
}

func TestServerAdvertisesAllowedTools(t *testing.T) {
	s := newTestServer(t, &fakeRunner{}, tools.Policy{Deny: []string{"delete_task", "delete_project"}})

	names := make([]string, 0, len(s.Tools()))
	for _, def := range s.Tools() {
		names = append(names, def.Name)
	}
	assert.Len(t, names, 32)
	assert.NotContains(t, names, "delete_task")
	assert.Contains(t, names, "resolve_entity")
}

func TestDefinitionAnnotations(t *testing.T) {
	byName := map[string]*tools.Tool{}
	for _, tool := range tools.Catalog() {
		byName[tool.Name] = tool
	}

	listTasks, err := Definition(byName["list_tasks"])
	require.NoError(t, err)
	assert.Equal(t, "List tasks", listTasks.Annotations.Title)
	assert.True(t, *listTasks.Annotations.ReadOnlyHint)
	assert.False(t, *listTasks.Annotations.DestructiveHint)

	deleteProject, err := Definition(byName["delete_project"])
	require.NoError(t, err)
	assert.False(t, *deleteProject.Annotations.ReadOnlyHint)
	assert.True(t, *deleteProject.Annotations.DestructiveHint)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(deleteProject.RawInputSchema, &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"projectName"}, schema["required"])
}

func TestHandlerSuccess(t *testing.T) {
	runner := &fakeRunner{out: "Home\x1fp1\x1f\x1e"}
	s := newTestServer(t, runner, tools.Policy{})

	result, err := s.handler("create_project")(context.Background(), callRequest("create_project", map[string]any{"name": "Home"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Successfully created project: Home (ID: p1)", resultText(t, result))
	assert.Equal(t, 1, runner.ran)
}

func TestHandlerFailuresAreResults(t *testing.T) {
	tests := []struct {
		name    string
		runner  *fakeRunner
		tool    string
		args    map[string]any
		want    string
		isError bool
	}{
		{
			name:    "validation",
			runner:  &fakeRunner{},
			tool:    "create_task",
			args:    map[string]any{},
			want:    "Error: missing required argument 'name'",
			isError: true,
		},
		{
			name:    "query not found",
			runner:  &fakeRunner{err: &apperrors.Error{Code: apperrors.CodeResolution, Message: "Project not found: Ghost"}},
			tool:    "get_project_note",
			args:    map[string]any{"projectName": "Ghost"},
			want:    "Project not found: Ghost",
			isError: false,
		},
		{
			name:    "mutation not found",
			runner:  &fakeRunner{err: &apperrors.Error{Code: apperrors.CodeResolution, Message: "Project not found: Ghost"}},
			tool:    "set_project_flag",
			args:    map[string]any{"projectName": "Ghost", "flagged": true},
			want:    "Error: Project not found: Ghost",
			isError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.runner, tools.Policy{})
			result, err := s.handler(tt.tool)(context.Background(), callRequest(tt.tool, tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.isError, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Set task flag", title("set_task_flag"))
	assert.Equal(t, "", title(""))
}
