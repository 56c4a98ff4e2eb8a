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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"focusmcp/internal/tools"
)

type fakeRunner struct {
	out string
	err error
}

func (f *fakeRunner) Run(context.Context, string) (string, error) {
	return f.out, f.err
}

func testRegistry(out string) *tools.Registry {
	return tools.NewRegistry(tools.Options{Runner: &fakeRunner{out: out}, Logger: zerolog.Nop()})
}

func TestInitLoggerWithFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	logger, closeFn, err := initLogger(true, logFile)
	if err != nil {
		t.Fatalf("initLogger failed: %v", err)
	}
	logger.Info().Msg("Test message")
	closeFn()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "Test message") {
		t.Fatalf("log file does not contain the message: %q", content)
	}
}

func TestInitLoggerBadPath(t *testing.T) {
	if _, _, err := initLogger(false, filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Fatal("expected error for unwritable log file")
	}
}

func TestReadArgs(t *testing.T) {
	got, err := readArgs([]string{"list_tasks"}, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("no arguments should give an empty object, got %v %v", got, err)
	}

	got, err = readArgs([]string{"search_tasks", "-"}, strings.NewReader(`{"query": "milk"}`))
	if err != nil {
		t.Fatalf("readArgs: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"query": "milk"}, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}

	if _, err := readArgs([]string{"x", "[1,2]"}, nil); err == nil {
		t.Fatal("expected error for non-object arguments")
	}
}

func TestSplitCall(t *testing.T) {
	name, params, err := splitCall(`  create_task {"name": "Buy milk"} `)
	if err != nil {
		t.Fatalf("splitCall: %v", err)
	}
	if name != "create_task" || params["name"] != "Buy milk" {
		t.Fatalf("splitCall = %q %v", name, params)
	}
	if name, params, err := splitCall("list_tasks"); err != nil || name != "list_tasks" || len(params) != 0 {
		t.Fatalf("bare tool name: %q %v %v", name, params, err)
	}
	if _, _, err := splitCall("   "); err == nil {
		t.Fatal("expected error for empty line")
	}
	if _, _, err := splitCall("list_tasks {oops"); err == nil {
		t.Fatal("expected error for bad JSON")
	}
}

func TestReadOutcome(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		err      error
		expected promptOutcome
	}{
		{"line", "list_tasks", nil, promptRun},
		{"ctrl-c", "", readline.ErrInterrupt, promptSkip},
		{"ctrl-d at empty prompt", "", io.EOF, promptEnd},
		{"ctrl-d after blanks", "   ", io.EOF, promptEnd},
		{"ctrl-d with pending text", "list_", io.EOF, promptSkip},
		{"wrapped eof", "", fmt.Errorf("read: %w", io.EOF), promptEnd},
		{"terminal failure", "", errors.New("boom"), promptFailed},
	}
	for _, tc := range cases {
		if got := readOutcome(tc.line, tc.err); got != tc.expected {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestRunBatch(t *testing.T) {
	registry := testRegistry("Buy milk\x1ft1\x1fHome\x1e")
	in := strings.Join([]string{
		`{"id": "call-1", "type": "function", "function": {"name": "get_task_link", "arguments": "{\"taskName\": \"Buy milk\", \"format\": \"url\"}"}}`,
		``,
		`not json`,
	}, "\n")

	var out bytes.Buffer
	if err := runBatch(context.Background(), registry, zerolog.Nop(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("runBatch: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %q", len(lines), out.String())
	}
	var first, second openai.ChatCompletionMessage
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line: %v", err)
	}
	if first.Role != openai.ChatMessageRoleTool || first.ToolCallID != "call-1" || first.Name != "get_task_link" {
		t.Fatalf("unexpected message %+v", first)
	}
	if !strings.Contains(first.Content, "omnifocus:///task/t1") {
		t.Fatalf("link missing: %q", first.Content)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("second line: %v", err)
	}
	if !strings.HasPrefix(second.Content, "Error: invalid tool call") {
		t.Fatalf("unexpected error message %q", second.Content)
	}
}

func TestListTools(t *testing.T) {
	registry := tools.NewRegistry(tools.Options{Policy: tools.Policy{Allow: []string{"list_tasks", "delete_task"}}, Logger: zerolog.Nop()})

	var text bytes.Buffer
	if err := listTools(&text, registry, listText); err != nil {
		t.Fatalf("text: %v", err)
	}
	if !strings.Contains(text.String(), "delete_task") || !strings.Contains(text.String(), "mutation (destructive)") {
		t.Fatalf("text listing incomplete:\n%s", text.String())
	}

	var defs bytes.Buffer
	if err := listTools(&defs, registry, listMCP); err != nil {
		t.Fatalf("mcp: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(defs.Bytes(), &decoded); err != nil {
		t.Fatalf("mcp listing is not JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["name"] != "delete_task" || decoded[1]["name"] != "list_tasks" {
		t.Fatalf("unexpected mcp listing %v", decoded)
	}

	if err := listTools(io.Discard, registry, "yaml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestReplHandleLine(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	r := &repl{
		registry: testRegistry("Buy milk\x1ft1\x1f\x1e"),
		logger:   zerolog.Nop(),
		out:      &out,
		colors:   newPalette(os.Stdout),
	}

	if r.handleLine(context.Background(), `create_task {"name": "Buy milk"}`) {
		t.Fatal("a call must not end the session")
	}
	if !strings.Contains(out.String(), "Successfully created task: Buy milk (ID: t1) in Inbox") {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	r.handleLine(context.Background(), "/scripts")
	if !r.showScripts || !strings.Contains(out.String(), "enabled") {
		t.Fatalf("/scripts did not toggle: %q", out.String())
	}

	out.Reset()
	r.handleLine(context.Background(), `/compile search_tasks {"query": "milk"}`)
	if !strings.Contains(out.String(), `tell application "OmniFocus"`) {
		t.Fatalf("/compile printed %q", out.String())
	}

	out.Reset()
	r.handleLine(context.Background(), "/bogus")
	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Fatalf("unexpected output %q", out.String())
	}

	if !r.handleLine(context.Background(), "/quit") {
		t.Fatal("/quit must end the session")
	}
}

func TestRootCommands(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "focusmcp.json")
	if err := os.WriteFile(configPath, []byte(`{"tools": {"allow": ["list_tasks"]}}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"config example", []string{"config", "example"}, `"application": "OmniFocus"`},
		{"tools openai", []string{"--config", configPath, "tools", "--format", "openai"}, `"name": "list_tasks"`},
		{"compile", []string{"--config", configPath, "compile", "list_tasks", `{"flaggedOnly": true}`}, "flagged is true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			root := newRootCmd(&out)
			root.SetArgs(tt.args)
			if err := root.Execute(); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("output does not contain %q:\n%s", tt.want, out.String())
			}
		})
	}
}
