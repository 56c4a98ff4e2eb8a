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

// Package tools binds the compiled OmniFocus operations into a catalog of
// named tools and runs them: decode, validate, compile, execute, format.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	apperrors "focusmcp/internal/errors"
	"focusmcp/internal/executor"
	"focusmcp/internal/format"
)

// ToolResult is the outcome of one call. Result is always the text to show
// the caller; IsError marks failures the caller should treat as such.
type ToolResult struct {
	Function string
	Result   string
	Error    error
	IsError  bool
}

// Permission describes the policy for a tool.
type Permission struct {
	Allowed bool
}

// Policy selects the tools that may run. An empty Allow list allows every
// tool; Deny wins over Allow.
type Policy struct {
	Allow []string
	Deny  []string
}

func (p Policy) permits(name string) bool {
	for _, d := range p.Deny {
		if d == name {
			return false
		}
	}
	if len(p.Allow) == 0 {
		return true
	}
	for _, a := range p.Allow {
		if a == name {
			return true
		}
	}
	return false
}

// Options configures a Registry.
type Options struct {
	Runner executor.Runner
	// Application is the scripted application; script.DefaultApplication
	// when empty.
	Application string
	Policy      Policy
	Filter      format.Filter
	Logger      zerolog.Logger
}

// Registry holds the catalog and runs calls. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	tools       map[string]*Tool
	order       []string
	permissions map[string]Permission

	runner      executor.Runner
	application string
	filter      format.Filter
	logger      zerolog.Logger
}

// NewRegistry creates a registry holding the full catalog.
func NewRegistry(opts Options) *Registry {
	r := &Registry{
		tools:       make(map[string]*Tool),
		permissions: make(map[string]Permission),
		runner:      opts.Runner,
		application: opts.Application,
		filter:      opts.Filter,
		logger:      opts.Logger,
	}
	for _, t := range Catalog() {
		r.RegisterTool(t)
	}
	r.ApplyPolicy(opts.Policy)
	return r
}

// RegisterTool adds a tool. New tools are allowed until a policy says
// otherwise.
func (r *Registry) RegisterTool(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name]; !exists {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = tool
	if _, ok := r.permissions[tool.Name]; !ok {
		r.permissions[tool.Name] = Permission{Allowed: true}
	}
}

// ApplyPolicy recomputes every tool permission from policy.
func (r *Registry) ApplyPolicy(policy Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range r.tools {
		r.permissions[name] = Permission{Allowed: policy.permits(name)}
	}
}

// GetToolNames returns every registered tool name, sorted.
func (r *Registry) GetToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns the allowed tools in catalog order.
func (r *Registry) Tools() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		if r.permissions[name].Allowed {
			out = append(out, r.tools[name])
		}
	}
	return out
}

// GetPermission returns the permission entry for a tool.
func (r *Registry) GetPermission(name string) Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.permissions[name]
}

func (r *Registry) getTool(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// OpenAITools returns the allowed tools as OpenAI tool definitions.
func (r *Registry) OpenAITools() []openai.Tool {
	tools := r.Tools()
	defs := make([]openai.Tool, 0, len(tools))
	for _, tool := range tools {
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	return defs
}

// lookup returns an allowed tool or a coded error.
func (r *Registry) lookup(name string) (*Tool, error) {
	tool, ok := r.getTool(name)
	if !ok {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("Tool '%s' not found", name), ErrToolNotFound)
	}
	if !r.GetPermission(name).Allowed {
		return nil, NewPermissionError(name, ErrToolNotAllowed)
	}
	return tool, nil
}

// Compile returns the script a call would run, without running it.
func (r *Registry) Compile(name string, args map[string]any) (string, error) {
	tool, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	call, err := tool.prepare(args)
	if err != nil {
		return "", asValidation(err)
	}
	call.program.Application = r.application
	return call.program.String(), nil
}

// Execute runs one tool call. Every failure is reported through the
// result; nothing is retried.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) *ToolResult {
	start := time.Now()
	log := r.logger.With().Str("request_id", uuid.NewString()).Str("tool", name).Logger()

	text, err := r.execute(ctx, log, name, args)
	result := &ToolResult{Function: name, Result: text, Error: err}
	if err != nil {
		tool, _ := r.getTool(name)
		result.Result, result.IsError = describeFailure(tool, err)
		log.Warn().
			Str("code", string(apperrors.CodeOf(err))).
			Str("script", apperrors.ScriptPathOf(err)).
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("tool call failed")
		return result
	}
	log.Info().Dur("duration", time.Since(start)).Msg("tool call finished")
	return result
}

func (r *Registry) execute(ctx context.Context, log zerolog.Logger, name string, args map[string]any) (string, error) {
	tool, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	call, err := tool.prepare(args)
	if err != nil {
		return "", asValidation(err)
	}
	call.program.Application = r.application
	source := call.program.String()
	log.Debug().Int("script_bytes", len(source)).Msg("script compiled")

	if r.runner == nil {
		return "", apperrors.New(apperrors.CodeConfig, "no script runner configured")
	}
	out, err := r.runner.Run(ctx, source)
	if err != nil {
		return "", err
	}
	text, err := call.render(out)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeRemoteExecution, "unexpected script output", err)
	}
	text, truncated := r.filter.Apply(text)
	if truncated {
		log.Debug().Int("max_chars", r.filter.MaxChars).Msg("output truncated")
		text += "\n... (output truncated)"
	}
	return text, nil
}

// asValidation gives uncoded argument errors the validation code.
func asValidation(err error) error {
	if apperrors.CodeOf(err) != "" {
		return err
	}
	return apperrors.Wrap(apperrors.CodeValidation, "invalid arguments", err)
}

// describeFailure renders a failed call. A missing entity is a plain
// answer for queries and an error for everything else.
func describeFailure(tool *Tool, err error) (string, bool) {
	if apperrors.IsCode(err, apperrors.CodeResolution) && tool != nil && tool.Kind == Query {
		return err.Error(), false
	}
	msg := "Error: " + err.Error()
	if path := apperrors.ScriptPathOf(err); path != "" {
		msg += " (script kept at " + path + ")"
	}
	return msg, true
}

// ExecuteOpenAIToolCall executes an OpenAI tool call payload.
func (r *Registry) ExecuteOpenAIToolCall(ctx context.Context, call openai.ToolCall) *ToolResult {
	name := call.Function.Name
	if name == "" {
		err := fmt.Errorf("%w: tool call missing function name", ErrInvalidArguments)
		return &ToolResult{Function: "unknown_tool", Result: "Error: " + err.Error(), Error: err, IsError: true}
	}
	args, err := parseToolArgs(call.Function.Arguments)
	if err != nil {
		err = apperrors.Wrap(apperrors.CodeValidation, "invalid arguments", fmt.Errorf("%w: %v", ErrInvalidArguments, err))
		return &ToolResult{Function: name, Result: "Error: " + err.Error(), Error: err, IsError: true}
	}
	return r.Execute(ctx, name, args)
}
