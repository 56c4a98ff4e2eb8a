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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"focusmcp/internal/tools"
)

const defaultHistoryFile = ".focusmcp_history"

// Command represents a slash command
type Command struct {
	Name        string
	Description string
}

func getAvailableCommands() []Command {
	return []Command{
		{Name: "help", Description: "Show available commands"},
		{Name: "tools", Description: "List the allowed tools"},
		{Name: "compile", Description: "Print the script of a call without running it: /compile <tool> {json}"},
		{Name: "scripts", Description: "Toggle printing each script before it runs"},
		{Name: "quit", Description: "Exit the application"},
		{Name: "exit", Description: "Exit the application"},
	}
}

type palette struct {
	Header  *color.Color
	Error   *color.Color
	Success *color.Color
	Muted   *color.Color
}

// newPalette disables colour for NO_COLOR and for output that is not a
// terminal.
func newPalette(out *os.File) *palette {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(out.Fd())) {
		color.NoColor = true
	}
	return &palette{
		Header:  color.New(color.FgCyan, color.Bold),
		Error:   color.New(color.FgRed),
		Success: color.New(color.FgGreen),
		Muted:   color.New(color.FgHiBlack),
	}
}

type repl struct {
	registry    *tools.Registry
	logger      zerolog.Logger
	out         io.Writer
	colors      *palette
	showScripts bool
}

func newReplCmd(opts *globalOptions) *cobra.Command {
	var historyFile string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run tools interactively: <tool> {json-args}",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.close()

			r := &repl{
				registry: a.registry,
				logger:   a.logger,
				out:      os.Stdout,
				colors:   newPalette(os.Stdout),
			}
			return r.run(background(cmd), historyFile)
		},
	}
	cmd.Flags().StringVar(&historyFile, "history", defaultHistoryFile, "readline history file")
	return cmd
}

func (r *repl) run(ctx context.Context, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "focus❯ ",
		HistoryFile:     historyFile,
		AutoComplete:    r.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	r.colors.Header.Fprintln(r.out, "focusmcp by Dyne.org")
	fmt.Fprintf(r.out, "%d tools available, type /help for commands\n\n", len(r.registry.Tools()))

	for {
		line, err := rl.Readline()
		switch readOutcome(line, err) {
		case promptEnd:
			r.logger.Debug().Msg("prompt closed")
			return nil
		case promptSkip:
			continue
		case promptFailed:
			return err
		}
		if r.handleLine(ctx, line) {
			return nil
		}
	}
}

// handleLine runs one input line and reports whether the session ends.
func (r *repl) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "/") {
		return r.handleCommand(line)
	}

	name, params, err := splitCall(line)
	if err != nil {
		r.colors.Error.Fprintf(r.out, "✗ %v\n", err)
		return false
	}
	if r.showScripts {
		if source, err := r.registry.Compile(name, params); err == nil {
			r.colors.Muted.Fprintln(r.out, source)
		}
	}
	result := r.registry.Execute(ctx, name, params)
	if result.IsError {
		r.colors.Error.Fprintln(r.out, result.Result)
		return false
	}
	fmt.Fprintln(r.out, result.Result)
	return false
}

func (r *repl) handleCommand(input string) bool {
	cmdName, rest, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	cmdName = strings.ToLower(strings.TrimSpace(cmdName))
	r.logger.Debug().Str("command", cmdName).Msg("Executing command")

	switch cmdName {
	case "help":
		r.showHelp()
	case "tools":
		if err := listTools(r.out, r.registry, listText); err != nil {
			r.colors.Error.Fprintf(r.out, "✗ %v\n", err)
		}
	case "compile":
		name, params, err := splitCall(rest)
		if err != nil {
			r.colors.Error.Fprintf(r.out, "✗ %v\n", err)
			return false
		}
		source, err := r.registry.Compile(name, params)
		if err != nil {
			r.colors.Error.Fprintf(r.out, "✗ %v\n", err)
			return false
		}
		fmt.Fprint(r.out, source)
	case "scripts":
		r.showScripts = !r.showScripts
		r.colors.Success.Fprintf(r.out, "✓ Script printing %s\n", onOff(r.showScripts))
	case "quit", "exit":
		return true
	default:
		r.colors.Error.Fprintf(r.out, "✗ Unknown command: /%s (type /help for available commands)\n", cmdName)
	}
	return false
}

func (r *repl) showHelp() {
	r.colors.Header.Fprintln(r.out, "\nAvailable Commands:")
	seen := make(map[string]bool)
	for _, cmd := range getAvailableCommands() {
		if seen[cmd.Name] {
			continue
		}
		seen[cmd.Name] = true
		fmt.Fprintf(r.out, "  /%-12s - %s\n", cmd.Name, cmd.Description)
	}
	fmt.Fprintln(r.out, "\nCalls:")
	fmt.Fprintln(r.out, `  list_tasks {"flaggedOnly": true}`)
	fmt.Fprintln(r.out, "  Tab          - Auto-complete tools and commands")
	fmt.Fprintln(r.out)
}

func (r *repl) completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range getAvailableCommands() {
		items = append(items, readline.PcItem("/"+cmd.Name))
	}
	for _, t := range r.registry.Tools() {
		items = append(items, readline.PcItem(t.Name))
	}
	return readline.NewPrefixCompleter(items...)
}

// splitCall parses "tool_name {json}" into a name and arguments.
func splitCall(line string) (string, map[string]any, error) {
	name, raw, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "" {
		return "", nil, fmt.Errorf("missing tool name")
	}
	params := map[string]any{}
	if raw = strings.TrimSpace(raw); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return "", nil, fmt.Errorf("arguments must be a JSON object: %v", err)
		}
	}
	return name, params, nil
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
