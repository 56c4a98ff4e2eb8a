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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readArgs decodes the optional JSON argument object of call and compile.
// "-" reads it from stdin.
func readArgs(args []string, stdin io.Reader) (map[string]any, error) {
	if len(args) < 2 {
		return map[string]any{}, nil
	}
	raw := args[1]
	if raw == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read arguments: %w", err)
		}
		raw = string(data)
	}
	parsed := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return parsed, nil
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	return parsed, nil
}

func newCallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args|-]",
		Short: "Run one tool and print its result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readArgs(args, os.Stdin)
			if err != nil {
				return err
			}
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.close()

			result := a.registry.Execute(background(cmd), args[0], params)
			fmt.Fprintln(cmd.OutOrStdout(), result.Result)
			if result.IsError {
				return errToolFailed
			}
			return nil
		},
	}
}

func newCompileCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <tool> [json-args|-]",
		Short: "Print the AppleScript a tool call would run",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readArgs(args, os.Stdin)
			if err != nil {
				return err
			}
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.close()

			source, err := a.registry.Compile(args[0], params)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), source)
			return nil
		},
	}
}
