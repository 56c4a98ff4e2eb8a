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
	"text/tabwriter"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"focusmcp/internal/config"
	"focusmcp/internal/server"
	"focusmcp/internal/tools"
)

const (
	listText   = "text"
	listOpenAI = "openai"
	listMCP    = "mcp"
)

func newToolsCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools allowed by the config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.close()
			return listTools(cmd.OutOrStdout(), a.registry, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", listText, "output format: text, openai or mcp")
	return cmd
}

func listTools(w io.Writer, registry *tools.Registry, format string) error {
	switch format {
	case listText:
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "Tool\tKind\tDescription")
		for _, t := range registry.Tools() {
			kind := t.Kind.String()
			if t.Destructive {
				kind += " (destructive)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, kind, t.Description)
		}
		return tw.Flush()
	case listOpenAI:
		return writeJSON(w, registry.OpenAITools())
	case listMCP:
		defs := make([]mcp.Tool, 0)
		for _, t := range registry.Tools() {
			def, err := server.Definition(t)
			if err != nil {
				return err
			}
			defs = append(defs, def)
		}
		return writeJSON(w, defs)
	}
	return fmt.Errorf("unknown format %q: use %s, %s or %s", format, listText, listOpenAI, listMCP)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config schema or an example config",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "schema",
			Short: "Print the JSON schema of the config file",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), config.SchemaJSON())
			},
		},
		&cobra.Command{
			Use:   "example",
			Short: "Print an example config file",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), config.ExampleConfigJSON())
			},
		},
	)
	return cmd
}
