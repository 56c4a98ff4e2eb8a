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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"focusmcp/internal/tools"
)

const maxBatchLine = 1 << 20

func newBatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Run OpenAI tool calls read from stdin, one JSON object per line",
		Long: "Each input line is an OpenAI tool call object. Each output line is the matching\n" +
			"tool message, ready to append to a chat completion request.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.close()
			return runBatch(background(cmd), a.registry, a.logger, os.Stdin, cmd.OutOrStdout())
		},
	}
}

func runBatch(ctx context.Context, registry *tools.Registry, logger zerolog.Logger, in io.Reader, out io.Writer) error {
	logger.Debug().Msg("Running in batch mode")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxBatchLine)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		msg := batchCall(ctx, registry, line)
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		logger.Debug().Str("tool_call_id", msg.ToolCallID).Str("tool", msg.Name).Msg("batch call done")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func batchCall(ctx context.Context, registry *tools.Registry, line string) openai.ChatCompletionMessage {
	var call openai.ToolCall
	if err := json.Unmarshal([]byte(line), &call); err != nil {
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleTool,
			Content: fmt.Sprintf("Error: invalid tool call: %v", err),
		}
	}
	result := registry.ExecuteOpenAIToolCall(ctx, call)
	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Name:       result.Function,
		Content:    result.Result,
		ToolCallID: call.ID,
	}
}
